package dto

import (
	"encoding/json"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/validator"
)

// Form session message types.
const (
	FormInput    = "input"
	FormEstimate = "estimate"
	FormBook     = "book"
	FormState    = "state"
	FormError    = "error"
)

// FormMessage is the envelope of every frame on /ws/form.
type FormMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// FormPush is a server to client frame.
type FormPush struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// FormInputs carries the whole form. Blank locations are allowed while typing.
type FormInputs struct {
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
	Hour        int    `json:"hour"`
	Weekday     int    `json:"weekday"`
	Rain        bool   `json:"rain"`
	Category    int    `json:"category"`
}

func (in *FormInputs) Validate(v *validator.Validator) {
	v.Check(len(in.Pickup) <= maxLocationLength, "pickup", "must not be more than 255 characters long")
	v.Check(len(in.Destination) <= maxLocationLength, "destination", "must not be more than 255 characters long")
	v.Check(validator.Between(in.Hour, 0, 23), "hour", "must be between 0 and 23")
	v.Check(validator.Between(in.Weekday, 0, 6), "weekday", "must be between 0 (Monday) and 6 (Sunday)")
	v.Check(types.RideCategory(in.Category).Valid(), "category", "must be between 0 and 4")
}

func (in *FormInputs) ToModel() models.EstimateRequest {
	return models.EstimateRequest{
		Pickup:      in.Pickup,
		Destination: in.Destination,
		Hour:        in.Hour,
		Weekday:     in.Weekday,
		Rain:        in.Rain,
		Category:    types.RideCategory(in.Category),
	}
}
