package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/validator"
)

const maxLocationLength = 255

// EstimateRequest is the body of POST /estimates.
// Hour and weekday default to the current time when omitted.
type EstimateRequest struct {
	Pickup      string `json:"pickup" example:"Gulshan 1"`
	Destination string `json:"destination" example:"Dhanmondi"`
	Hour        *int   `json:"hour,omitempty" example:"10"`
	Weekday     *int   `json:"weekday,omitempty" example:"2"`
	Rain        bool   `json:"rain" example:"false"`
	Category    int    `json:"category" example:"0"`
}

// HasLocations reports whether both locations are non-blank.
func (r *EstimateRequest) HasLocations() bool {
	return strings.TrimSpace(r.Pickup) != "" && strings.TrimSpace(r.Destination) != ""
}

func (r *EstimateRequest) Validate(v *validator.Validator) {
	v.Check(len(r.Pickup) <= maxLocationLength, "pickup", "must not be more than 255 characters long")
	v.Check(len(r.Destination) <= maxLocationLength, "destination", "must not be more than 255 characters long")
	if r.Hour != nil {
		v.Check(validator.Between(*r.Hour, 0, 23), "hour", "must be between 0 and 23")
	}
	if r.Weekday != nil {
		v.Check(validator.Between(*r.Weekday, 0, 6), "weekday", "must be between 0 (Monday) and 6 (Sunday)")
	}
	v.Check(types.RideCategory(r.Category).Valid(), "category", "must be between 0 and 4")
}

func (r *EstimateRequest) ToModel(now time.Time) models.EstimateRequest {
	req := models.EstimateRequest{
		Pickup:      r.Pickup,
		Destination: r.Destination,
		Hour:        now.Hour(),
		Weekday:     (int(now.Weekday()) + 6) % 7,
		Rain:        r.Rain,
		Category:    types.RideCategory(r.Category),
	}
	if r.Hour != nil {
		req.Hour = *r.Hour
	}
	if r.Weekday != nil {
		req.Weekday = *r.Weekday
	}
	return req
}

// EstimateResponse adds the display strings the form shows.
type EstimateResponse struct {
	models.Estimate
	Category     string `json:"category"`
	FareText     string `json:"fare_text" example:"232.57 BDT"`
	ETAText      string `json:"eta_text" example:"10 mins"`
	DistanceText string `json:"distance_text" example:"4.33 km"`
}

func NewEstimateResponse(e models.Estimate) EstimateResponse {
	return EstimateResponse{
		Estimate:     e,
		Category:     e.Request.Category.String(),
		FareText:     e.FareText(),
		ETAText:      e.ETAText(),
		DistanceText: e.DistanceText(),
	}
}

type BookingResponse struct {
	BookingID   uuid.UUID `json:"booking_id"`
	EstimateID  uuid.UUID `json:"estimate_id"`
	Status      string    `json:"status" example:"CONFIRMED"`
	Category    string    `json:"category" example:"Economy"`
	Fare        float64   `json:"fare"`
	FareText    string    `json:"fare_text" example:"232.57 BDT"`
	Pickup      string    `json:"pickup"`
	Destination string    `json:"destination"`
	ConfirmedAt time.Time `json:"confirmed_at"`
	Message     string    `json:"message" example:"Ride booked successfully!"`
}

func NewBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		BookingID:   b.ID,
		EstimateID:  b.EstimateID,
		Status:      string(b.Status),
		Category:    b.Category.String(),
		Fare:        b.Fare,
		FareText:    models.Quote{Fare: b.Fare}.FareText(),
		Pickup:      b.Pickup,
		Destination: b.Destination,
		ConfirmedAt: b.ConfirmedAt,
		Message:     "Ride booked successfully!",
	}
}
