package models

import (
	"fmt"
	"time"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/google/uuid"
)

// EstimateRequest holds the form inputs.
type EstimateRequest struct {
	Pickup      string             `json:"pickup"`
	Destination string             `json:"destination"`
	Hour        int                `json:"hour"`
	Weekday     int                `json:"weekday"`
	Rain        bool               `json:"rain"`
	Category    types.RideCategory `json:"category"`
}

// FeatureImpacts are illustrative percentages shown next to the estimate.
type FeatureImpacts struct {
	Distance          int `json:"distance"`
	TimeOfDay         int `json:"time_of_day"`
	DemandLevel       int `json:"demand_level"`
	LocationSituation int `json:"location_situation"`
}

// Quote is what the engine computes for resolved coordinates.
type Quote struct {
	DistanceKm             float64          `json:"distance_km"`
	Fare                   float64          `json:"fare"`
	ETAMinutes             int              `json:"eta_minutes"`
	SurgeMultiplier        float64          `json:"surge_multiplier"`
	SurgeApplied           bool             `json:"surge_applied"`
	Confidence             types.Confidence `json:"confidence"`
	RecommendedDestination string           `json:"recommended_destination,omitempty"`
	Impacts                FeatureImpacts   `json:"feature_impacts"`
}

// Estimate is a quote bound to its request. Produced fresh per request.
type Estimate struct {
	ID          uuid.UUID       `json:"id"`
	Request     EstimateRequest `json:"request"`
	Pickup      Location        `json:"pickup"`
	Destination Location        `json:"destination"`
	Quote
	CreatedAt time.Time `json:"created_at"`
}

func (q Quote) FareText() string {
	return fmt.Sprintf("%.2f BDT", q.Fare)
}

func (q Quote) ETAText() string {
	return fmt.Sprintf("%d mins", q.ETAMinutes)
}

func (q Quote) DistanceText() string {
	return fmt.Sprintf("%.2f km", q.DistanceKm)
}
