package models

import (
	"time"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/google/uuid"
)

type Booking struct {
	ID          uuid.UUID           `json:"id"`
	EstimateID  uuid.UUID           `json:"estimate_id"`
	PassengerID string              `json:"passenger_id,omitempty"`
	Status      types.BookingStatus `json:"status"`
	Category    types.RideCategory  `json:"category"`
	Fare        float64             `json:"fare"`
	Pickup      string              `json:"pickup"`
	Destination string              `json:"destination"`
	ConfirmedAt time.Time           `json:"confirmed_at"`
}
