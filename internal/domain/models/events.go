package models

import (
	"time"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/google/uuid"
)

// RabbitMQ message: estimate.computed → <estimator_topic> exchange
type EstimateComputedEvent struct {
	Type      types.EventType `json:"type"`
	Estimate  Estimate        `json:"estimate"`
	RequestID string          `json:"request_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// RabbitMQ message: booking.confirmed → <estimator_topic> exchange
type BookingConfirmedEvent struct {
	Type      types.EventType `json:"type"`
	Booking   Booking         `json:"booking"`
	RequestID string          `json:"request_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// JournalEntry is one persisted estimate, flattened for listing and CSV export.
type JournalEntry struct {
	EstimateID      uuid.UUID  `json:"estimate_id" csv:"estimate_id"`
	Pickup          string     `json:"pickup" csv:"pickup"`
	Destination     string     `json:"destination" csv:"destination"`
	Hour            int        `json:"hour" csv:"hour"`
	Weekday         int        `json:"weekday" csv:"weekday"`
	Rain            bool       `json:"rain" csv:"rain"`
	Category        string     `json:"category" csv:"category"`
	DistanceKm      float64    `json:"distance_km" csv:"distance_km"`
	Fare            float64    `json:"fare" csv:"fare"`
	ETAMinutes      int        `json:"eta_minutes" csv:"eta_minutes"`
	SurgeMultiplier float64    `json:"surge_multiplier" csv:"surge_multiplier"`
	Confidence      string     `json:"confidence" csv:"confidence"`
	Booked          bool       `json:"booked" csv:"booked"`
	BookingID       *uuid.UUID `json:"booking_id,omitempty" csv:"booking_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at" csv:"created_at"`
}
