package types

import (
	"fmt"
	"strings"
)

type ServiceMode string

// Estimator Service - fare/ETA estimation API, form sessions and booking confirmation
// Journal Service - consumes estimator events and keeps the audit journal
const (
	EstimatorService ServiceMode = "estimator-service"
	JournalService   ServiceMode = "journal-service"
)

// RideCategory is the numeric ride class sent by the form (0..4).
type RideCategory int

const (
	Economy RideCategory = iota
	Premium
	Motorbike
	Riksha
	AutoRiksha
)

var categoryNames = [...]string{"Economy", "Premium", "Motorbike", "Riksha", "AutoRiksha"}

func (c RideCategory) Valid() bool {
	return c >= Economy && c <= AutoRiksha
}

func (c RideCategory) String() string {
	if !c.Valid() {
		return fmt.Sprintf("RideCategory(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseRideCategory accepts a category name, case-insensitive.
func ParseRideCategory(s string) (RideCategory, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return RideCategory(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Categories lists every category in numeric order.
func Categories() []RideCategory {
	return []RideCategory{Economy, Premium, Motorbike, Riksha, AutoRiksha}
}

// Confidence is the prediction confidence label.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

type BookingStatus string

const (
	BookingIdle       BookingStatus = "IDLE"
	BookingConfirming BookingStatus = "CONFIRMING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
)

// Enum для роли пользователя
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	RolePassenger UserRole = "PASSENGER"
	RoleAdmin     UserRole = "ADMIN"
	RoleAnonymous UserRole = "ANONYMOUS"
)

// EventType is the routing key of messages published by the estimator.
type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventEstimateComputed EventType = "estimate.computed"
	EventBookingConfirmed EventType = "booking.confirmed"
)
