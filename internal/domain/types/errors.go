package types

import "errors"

var (
	// ErrMissingLocations text is shown to the user verbatim.
	ErrMissingLocations  = errors.New("Please enter both pickup and destination.")
	ErrInvalidCategory   = errors.New("invalid ride category")
	ErrEstimateNotFound  = errors.New("estimate not found or already booked")
	ErrNoEstimate        = errors.New("no estimate to book")
	ErrBookingInProgress = errors.New("booking already in progress")
	ErrLocationNotFound  = errors.New("location not found")

	ErrInvalidToken = errors.New("invalid token")
	ErrExpToken     = errors.New("token expired")

	ErrDatabaseFailed   = errors.New("database operation failed")
	ErrMalformedMessage = errors.New("malformed message")
	ErrNotFound         = errors.New("requested item not found")
)
