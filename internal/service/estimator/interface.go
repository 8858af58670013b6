package estimator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
)

/*====================Coordinate Resolver=========================*/

type Resolver interface {
	Resolve(ctx context.Context, name string) models.Location
	Landmarks() []models.Landmark
}

/*======================Quote Cache===============================*/

type QuoteStore interface {
	Save(ctx context.Context, estimate models.Estimate) error
	// Peek reads without consuming, Take consumes. Both return types.ErrEstimateNotFound.
	Peek(ctx context.Context, id uuid.UUID) (models.Estimate, error)
	Take(ctx context.Context, id uuid.UUID) (models.Estimate, error)
}

/*========================Publisher===============================*/

type Publisher interface {
	PublishEstimateComputed(ctx context.Context, estimate models.Estimate) error
	PublishBookingConfirmed(ctx context.Context, booking models.Booking) error
}

/*=========================Latency================================*/

// Delayer simulates work. Implementations must return ctx.Err() when ctx ends first.
type Delayer interface {
	Wait(ctx context.Context, d time.Duration) error
}

type SleepDelayer struct{}

func (SleepDelayer) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoDelay skips the simulated latency. Used by tests.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
