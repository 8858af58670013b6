package rabbit

import (
	"context"
	"errors"
	"time"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

const (
	EstimatorExchange = "estimator_topic"
	JournalQueue      = "estimator_journal"
)

// routing keys are "<event type>.<category>", e.g. "estimate.computed.Economy"
var journalBindings = []string{
	string(types.EventEstimateComputed) + ".*",
	string(types.EventBookingConfirmed) + ".*",
}

// isRecoverableError returns true if the provided error must be requeued
func isRecoverableError(err error) bool {
	return oneOf(err, types.ErrDatabaseFailed)
}

func oneOf(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// retry calls fn up to n times, sleeping between attempts unless ctx is done.
func retry(ctx context.Context, n int, sleep time.Duration, fn func() error) error {
	var err error
	for i := range n {
		if err = fn(); err == nil {
			return nil
		}
		if i == n-1 {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(sleep):
		}
	}
	return err
}

// sleepCtx waits d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
