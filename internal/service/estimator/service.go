package estimator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	ridecalc "github.com/Temutjin2k/fare-estimator/internal/service/calculator"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	"github.com/Temutjin2k/fare-estimator/pkg/metrics"
)

const (
	DefaultEstimateDelay = 1500 * time.Millisecond
	DefaultBookingDelay  = 2 * time.Second
)

type Config struct {
	ServiceName   string
	EstimateDelay time.Duration
	BookingDelay  time.Duration
}

/*
Service wraps the estimation engine with the asynchronous contract of the app:
input validation, simulated latency, quote caching, booking and events.
*/
type Service struct {
	calc      ridecalc.Calculator
	resolver  Resolver
	quotes    QuoteStore
	publisher Publisher
	delay     Delayer
	cfg       Config
	now       func() time.Time
	l         logger.Logger
}

// New returns the estimator service. publisher may be nil.
func New(calc ridecalc.Calculator, resolver Resolver, quotes QuoteStore, publisher Publisher, delay Delayer, cfg Config, l logger.Logger) *Service {
	if delay == nil {
		delay = SleepDelayer{}
	}
	return &Service{
		calc:      calc,
		resolver:  resolver,
		quotes:    quotes,
		publisher: publisher,
		delay:     delay,
		cfg:       cfg,
		now:       time.Now,
		l:         l,
	}
}

// Estimate resolves both locations and runs the simulation after the estimate delay.
// Missing locations fail right away without waiting.
func (s *Service) Estimate(ctx context.Context, req models.EstimateRequest) (models.Estimate, error) {
	ctx = wrap.WithAction(ctx, "estimate_fare")

	if err := CheckRequest(req); err != nil {
		return models.Estimate{}, err
	}

	if err := s.delay.Wait(ctx, s.cfg.EstimateDelay); err != nil {
		return models.Estimate{}, err
	}

	pickup := s.resolver.Resolve(ctx, req.Pickup)
	destination := s.resolver.Resolve(ctx, req.Destination)

	quote, err := s.calc.Quote(req, pickup, destination)
	if err != nil {
		return models.Estimate{}, wrap.Error(ctx, fmt.Errorf("failed to compute quote: %w", err))
	}

	estimate := models.Estimate{
		ID:          uuid.New(),
		Request:     req,
		Pickup:      pickup,
		Destination: destination,
		Quote:       quote,
		CreatedAt:   s.now().UTC(),
	}
	ctx = wrap.WithEstimateID(ctx, estimate.ID.String())

	// a lost quote only breaks booking, the estimate itself is still valid
	err = s.quotes.Save(ctx, estimate)
	metrics.RecordCacheOperation(s.cfg.ServiceName, "save", err)
	if err != nil {
		s.l.Error(wrap.ErrorCtx(ctx, err), "failed to cache quote", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishEstimateComputed(ctx, estimate); err != nil {
			s.l.Error(wrap.ErrorCtx(ctx, err), "failed to publish estimate", err)
		}
	}

	metrics.RecordEstimate(s.cfg.ServiceName, req.Category.String(), string(quote.Confidence), quote.Fare, quote.SurgeApplied)

	s.l.Info(ctx, "estimate computed",
		"category", req.Category.String(),
		"distance_km", quote.DistanceKm,
		"fare", quote.Fare,
		"eta_minutes", quote.ETAMinutes,
		"surge", quote.SurgeMultiplier,
		"confidence", quote.Confidence,
	)

	return estimate, nil
}

// ConfirmBooking books a cached quote after the booking delay. A quote can be booked once.
func (s *Service) ConfirmBooking(ctx context.Context, estimateID uuid.UUID, passengerID string) (booking models.Booking, err error) {
	ctx = wrap.WithEstimateID(wrap.WithAction(ctx, "confirm_booking"), estimateID.String())
	defer func() { metrics.RecordBooking(s.cfg.ServiceName, err) }()

	if _, err := s.quotes.Peek(ctx, estimateID); err != nil {
		return models.Booking{}, s.cacheError(ctx, "peek", err)
	}

	if err := s.delay.Wait(ctx, s.cfg.BookingDelay); err != nil {
		return models.Booking{}, err
	}

	estimate, err := s.quotes.Take(ctx, estimateID)
	if err != nil {
		return models.Booking{}, s.cacheError(ctx, "take", err)
	}

	booking = models.Booking{
		ID:          uuid.New(),
		EstimateID:  estimate.ID,
		PassengerID: passengerID,
		Status:      types.BookingConfirmed,
		Category:    estimate.Request.Category,
		Fare:        estimate.Fare,
		Pickup:      estimate.Pickup.Name,
		Destination: estimate.Destination.Name,
		ConfirmedAt: s.now().UTC(),
	}

	if s.publisher != nil {
		if err := s.publisher.PublishBookingConfirmed(ctx, booking); err != nil {
			s.l.Error(wrap.ErrorCtx(ctx, err), "failed to publish booking", err)
		}
	}

	s.l.Info(ctx, "booking confirmed", "booking_id", booking.ID.String(), "fare", booking.Fare)

	return booking, nil
}

// Landmarks lists the known places for pickers and autocomplete.
func (s *Service) Landmarks() []models.Landmark {
	return s.resolver.Landmarks()
}

func (s *Service) cacheError(ctx context.Context, op string, err error) error {
	if errors.Is(err, types.ErrEstimateNotFound) {
		metrics.RecordCacheOperation(s.cfg.ServiceName, op, nil)
		return types.ErrEstimateNotFound
	}
	metrics.RecordCacheOperation(s.cfg.ServiceName, op, err)
	return wrap.Error(ctx, fmt.Errorf("quote cache %s: %w", op, err))
}

// CheckRequest rejects blank locations and unknown categories.
func CheckRequest(req models.EstimateRequest) error {
	if strings.TrimSpace(req.Pickup) == "" || strings.TrimSpace(req.Destination) == "" {
		return types.ErrMissingLocations
	}
	if !req.Category.Valid() {
		return fmt.Errorf("%w: %d", types.ErrInvalidCategory, int(req.Category))
	}
	return nil
}
