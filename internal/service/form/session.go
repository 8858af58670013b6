package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/internal/service/estimator"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
)

type Estimator interface {
	Estimate(ctx context.Context, req models.EstimateRequest) (models.Estimate, error)
	ConfirmBooking(ctx context.Context, estimateID uuid.UUID, passengerID string) (models.Booking, error)
}

// State is the snapshot pushed to the client after every transition.
// Version grows with every snapshot so clients can drop out-of-order ones.
type State struct {
	Version       uint64                 `json:"version"`
	Inputs        models.EstimateRequest `json:"inputs"`
	Loading       bool                   `json:"loading"`
	Result        *models.Estimate       `json:"result,omitempty"`
	Error         string                 `json:"error,omitempty"`
	BookingStatus types.BookingStatus    `json:"booking_status"`
	Booking       *models.Booking        `json:"booking,omitempty"`
}

/*
Session is the server-side model of one estimate form.

Every input change or new estimate request bumps the generation. Async
results carry the generation they were started with and are dropped when it
no longer matches, so a slow estimate never overwrites newer inputs.
*/
type Session struct {
	mu    sync.Mutex
	state State
	gen   uint64

	cancelEstimate context.CancelFunc

	id          string
	passengerID string
	est         Estimator
	notify      func(State)
	ctx         context.Context
	stop        context.CancelFunc
	wg          sync.WaitGroup
	l           logger.Logger
}

// NewSession starts a form with the current hour and weekday preselected.
// notify may be called from any goroutine.
func NewSession(ctx context.Context, id, passengerID string, est Estimator, notify func(State), l logger.Logger) *Session {
	ctx, stop := context.WithCancel(wrap.WithSessionID(ctx, id))
	if notify == nil {
		notify = func(State) {}
	}

	now := time.Now()
	return &Session{
		state: State{
			Inputs: models.EstimateRequest{
				Hour:     now.Hour(),
				Weekday:  MondayFirst(now.Weekday()),
				Category: types.Economy,
			},
			BookingStatus: types.BookingIdle,
		},
		id:          id,
		passengerID: passengerID,
		est:         est,
		notify:      notify,
		ctx:         ctx,
		stop:        stop,
		l:           l,
	}
}

func (s *Session) ID() string {
	return s.id
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// SetInputs replaces the form inputs. Any change clears the result, the error and the booking.
func (s *Session) SetInputs(in models.EstimateRequest) {
	s.mu.Lock()
	if in == s.state.Inputs {
		s.mu.Unlock()
		return
	}

	s.gen++
	s.abortEstimate()
	s.state.Inputs = in
	s.state.Loading = false
	s.resetOutput()
	st := s.publish()
	s.mu.Unlock()

	s.notify(st)
}

// RequestEstimate validates the inputs synchronously and computes the estimate in the background.
func (s *Session) RequestEstimate() {
	s.mu.Lock()
	in := s.state.Inputs

	s.gen++
	gen := s.gen
	s.abortEstimate()
	s.resetOutput()

	if err := estimator.CheckRequest(in); err != nil {
		s.state.Loading = false
		s.state.Error = err.Error()
		st := s.publish()
		s.mu.Unlock()
		s.notify(st)
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelEstimate = cancel
	s.state.Loading = true
	st := s.publish()
	s.wg.Add(1)
	s.mu.Unlock()

	s.notify(st)

	go func() {
		defer s.wg.Done()
		defer cancel()

		estimate, err := s.est.Estimate(ctx, in)
		s.finishEstimate(ctx, gen, estimate, err)
	}()
}

func (s *Session) finishEstimate(ctx context.Context, gen uint64, estimate models.Estimate, err error) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.l.Debug(ctx, "dropping stale estimate result", "generation", gen)
		return
	}

	s.cancelEstimate = nil
	s.state.Loading = false
	if err != nil {
		s.state.Error = err.Error()
		if !errors.Is(err, types.ErrMissingLocations) && !errors.Is(err, context.Canceled) {
			s.l.Error(wrap.ErrorCtx(ctx, err), "form estimate failed", err)
		}
	} else {
		s.state.Result = &estimate
	}
	st := s.publish()
	s.mu.Unlock()

	s.notify(st)
}

// Book confirms the current result in the background.
func (s *Session) Book() error {
	s.mu.Lock()
	switch {
	case s.state.Result == nil || s.state.Loading:
		s.mu.Unlock()
		return types.ErrNoEstimate
	case s.state.BookingStatus == types.BookingConfirming:
		s.mu.Unlock()
		return types.ErrBookingInProgress
	case s.state.BookingStatus == types.BookingConfirmed:
		s.mu.Unlock()
		return nil
	}

	gen := s.gen
	estimateID := s.state.Result.ID
	s.state.BookingStatus = types.BookingConfirming
	s.state.Error = ""
	st := s.publish()
	s.wg.Add(1)
	s.mu.Unlock()

	s.notify(st)

	go func() {
		defer s.wg.Done()

		ctx := wrap.WithEstimateID(s.ctx, estimateID.String())
		booking, err := s.est.ConfirmBooking(ctx, estimateID, s.passengerID)
		s.finishBooking(ctx, gen, booking, err)
	}()
	return nil
}

func (s *Session) finishBooking(ctx context.Context, gen uint64, booking models.Booking, err error) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.l.Debug(ctx, "dropping stale booking result", "generation", gen)
		return
	}

	if err != nil {
		s.state.BookingStatus = types.BookingIdle
		s.state.Error = err.Error()
		if !errors.Is(err, types.ErrEstimateNotFound) && !errors.Is(err, context.Canceled) {
			s.l.Error(wrap.ErrorCtx(ctx, err), "form booking failed", err)
		}
	} else {
		s.state.BookingStatus = types.BookingConfirmed
		s.state.Booking = &booking
	}
	st := s.publish()
	s.mu.Unlock()

	s.notify(st)
}

// Close cancels in-flight work and waits for it to return.
func (s *Session) Close() {
	s.stop()
	s.wg.Wait()
}

// must be called with mu held
func (s *Session) abortEstimate() {
	if s.cancelEstimate != nil {
		s.cancelEstimate()
		s.cancelEstimate = nil
	}
}

// must be called with mu held
func (s *Session) resetOutput() {
	s.state.Result = nil
	s.state.Error = ""
	s.state.BookingStatus = types.BookingIdle
	s.state.Booking = nil
}

// must be called with mu held
func (s *Session) publish() State {
	s.state.Version++
	return s.snapshot()
}

func (s *Session) snapshot() State {
	st := s.state
	if st.Result != nil {
		r := *st.Result
		st.Result = &r
	}
	if st.Booking != nil {
		b := *st.Booking
		st.Booking = &b
	}
	return st
}

// MondayFirst maps time.Weekday to the 0 = Monday index used by the form.
func MondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}
