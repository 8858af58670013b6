package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

type quoteEntry struct {
	estimate  models.Estimate
	expiresAt time.Time
}

// QuoteStore is the in-process quote cache used when redis is not configured.
type QuoteStore struct {
	mu     sync.Mutex
	quotes map[uuid.UUID]quoteEntry
	ttl    time.Duration
	now    func() time.Time
}

func NewQuoteStore(ttl time.Duration) *QuoteStore {
	return &QuoteStore{
		quotes: make(map[uuid.UUID]quoteEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *QuoteStore) Save(_ context.Context, estimate models.Estimate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes[estimate.ID] = quoteEntry{estimate: estimate, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *QuoteStore) Take(_ context.Context, id uuid.UUID) (models.Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.quotes[id]
	if !ok {
		return models.Estimate{}, types.ErrEstimateNotFound
	}
	delete(s.quotes, id)

	if s.now().After(e.expiresAt) {
		return models.Estimate{}, types.ErrEstimateNotFound
	}
	return e.estimate, nil
}

func (s *QuoteStore) Peek(_ context.Context, id uuid.UUID) (models.Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.quotes[id]
	if !ok || s.now().After(e.expiresAt) {
		return models.Estimate{}, types.ErrEstimateNotFound
	}
	return e.estimate, nil
}

// Run evicts expired quotes every interval until ctx is done.
func (s *QuoteStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *QuoteStore) evictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.quotes {
		if now.After(e.expiresAt) {
			delete(s.quotes, id)
			n++
		}
	}
	return n
}

func (s *QuoteStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quotes)
}
