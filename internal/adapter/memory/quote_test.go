package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

func TestQuoteStore_TakeOnce(t *testing.T) {
	s := NewQuoteStore(time.Minute)
	ctx := context.Background()
	est := models.Estimate{ID: uuid.New(), Quote: models.Quote{Fare: 99}}

	if err := s.Save(ctx, est); err != nil {
		t.Fatal(err)
	}
	if got, err := s.Peek(ctx, est.ID); err != nil || got.Fare != 99 {
		t.Fatalf("Peek() = %+v, %v", got, err)
	}
	if _, err := s.Take(ctx, est.ID); err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if _, err := s.Take(ctx, est.ID); !errors.Is(err, types.ErrEstimateNotFound) {
		t.Fatalf("second Take() = %v", err)
	}
}

func TestQuoteStore_Expiry(t *testing.T) {
	s := NewQuoteStore(time.Minute)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	fresh := models.Estimate{ID: uuid.New()}
	stale := models.Estimate{ID: uuid.New()}
	_ = s.Save(ctx, stale)

	now = now.Add(45 * time.Second)
	_ = s.Save(ctx, fresh)

	now = now.Add(30 * time.Second)
	if _, err := s.Peek(ctx, stale.ID); !errors.Is(err, types.ErrEstimateNotFound) {
		t.Fatalf("expired quote must not be visible, got %v", err)
	}
	if n := s.evictExpired(); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if _, err := s.Take(ctx, fresh.ID); err != nil {
		t.Fatalf("fresh quote must still be bookable: %v", err)
	}
}

func TestQuoteStore_ConcurrentTake(t *testing.T) {
	s := NewQuoteStore(time.Minute)
	ctx := context.Background()
	est := models.Estimate{ID: uuid.New()}
	_ = s.Save(ctx, est)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(ctx, est.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("quote taken %d times, want exactly once", wins)
	}
}
