package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
)

func TestQuoteStore(t *testing.T) {
	redisAddr := os.Getenv("FARE_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("FARE_REDIS_ADDR not set; skipping integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	store := NewQuoteStore(rdb, time.Minute)
	ctx := context.Background()

	est := models.Estimate{
		ID:      uuid.New(),
		Request: models.EstimateRequest{Pickup: "Gulshan 1", Destination: "Uttara", Category: types.Premium},
		Quote:   models.Quote{Fare: 512.25, ETAMinutes: 17},
	}
	if err := store.Save(ctx, est); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	peeked, err := store.Peek(ctx, est.ID)
	if err != nil || peeked.Fare != 512.25 {
		t.Fatalf("Peek() = %+v, %v", peeked, err)
	}

	got, err := store.Take(ctx, est.ID)
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if got.Request.Category != types.Premium || got.ETAMinutes != 17 {
		t.Fatalf("unexpected estimate %+v", got)
	}

	if _, err := store.Take(ctx, est.ID); !errors.Is(err, types.ErrEstimateNotFound) {
		t.Fatalf("second Take() = %v, want ErrEstimateNotFound", err)
	}
}

func TestQuoteKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a34-1111-4c3e-9e1a-0123456789ab")
	if got := quoteKey(id); got != "estimator:quote:6f1c2a34-1111-4c3e-9e1a-0123456789ab" {
		t.Fatalf("quoteKey() = %q", got)
	}
}
