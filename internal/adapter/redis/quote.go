package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
)

const quoteKeyPrefix = "estimator:quote:%s"

// QuoteStore keeps computed estimates in redis until booked or expired.
type QuoteStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewQuoteStore(client *redis.Client, ttl time.Duration) *QuoteStore {
	return &QuoteStore{redis: client, ttl: ttl}
}

func (s *QuoteStore) Save(ctx context.Context, estimate models.Estimate) error {
	const op = "QuoteStore.Save"

	body, err := json.Marshal(estimate)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: marshal: %w", op, err))
	}

	if err := s.redis.Set(ctx, quoteKey(estimate.ID), body, s.ttl).Err(); err != nil {
		ctx = wrap.WithAction(ctx, types.ActionCacheFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// Take returns the estimate and removes it in one step, so a quote is booked at most once.
func (s *QuoteStore) Take(ctx context.Context, id uuid.UUID) (models.Estimate, error) {
	const op = "QuoteStore.Take"

	body, err := s.redis.GetDel(ctx, quoteKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Estimate{}, types.ErrEstimateNotFound
	}
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionCacheFailed)
		return models.Estimate{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	var estimate models.Estimate
	if err := json.Unmarshal(body, &estimate); err != nil {
		return models.Estimate{}, wrap.Error(ctx, fmt.Errorf("%s: unmarshal: %w", op, err))
	}
	return estimate, nil
}

// Peek returns the estimate without consuming it.
func (s *QuoteStore) Peek(ctx context.Context, id uuid.UUID) (models.Estimate, error) {
	const op = "QuoteStore.Peek"

	body, err := s.redis.Get(ctx, quoteKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Estimate{}, types.ErrEstimateNotFound
	}
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionCacheFailed)
		return models.Estimate{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	var estimate models.Estimate
	if err := json.Unmarshal(body, &estimate); err != nil {
		return models.Estimate{}, wrap.Error(ctx, fmt.Errorf("%s: unmarshal: %w", op, err))
	}
	return estimate, nil
}

func quoteKey(id uuid.UUID) string {
	return fmt.Sprintf(quoteKeyPrefix, id)
}
