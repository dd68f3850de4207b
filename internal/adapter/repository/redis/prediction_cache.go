package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/repository"
)

type cachedOutcome struct {
	Label    string `json:"label"`
	Class    int    `json:"class"`
	HasClass bool   `json:"has_class"`
}

type predictionCache struct {
	client *redis.Client
}

// NewPredictionCache creates a Redis-backed prediction cache
func NewPredictionCache(client *redis.Client) repository.PredictionCache {
	return &predictionCache{client: client}
}

func (c *predictionCache) Get(ctx context.Context, key string) (*entity.Outcome, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	outcome, err := decodeOutcome(data)
	if err != nil {
		return nil, false, err
	}
	return outcome, true, nil
}

func (c *predictionCache) Set(ctx context.Context, key string, outcome entity.Outcome, ttl time.Duration) error {
	data, err := encodeOutcome(outcome)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func encodeOutcome(outcome entity.Outcome) ([]byte, error) {
	data, err := json.Marshal(cachedOutcome{
		Label:    outcome.Label,
		Class:    outcome.Class,
		HasClass: outcome.HasClass,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode outcome: %w", err)
	}
	return data, nil
}

func decodeOutcome(data []byte) (*entity.Outcome, error) {
	var cached cachedOutcome
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached outcome: %w", err)
	}
	if cached.Label == "" {
		return nil, fmt.Errorf("cached outcome has no label")
	}
	return &entity.Outcome{
		Label:    cached.Label,
		Class:    cached.Class,
		HasClass: cached.HasClass,
	}, nil
}
