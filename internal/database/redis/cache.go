package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CacheRepository) GetSalesSummary(ctx context.Context, key string) (*entity.SalesSummary, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var summary entity.SalesSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *CacheRepository) SetSalesSummary(ctx context.Context, key string, summary *entity.SalesSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, key, data, r.ttl).Err()
}
