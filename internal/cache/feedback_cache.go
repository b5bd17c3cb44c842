package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storewise/storefront-api/internal/models"
	"github.com/storewise/storefront-api/internal/repository"
)

const listTTL = 2 * time.Minute

// CachedFeedbackRepository wraps a FeedbackRepository with a cache-aside
// list-by-product cache. Mutations invalidate the affected product's entry,
// so clients can merge mutation results locally instead of re-fetching.
// Redis failures degrade to the database path and are only logged.
type CachedFeedbackRepository struct {
	realRepo repository.FeedbackRepository
	redis    *redis.Client
	log      *slog.Logger
}

func NewCachedFeedbackRepository(realRepo repository.FeedbackRepository, rdb *redis.Client, log *slog.Logger) *CachedFeedbackRepository {
	return &CachedFeedbackRepository{realRepo: realRepo, redis: rdb, log: log}
}

func listKey(storeID, productID string) string {
	return fmt.Sprintf("feedback:%s:%s", storeID, productID)
}

func (c *CachedFeedbackRepository) ListByProduct(ctx context.Context, storeID, productID string) ([]models.Feedback, error) {
	key := listKey(storeID, productID)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []models.Feedback
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		c.log.Warn("discarding malformed cache entry", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("redis get failed, falling back to db", "key", key, "error", err)
	}

	out, err := c.realRepo.ListByProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(out); err == nil {
		if err := c.redis.Set(ctx, key, data, listTTL).Err(); err != nil {
			c.log.Warn("failed to cache feedback list", "key", key, "error", err)
		}
	}
	return out, nil
}

func (c *CachedFeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if err := c.realRepo.Create(ctx, fb); err != nil {
		return err
	}
	c.invalidate(ctx, fb.StoreID, fb.ProductID)
	return nil
}

func (c *CachedFeedbackRepository) GetByID(ctx context.Context, storeID, id string) (*models.Feedback, error) {
	return c.realRepo.GetByID(ctx, storeID, id)
}

func (c *CachedFeedbackRepository) Delete(ctx context.Context, storeID, id string) error {
	fb, err := c.realRepo.GetByID(ctx, storeID, id)
	if err != nil {
		return err
	}
	if err := c.realRepo.Delete(ctx, storeID, id); err != nil {
		return err
	}
	c.invalidate(ctx, storeID, fb.ProductID)
	return nil
}

func (c *CachedFeedbackRepository) invalidate(ctx context.Context, storeID, productID string) {
	key := listKey(storeID, productID)
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		c.log.Warn("failed to invalidate feedback cache", "key", key, "error", err)
	}
}
