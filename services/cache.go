package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rpupo63/student-projects-backend/errs"
	"github.com/rpupo63/student-projects-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	facultiesCacheKey  = "reference:faculties"
	categoriesCacheKey = "reference:categories"
)

// ReferenceCache serves the seeded faculties and reference categories. With a
// redis client it reads through redis; without one every call hits the store.
// Concurrent misses for the same key share one load.
type ReferenceCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	store  Store
	group  singleflight.Group
	logger zerolog.Logger
}

// NewReferenceCache builds a cache over store. rdb may be nil.
func NewReferenceCache(store Store, rdb *redis.Client, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{
		rdb:    rdb,
		ttl:    ttl,
		store:  store,
		logger: log.With().Str("component", "referenceCache").Logger(),
	}
}

func (c *ReferenceCache) Faculties(ctx context.Context) ([]models.Faculty, error) {
	return readThrough(ctx, c, facultiesCacheKey, func(ctx context.Context) ([]models.Faculty, error) {
		faculties, err := c.store.Faculties().FindAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "faculties", err)
		}
		return faculties, nil
	})
}

// ReferenceCategories returns the non-custom categories.
func (c *ReferenceCache) ReferenceCategories(ctx context.Context) ([]models.Category, error) {
	return readThrough(ctx, c, categoriesCacheKey, func(ctx context.Context) ([]models.Category, error) {
		categories, err := c.store.Categories().FindReference(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "categories", err)
		}
		return categories, nil
	})
}

// Invalidate drops both cached lists.
func (c *ReferenceCache) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, facultiesCacheKey, categoriesCacheKey).Err()
}

func readThrough[T any](ctx context.Context, c *ReferenceCache, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if c.rdb == nil {
		return load(ctx)
	}

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		ctx := shared
		raw, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var cached []T
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			c.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		} else if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, loading from database")
		}

		fresh, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if payload, err := json.Marshal(fresh); err == nil {
			if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
				c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
			}
		}
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]T), nil
	}
}
