package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/models"
)

// Store is a durable key/value store for JSON documents.
type Store interface {
	// Get returns the stored document and whether the key exists.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	// Clear removes every entry.
	Clear(ctx context.Context) error
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.File), nil
	case config.BackendBadger:
		return NewBadgerStore(cfg.BadgerDir)
	case config.BackendRedis:
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix), nil
	default:
		return nil, errors.ErrInvalidConfig.WithContext("cache_backend", cfg.Backend)
	}
}

// SummaryCache stores summarize responses keyed by item id.
type SummaryCache struct {
	store Store
}

func NewSummaryCache(store Store) *SummaryCache {
	return &SummaryCache{store: store}
}

func (c *SummaryCache) Get(ctx context.Context, id string) (*models.SummaryResponse, bool, error) {
	raw, found, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, false, errors.ErrCacheRead.WithError(err).WithContext("id", id)
	}
	if !found {
		return nil, false, nil
	}

	var resp models.SummaryResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, errors.ErrCacheRead.WithError(fmt.Errorf("decode entry: %w", err)).WithContext("id", id)
	}
	return &resp, true, nil
}

func (c *SummaryCache) Set(ctx context.Context, id string, resp *models.SummaryResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return errors.ErrCacheWrite.WithError(err).WithContext("id", id)
	}
	if err := c.store.Set(ctx, id, raw); err != nil {
		return errors.ErrCacheWrite.WithError(err).WithContext("id", id)
	}
	return nil
}
