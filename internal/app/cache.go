package app

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/salespulse/config"
	"github.com/guttosm/salespulse/internal/cache"
)

// cacheOpener is an indirection for unit testing; defaults to cache.Open
var cacheOpener = cache.Open

// InitCache opens the dataset cache described by cfg.Redis.
//
// Parameters:
//   - ctx (context.Context): bounds the initial connectivity check.
//   - cfg (config.Config): application configuration; REDIS_URL and CACHE_TTL.
//
// Behavior:
//   - An empty REDIS_URL yields the no-op cache (caching disabled).
//   - Otherwise connects and pings Redis within 5 seconds.
//
// Returns:
//   - cache.DatasetCache: ready-to-use cache, never nil on success.
//   - error: if Redis is configured but unreachable.
//
// Example usage:
//
//	c, err := app.InitCache(ctx, config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ failed to connect: %v", err)
//	}
//	defer c.Close()
func InitCache(ctx context.Context, cfg config.Config) (cache.DatasetCache, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := cacheOpener(ctx, cfg.Redis.URL, cfg.Redis.TTL)
	if err != nil {
		return nil, fmt.Errorf("open dataset cache: %w", err)
	}
	return c, nil
}
