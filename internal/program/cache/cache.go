package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"enrollhub/internal/program/models"
	"enrollhub/pkg/platform/circuit"
)

const catalogKey = "programs:catalog"

// Catalog caches the full program listing in Redis. A nil *Catalog is a
// valid cache-off instance; every method degrades to a miss or a no-op so
// the service never branches on cache availability.
//
// A circuit breaker guards the Redis round trips: after repeated failures
// the cache stops reaching out and reports misses. Invalidations still go
// out while the circuit is open and double as recovery probes.
type Catalog struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewCatalog(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Catalog {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		client:  client,
		ttl:     ttl,
		breaker: circuit.New("catalog-cache"),
		logger:  logger,
	}
}

// Get returns the cached listing and whether it was present. Errors are
// reported as misses; the store of record always wins.
func (c *Catalog) Get(ctx context.Context) ([]*models.TrainingProgram, bool) {
	if c == nil || c.breaker.IsOpen() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.recordSuccess()
		return nil, false
	}
	if err != nil {
		c.recordFailure(ctx, err)
		return nil, false
	}
	c.recordSuccess()

	var programs []*models.TrainingProgram
	if err := json.Unmarshal(raw, &programs); err != nil {
		return nil, false
	}
	return programs, true
}

// Set stores the listing for the configured TTL.
func (c *Catalog) Set(ctx context.Context, programs []*models.TrainingProgram) {
	if c == nil || c.breaker.IsOpen() {
		return
	}
	raw, err := json.Marshal(programs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		c.recordFailure(ctx, err)
		return
	}
	c.recordSuccess()
}

// Invalidate drops the cached listing; called after any catalog write. It
// runs even when the breaker is open: serving stale data is worse than one
// extra failed round trip.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		c.recordFailure(ctx, err)
		return
	}
	c.recordSuccess()
}

func (c *Catalog) recordFailure(ctx context.Context, err error) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "catalog cache circuit opened, serving from store",
			"breaker", c.breaker.Name(), "error", err)
	}
}

func (c *Catalog) recordSuccess() {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.Info("catalog cache circuit closed", "breaker", c.breaker.Name())
	}
}
