package services

import (
	"context"
	"time"

	"tennis-stats-api/pkg/cache"
	"tennis-stats-api/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// QueryCache is the read-through layer shared by the services. Cache
// failures are logged and fall through to the database.
type QueryCache struct {
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Manager
	log     *logrus.Entry
}

func NewQueryCache(c cache.Cache, ttl time.Duration, m *metrics.Manager, log *logrus.Entry) *QueryCache {
	if c == nil {
		c = cache.Noop{}
	}
	return &QueryCache{cache: c, ttl: ttl, metrics: m, log: log}
}

// remember fills dest from the cache, or runs load and stores the result.
func (q *QueryCache) remember(ctx context.Context, key string, dest interface{}, load func() error) error {
	if q == nil {
		return load()
	}

	hit, err := q.cache.Get(ctx, key, dest)
	if err != nil {
		q.log.WithError(err).WithField("key", key).Warn("cache read failed")
	}
	if hit {
		q.metrics.ObserveCacheLookup("hit")
		return nil
	}
	q.metrics.ObserveCacheLookup("miss")

	if err := load(); err != nil {
		return err
	}
	if err := q.cache.Set(ctx, key, dest, q.ttl); err != nil {
		q.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
	return nil
}

func (q *QueryCache) invalidate(ctx context.Context, resourceKeys ...string) {
	if q == nil {
		return
	}
	for _, key := range resourceKeys {
		if err := q.cache.Invalidate(ctx, key); err != nil {
			q.log.WithError(err).WithField("key", key).Warn("cache invalidation failed")
		}
	}
}
