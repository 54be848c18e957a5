package cache

import (
	"context"
	"log/slog"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
)

// CachingOracle answers evidence queries from a Cache, falling through to
// the wrapped oracle on a miss. Errors are never cached.
type CachingOracle struct {
	inner oracle.EvidenceOracle
	cache *Cache
	model string
}

// NewCachingOracle wraps inner. model is folded into every key so answers
// from different models never mix.
func NewCachingOracle(inner oracle.EvidenceOracle, cache *Cache, model string) *CachingOracle {
	return &CachingOracle{inner: inner, cache: cache, model: model}
}

// Query implements oracle.EvidenceOracle. Only successful answers are cached.
func (o *CachingOracle) Query(ctx context.Context, q *oracle.EvidenceQuery) (*oracle.EvidenceResult, error) {
	key, err := Key(q, o.model)
	if err != nil {
		slog.Warn("evidence cache key failed, bypassing cache", "error", err)
		return o.inner.Query(ctx, q)
	}

	if res, ok := o.cache.Get(key); ok {
		slog.Debug("evidence cache hit", "vendor", q.Candidate.Name, "kind", q.Kind, "criterion", q.Criterion)
		return res, nil
	}

	res, err := o.inner.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := o.cache.Put(key, res); err != nil {
		slog.Warn("evidence cache write failed", "error", err)
	}
	return res, nil
}
