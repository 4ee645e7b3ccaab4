package resolver

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"calorie-bot/internal/models"
)

// Remote is the third lookup tier: an external nutrition database.
type Remote interface {
	Resolve(ctx context.Context, query string) (int, error)
}

// Pipeline resolves a query through three tiers in strict order: the static
// table, the persistent cache, then the remote database. The first hit wins;
// a remote hit is written back to the cache under the exact normalized query.
type Pipeline struct {
	table  map[string]int
	cache  *EnergyCache
	remote Remote
	log    *zap.Logger
}

func NewPipeline(table map[string]int, cache *EnergyCache, remote Remote, log *zap.Logger) *Pipeline {
	return &Pipeline{table: table, cache: cache, remote: remote, log: log}
}

// Normalize produces the canonical form every tier is keyed by.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Resolve returns the kcal/100g value for a query, the tier that produced it,
// and whether it was found at all. Remote failures are mapped to not-found;
// the caller never sees a transport error.
func (p *Pipeline) Resolve(ctx context.Context, query string) (int, models.Source, bool) {
	q := Normalize(query)

	if kcal, ok := p.table[q]; ok {
		return kcal, models.SourceLocal, true
	}
	if kcal, ok := p.cache.Get(q); ok {
		return kcal, models.SourceCache, true
	}

	kcal, err := p.remote.Resolve(ctx, q)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.log.Warn("remote lookup failed", zap.String("query", q), zap.Error(err))
		}
		return 0, "", false
	}

	if err := p.cache.Put(q, kcal); err != nil {
		p.log.Error("failed to persist cache entry", zap.String("query", q), zap.Error(err))
	}
	return kcal, models.SourceRemote, true
}
