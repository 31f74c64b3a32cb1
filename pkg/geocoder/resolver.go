package geocoder

import (
	"context"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"go.uber.org/zap"
)

// Geocoder is the external lookup the resolver wraps.
type Geocoder interface {
	Search(ctx context.Context, query string) (*datastructure.Location, error)
}

// Resolver answers location queries from the persistent cache and falls
// through to the external geocoder at most once per unique query string for
// the lifetime of the cache.
type Resolver struct {
	geocoder Geocoder
	cache    *Cache
	log      *zap.Logger
}

func NewResolver(geocoder Geocoder, cache *Cache, log *zap.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		cache:    cache,
		log:      log,
	}
}

// Resolve returns the location for query, (nil, nil) when the geocoder has
// no match. Cached entries with a country code are served without an
// external call. Entries that were stored without a country code are
// re-resolved, only a complete entry counts as settled. A "no match" is not
// cached, the next load cycle may retry it.
func (r *Resolver) Resolve(ctx context.Context, query string) (*datastructure.Location, error) {
	if loc, ok := r.cache.Get(query); ok && loc != nil && loc.CountryCode != "" {
		return loc, nil
	}

	loc, err := r.geocoder.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		r.log.Debug("geocoder had no match", zap.String("query", query))
		return nil, nil
	}

	if err := r.cache.Put(query, loc); err != nil {
		// a failed persist loses the cache entry, not the resolution
		r.log.Warn("persisting geocode cache failed", zap.Error(err))
	}
	return loc, nil
}
