package geocode

import (
	"context"

	"go.uber.org/zap"
)

// Resolver runs the candidate loop: for a raw address it tries a fixed list
// of query variants in order and accepts the first match inside the bounds.
// Results, including misses, go through the cache keyed by the raw address.
type Resolver struct {
	client Client
	cache  *FileCache
	bounds Bounds
}

// NewResolver creates a Resolver over the given client, cache, and bounds.
func NewResolver(client Client, cache *FileCache, bounds Bounds) *Resolver {
	return &Resolver{client: client, cache: cache, bounds: bounds}
}

// Resolve returns coordinates for the raw address, consulting the cache
// first. Variants are tried in order; a variant that errors is skipped. When
// every variant genuinely misses, a null pair is cached and returned. When
// the context is cancelled or every attempt errored, the result is returned
// uncached so the address can be retried on a later run. Resolve itself
// never fails on lookup errors; the pipeline is best-effort.
func (r *Resolver) Resolve(ctx context.Context, raw string, variants []string) Coords {
	if raw == "" {
		return Coords{}
	}

	if cached, ok := r.cache.Get(raw); ok {
		return cached
	}

	attempts, failures := 0, 0
	for _, variant := range variants {
		if variant == "" {
			continue
		}

		attempts++
		result, err := r.client.Geocode(ctx, variant)
		if err != nil {
			failures++
			zap.L().Debug("geocode: variant failed",
				zap.String("variant", variant),
				zap.Error(err),
			)
			continue
		}
		if !result.Matched {
			continue
		}
		if !r.bounds.Contains(result.Latitude, result.Longitude) {
			zap.L().Debug("geocode: match outside bounds",
				zap.String("variant", variant),
				zap.Float64("lat", result.Latitude),
				zap.Float64("lon", result.Longitude),
			)
			continue
		}

		coords := Coords{Lat: &result.Latitude, Lon: &result.Longitude}
		if err := r.cache.Put(raw, coords); err != nil {
			zap.L().Warn("geocode: cache write failed", zap.Error(err))
		}
		return coords
	}

	// A cancelled context or a run of transport failures is not a no-match:
	// caching it would pin the address as unmatched forever.
	if ctx.Err() != nil || (attempts > 0 && failures == attempts) {
		zap.L().Debug("geocode: lookup inconclusive, not caching", zap.String("address", raw))
		return Coords{}
	}

	zap.L().Info("geocode: no coordinates found", zap.String("address", raw))
	miss := Coords{}
	if err := r.cache.Put(raw, miss); err != nil {
		zap.L().Warn("geocode: cache write failed", zap.Error(err))
	}
	return miss
}
