package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/dublin-research/property-cli/internal/config"
	"github.com/dublin-research/property-cli/pkg/geocode"
)

// newResolver wires the Nominatim client, file cache, and acceptance bounds
// for the processing commands.
func newResolver(bounds config.BoundsConfig) (*geocode.Resolver, error) {
	cache, err := geocode.LoadCache(cfg.Geocode.CacheFile)
	if err != nil {
		return nil, eris.Wrap(err, "load geocode cache")
	}

	client := geocode.NewClient(
		geocode.WithBaseURL(cfg.Nominatim.BaseURL),
		geocode.WithUserAgent(cfg.Nominatim.UserAgent),
		geocode.WithRateLimit(cfg.Nominatim.RateRPS),
		geocode.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Nominatim.TimeoutSecs) * time.Second,
		}),
	)

	box := geocode.NewBounds(bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon)
	return geocode.NewResolver(client, cache, box), nil
}
