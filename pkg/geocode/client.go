// Package geocode resolves free-text addresses to coordinates via Nominatim,
// with a persistent on-disk cache and bounding-box validation.
package geocode

import (
	"context"
	"net/http"
	"time"

	"github.com/twpayne/go-geom"
	"golang.org/x/time/rate"
)

// Client geocodes a single free-text query.
type Client interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// Result holds the geocoding output for a query.
type Result struct {
	Latitude  float64
	Longitude float64
	Matched   bool
}

// Bounds is a lat/lon acceptance box. Matches outside it are discarded.
type Bounds struct {
	box *geom.Bounds
}

// NewBounds builds an acceptance box from lat/lon extremes.
func NewBounds(minLat, maxLat, minLon, maxLon float64) Bounds {
	return Bounds{box: geom.NewBounds(geom.XY).Set(minLon, minLat, maxLon, maxLat)}
}

// Contains reports whether the point lies inside (or on) the box.
func (b Bounds) Contains(lat, lon float64) bool {
	if b.box == nil {
		return true
	}
	return b.box.OverlapsPoint(geom.XY, geom.Coord{lon, lat})
}

// Option configures the Nominatim client.
type Option func(*client)

// WithBaseURL overrides the Nominatim endpoint (useful for tests).
func WithBaseURL(u string) Option {
	return func(c *client) { c.baseURL = u }
}

// WithUserAgent sets the User-Agent header. Nominatim's usage policy
// requires an identifying agent.
func WithUserAgent(ua string) Option {
	return func(c *client) { c.userAgent = ua }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.httpClient = hc }
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

type client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Nominatim-backed geocoding Client.
func NewClient(opts ...Option) Client {
	c := &client{
		baseURL:    "https://nominatim.openstreetmap.org",
		userAgent:  "dublin-property-cli/1.0",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(1, 1), // Nominatim policy: max 1 req/s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
