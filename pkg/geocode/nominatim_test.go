package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Geocode_Match(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"lat":"53.3498","lon":"-6.2603","display_name":"Dublin, Ireland"}]`))
	}))
	defer srv.Close()

	c := NewClient(
		WithBaseURL(srv.URL),
		WithUserAgent("test-agent"),
		WithRateLimit(1000),
	)

	res, err := c.Geocode(context.Background(), "Castle Street, Dublin, Ireland")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.InDelta(t, 53.3498, res.Latitude, 1e-9)
	assert.InDelta(t, -6.2603, res.Longitude, 1e-9)
	assert.Equal(t, "Castle Street, Dublin, Ireland", gotQuery)
	assert.Equal(t, "test-agent", gotUA)
}

func TestClient_Geocode_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
	res, err := c.Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestClient_Geocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := c.Geocode(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_Geocode_CancelledContext(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:0"), WithRateLimit(1000))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Geocode(ctx, "anything")
	require.Error(t, err)
}

func TestBounds_Contains(t *testing.T) {
	b := NewBounds(52.9, 53.7, -6.5, -6.0)

	assert.True(t, b.Contains(53.3498, -6.2603))  // city centre
	assert.False(t, b.Contains(51.8985, -8.4756)) // Cork
	assert.False(t, b.Contains(53.3498, -9.0))    // right latitude, wrong longitude

	// Zero-value bounds accept everything.
	assert.True(t, Bounds{}.Contains(0, 0))
}
