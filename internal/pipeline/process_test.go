package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublin-research/property-cli/internal/model"
	"github.com/dublin-research/property-cli/pkg/geocode"
)

// stubClient returns a fixed point for every query and counts calls.
type stubClient struct {
	lat, lon float64
	matched  bool
	calls    int
}

func (s *stubClient) Geocode(_ context.Context, _ string) (*geocode.Result, error) {
	s.calls++
	return &geocode.Result{Latitude: s.lat, Longitude: s.lon, Matched: s.matched}, nil
}

func newTestResolver(t *testing.T, client geocode.Client, bounds geocode.Bounds) *geocode.Resolver {
	t.Helper()
	cache, err := geocode.LoadCache(filepath.Join(t.TempDir(), "cache.json"))
	require.NoError(t, err)
	return geocode.NewResolver(client, cache, bounds)
}

func dublinBounds() geocode.Bounds {
	return geocode.NewBounds(52.9, 53.7, -6.5, -6.0)
}

func TestProcessSales_DerivesFields(t *testing.T) {
	client := &stubClient{lat: 53.35, lon: -6.26, matched: true}
	resolver := newTestResolver(t, client, dublinBounds())

	records := []model.SaleRecord{
		{
			DateOfSale: "15/03/2023",
			Address:    "12 CASTLE STREET, DUBLIN 2",
			County:     "Dublin",
			Price:      "€450,000.00",
		},
	}

	processed, stats := ProcessSales(context.Background(), resolver, records, 0)
	require.Len(t, processed, 1)

	p := processed[0]
	assert.Equal(t, "15/03/2023", p.DateOfSale)
	assert.Equal(t, 3, p.SaleMonth)
	assert.Equal(t, 2023, p.SaleYear)
	require.NotNil(t, p.PriceCleaned)
	assert.InDelta(t, 450000.0, *p.PriceCleaned, 0.001)
	require.NotNil(t, p.Latitude)
	assert.InDelta(t, 53.35, *p.Latitude, 0.001)
	require.NotNil(t, p.Longitude)
	assert.InDelta(t, -6.26, *p.Longitude, 0.001)

	assert.Equal(t, 1, stats.Rows)
	assert.Equal(t, 1, stats.Unique)
	assert.Equal(t, 1, stats.Geocoded)
}

func TestProcessSales_BadDateKeptWithEmptyDerived(t *testing.T) {
	client := &stubClient{matched: false}
	resolver := newTestResolver(t, client, dublinBounds())

	records := []model.SaleRecord{{DateOfSale: "not-a-date", Address: "X, DUBLIN"}}
	processed, _ := ProcessSales(context.Background(), resolver, records, 0)

	require.Len(t, processed, 1)
	assert.Zero(t, processed[0].SaleMonth)
	assert.Zero(t, processed[0].SaleYear)
	assert.Nil(t, processed[0].Latitude)
	assert.Nil(t, processed[0].Longitude)
}

func TestProcessSales_MaxRows(t *testing.T) {
	client := &stubClient{lat: 53.35, lon: -6.26, matched: true}
	resolver := newTestResolver(t, client, dublinBounds())

	records := []model.SaleRecord{
		{DateOfSale: "01/01/2023", Address: "A, DUBLIN"},
		{DateOfSale: "02/01/2023", Address: "B, DUBLIN"},
		{DateOfSale: "03/01/2023", Address: "C, DUBLIN"},
	}

	processed, stats := ProcessSales(context.Background(), resolver, records, 2)
	assert.Len(t, processed, 2)
	assert.Equal(t, 2, stats.Rows)
}

func TestProcessSales_RepeatedAddressGeocodedOnce(t *testing.T) {
	client := &stubClient{lat: 53.35, lon: -6.26, matched: true}
	resolver := newTestResolver(t, client, dublinBounds())

	records := []model.SaleRecord{
		{DateOfSale: "01/01/2023", Address: "SAME HOUSE, DUBLIN 1"},
		{DateOfSale: "02/01/2023", Address: "SAME HOUSE, DUBLIN 1"},
	}

	_, stats := ProcessSales(context.Background(), resolver, records, 0)
	assert.Equal(t, 1, stats.Unique)
	// First variant matched, so the client is hit exactly once; every later
	// lookup for the same raw address is a cache hit.
	assert.Equal(t, 1, client.calls)
}

func TestProcessCases_SuccessRate(t *testing.T) {
	client := &stubClient{lat: 53.3, lon: -6.2, matched: true}
	resolver := newTestResolver(t, client, geocode.NewBounds(52.8, 53.8, -6.6, -5.9))

	cases := []model.PlanningCase{
		{Reference: "ABP-1", Title: "Grace Park Road, Drumcondra, Dublin 9"},
		{Reference: "ABP-2", Title: ""},
	}

	processed, stats := ProcessCases(context.Background(), resolver, cases, 0)
	require.Len(t, processed, 2)

	require.NotNil(t, processed[0].Latitude)
	assert.Nil(t, processed[1].Latitude)

	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.Geocoded)
	assert.InDelta(t, 50.0, stats.SuccessRate(), 0.001)
}
