package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/model"
	"github.com/dublin-research/property-cli/pkg/geocode"
)

const saleDateLayout = "02/01/2006"

// SalesStats summarizes a sales processing pass.
type SalesStats struct {
	Rows     int
	Unique   int
	Geocoded int
}

// ProcessSales derives sale month/year and cleaned price for each record and
// resolves coordinates through the cache-backed resolver. Per-record
// failures (bad date, unresolvable address) are logged and leave the derived
// fields empty; the pass always completes.
func ProcessSales(ctx context.Context, resolver *geocode.Resolver, records []model.SaleRecord, maxRows int) ([]model.ProcessedSale, SalesStats) {
	if maxRows > 0 && len(records) > maxRows {
		zap.L().Info("processing first rows only", zap.Int("max_rows", maxRows))
		records = records[:maxRows]
	}

	stats := SalesStats{Rows: len(records)}

	// Resolve unique addresses first so progress reflects geocoder work, not
	// row count. Repeated addresses then hit the cache.
	seen := make(map[string]bool, len(records))
	var unique []string
	for _, rec := range records {
		if rec.Address != "" && !seen[rec.Address] {
			seen[rec.Address] = true
			unique = append(unique, rec.Address)
		}
	}
	stats.Unique = len(unique)
	zap.L().Info("resolving unique addresses", zap.Int("count", len(unique)))

	for i, addr := range unique {
		if ctx.Err() != nil {
			break
		}
		coords := resolver.Resolve(ctx, addr, SaleVariants(CleanSaleAddress(addr)))
		if coords.Resolved() {
			stats.Geocoded++
		}
		if (i+1)%100 == 0 {
			zap.L().Info("geocoding progress", zap.Int("done", i+1), zap.Int("total", len(unique)))
		}
	}

	out := make([]model.ProcessedSale, 0, len(records))
	for _, rec := range records {
		p := model.ProcessedSale{
			DateOfSale:    rec.DateOfSale,
			Address:       rec.Address,
			County:        rec.County,
			Eircode:       rec.Eircode,
			PriceCleaned:  CleanPrice(rec.Price),
			NotFullMarket: rec.NotFullMarket,
			VATExclusive:  rec.VATExclusive,
			Description:   rec.Description,
			SizeDesc:      rec.SizeDesc,
		}

		if t, err := time.Parse(saleDateLayout, rec.DateOfSale); err == nil {
			p.SaleMonth = int(t.Month())
			p.SaleYear = t.Year()
		} else if rec.DateOfSale != "" {
			zap.L().Warn("unparseable sale date", zap.String("date", rec.DateOfSale))
		}

		coords := resolver.Resolve(ctx, rec.Address, SaleVariants(CleanSaleAddress(rec.Address)))
		p.Latitude, p.Longitude = coords.Lat, coords.Lon

		out = append(out, p)
	}

	return out, stats
}
