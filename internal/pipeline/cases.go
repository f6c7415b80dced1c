package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/model"
	"github.com/dublin-research/property-cli/pkg/geocode"
)

// CaseStats summarizes a planning-case processing pass.
type CaseStats struct {
	Rows     int
	Unique   int
	Geocoded int
}

// SuccessRate returns the share of rows that received coordinates.
func (s CaseStats) SuccessRate() float64 {
	if s.Rows == 0 {
		return 0
	}
	return float64(s.Geocoded) / float64(s.Rows) * 100
}

// ProcessCases resolves coordinates for scraped planning cases. The case
// title carries the site address. Unresolvable addresses leave the
// coordinate columns empty.
func ProcessCases(ctx context.Context, resolver *geocode.Resolver, cases []model.PlanningCase, maxRows int) ([]model.ProcessedCase, CaseStats) {
	if maxRows > 0 && len(cases) > maxRows {
		zap.L().Info("processing first rows only", zap.Int("max_rows", maxRows))
		cases = cases[:maxRows]
	}

	stats := CaseStats{Rows: len(cases)}

	seen := make(map[string]bool, len(cases))
	var unique []string
	for _, c := range cases {
		if c.Title != "" && !seen[c.Title] {
			seen[c.Title] = true
			unique = append(unique, c.Title)
		}
	}
	stats.Unique = len(unique)
	zap.L().Info("resolving unique case addresses", zap.Int("count", len(unique)))

	for i, addr := range unique {
		if ctx.Err() != nil {
			break
		}
		resolver.Resolve(ctx, addr, PlanningVariants(CleanPlanningAddress(addr)))
		if (i+1)%100 == 0 {
			zap.L().Info("geocoding progress", zap.Int("done", i+1), zap.Int("total", len(unique)))
		}
	}

	out := make([]model.ProcessedCase, 0, len(cases))
	for _, c := range cases {
		p := model.ProcessedCase{PlanningCase: c}

		coords := resolver.Resolve(ctx, c.Title, PlanningVariants(CleanPlanningAddress(c.Title)))
		p.Latitude, p.Longitude = coords.Lat, coords.Lon
		if coords.Resolved() {
			stats.Geocoded++
		}

		out = append(out, p)
	}

	return out, stats
}
