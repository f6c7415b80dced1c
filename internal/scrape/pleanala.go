// Package scrape extracts planning-case metadata from An Bord Pleanála
// case-listing pages.
package scrape

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/model"
)

// Scraper fetches and parses case-listing pages sequentially, with a fixed
// delay between page fetches.
type Scraper struct {
	client    *http.Client
	userAgent string
	delay     time.Duration
}

// Option configures the Scraper.
type Option func(*Scraper)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Scraper) { s.client = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) { s.userAgent = ua }
}

// WithDelay sets the pause between page fetches.
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) { s.delay = d }
}

// New creates a Scraper.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: "Mozilla/5.0 (compatible; DublinPropertyBot/1.0)",
		delay:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeAll fetches every listing URL in order, pausing between pages, and
// returns the combined cases deduplicated by reference. A page that fails
// is logged and skipped.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string) ([]model.PlanningCase, error) {
	var all []model.PlanningCase

	for i, u := range urls {
		if i > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return Dedupe(all), eris.Wrap(ctx.Err(), "scrape: cancelled")
			}
		}

		cases, err := s.ScrapeURL(ctx, u)
		if err != nil {
			zap.L().Warn("scrape: page failed", zap.String("url", u), zap.Error(err))
			continue
		}
		zap.L().Info("scraped page", zap.String("url", u), zap.Int("cases", len(cases)))
		all = append(all, cases...)
	}

	deduped := Dedupe(all)
	if removed := len(all) - len(deduped); removed > 0 {
		zap.L().Info("removed duplicate cases", zap.Int("count", removed))
	}
	return deduped, nil
}

// ScrapeURL fetches one listing page and parses its case blocks.
func (s *Scraper) ScrapeURL(ctx context.Context, pageURL string) ([]model.PlanningCase, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: build request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: fetch")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("scrape: status %d", resp.StatusCode)
	}

	return ParseCases(resp.Body)
}

// ParseCases extracts planning cases from listing-page HTML. Each case sits
// in a div.cell containing an a.card-item; cells without a card link are
// layout chrome and skipped.
func ParseCases(r io.Reader) ([]model.PlanningCase, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: parse html")
	}

	var cases []model.PlanningCase

	doc.Find("div.cell").Each(func(_ int, cell *goquery.Selection) {
		if cell.Find("a.card-item").Length() == 0 {
			return
		}

		c := model.PlanningCase{
			Type:  cleanText(cell.Find("span.meta").First().Text()),
			Title: cleanText(cell.Find("span.title").First().Text()),
		}

		cell.Find("span.details").Each(func(_ int, span *goquery.Selection) {
			text := strings.TrimSpace(span.Text())
			switch {
			case strings.Contains(text, "Case reference:"):
				c.Reference = afterLabel(text, "Case reference:")
			case strings.Contains(text, "Status:"):
				c.Status = afterLabel(text, "Status:")
			case strings.Contains(text, "Description:"):
				c.Description = afterLabel(text, "Description:")
			case strings.Contains(text, "Date lodged:"):
				// "Date lodged: <d>; Signed: <d>" holds both dates.
				parts := strings.SplitN(text, ";", 2)
				c.DateLodged = afterLabel(parts[0], "Date lodged:")
				if len(parts) == 2 {
					c.DateSigned = afterLabel(parts[1], "Signed:")
				}
			case strings.Contains(text, "EIAR:"):
				c.EIAR = afterLabel(text, "EIAR:")
			case strings.Contains(text, "NIS:"):
				c.NIS = afterLabel(text, "NIS:")
			}
		})

		var parties []string
		cell.Find("div.details ul li").Each(func(_ int, li *goquery.Selection) {
			if p := cleanText(li.Text()); p != "" {
				parties = append(parties, p)
			}
		})
		c.Parties = strings.Join(parties, "; ")

		cases = append(cases, c)
	})

	return cases, nil
}

// Dedupe keeps the first occurrence of each case reference. Cases without a
// reference are kept as-is.
func Dedupe(cases []model.PlanningCase) []model.PlanningCase {
	seen := make(map[string]bool, len(cases))
	out := make([]model.PlanningCase, 0, len(cases))
	for _, c := range cases {
		if c.Reference != "" {
			if seen[c.Reference] {
				continue
			}
			seen[c.Reference] = true
		}
		out = append(out, c)
	}
	return out
}

// afterLabel returns the trimmed text following a "Label:" prefix.
func afterLabel(text, label string) string {
	_, rest, found := strings.Cut(text, label)
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

// cleanText collapses internal whitespace, matching how nested markup
// renders as text.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
