package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/pipeline"
	"github.com/dublin-research/property-cli/internal/scrape"
	"github.com/dublin-research/property-cli/internal/store"
)

var (
	scrapeOutput string
	scrapeURLs   []string
	scrapeSave   bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape An Bord Pleanála case listings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		urls := scrapeURLs
		if len(urls) == 0 {
			if err := cfg.Validate("scrape"); err != nil {
				return err
			}
			urls = cfg.Scrape.URLs
		}
		output := scrapeOutput
		if output == "" {
			output = cfg.Paths.CasesFile
		}

		s := scrape.New(
			scrape.WithUserAgent(cfg.Scrape.UserAgent),
			scrape.WithDelay(time.Duration(cfg.Scrape.DelaySecs)*time.Second),
			scrape.WithHTTPClient(&http.Client{
				Timeout: time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
			}),
		)

		cases, err := s.ScrapeAll(ctx, urls)
		if err != nil {
			return eris.Wrap(err, "scrape")
		}
		if len(cases) == 0 {
			zap.L().Warn("no cases found")
			return nil
		}

		if err := pipeline.WriteCases(output, cases); err != nil {
			return eris.Wrap(err, "scrape")
		}
		zap.L().Info("saved cases", zap.Int("count", len(cases)), zap.String("output", output))

		if scrapeSave {
			if err := cfg.Validate("store"); err != nil {
				return err
			}
			st, err := store.New(ctx, cfg.Store)
			if err != nil {
				return eris.Wrap(err, "scrape: open store")
			}
			defer st.Close() //nolint:errcheck

			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "scrape: migrate store")
			}
			n, err := st.UpsertCases(ctx, cases)
			if err != nil {
				return eris.Wrap(err, "scrape: store cases")
			}
			zap.L().Info("stored cases", zap.Int("count", n))
		}

		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeOutput, "output", "", "cases CSV path (default from config)")
	scrapeCmd.Flags().StringArrayVar(&scrapeURLs, "url", nil, "listing URL (repeatable; default from config)")
	scrapeCmd.Flags().BoolVar(&scrapeSave, "save", false, "also upsert cases into the configured store")
	rootCmd.AddCommand(scrapeCmd)
}
