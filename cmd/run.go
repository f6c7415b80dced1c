package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/merge"
	"github.com/dublin-research/property-cli/internal/model"
	"github.com/dublin-research/property-cli/internal/pipeline"
	"github.com/dublin-research/property-cli/internal/store"
)

var runMaxRows int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: merge then process",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		finish := startRun(ctx, "run")

		zap.L().Info("step 1: merging CSV files")
		if _, err := merge.Dir(cfg.Paths.InputDir, cfg.Paths.MergedFile); err != nil {
			finish(model.RunStatusFailed, 0, 0, err)
			return eris.Wrap(err, "run: merge")
		}

		zap.L().Info("step 2: processing merged records")
		records, err := pipeline.ReadSales(cfg.Paths.MergedFile)
		if err != nil {
			finish(model.RunStatusFailed, 0, 0, err)
			return eris.Wrap(err, "run: read merged")
		}

		resolver, err := newResolver(cfg.Geocode.SalesBounds)
		if err != nil {
			finish(model.RunStatusFailed, 0, 0, err)
			return err
		}

		processed, stats := pipeline.ProcessSales(ctx, resolver, records, runMaxRows)
		if err := pipeline.WriteSales(cfg.Paths.FinalFile, processed); err != nil {
			finish(model.RunStatusFailed, stats.Rows, stats.Geocoded, err)
			return eris.Wrap(err, "run: write final")
		}

		finish(model.RunStatusComplete, stats.Rows, stats.Geocoded, nil)
		zap.L().Info("pipeline complete",
			zap.Int("rows", stats.Rows),
			zap.Int("geocoded", stats.Geocoded),
			zap.String("output", cfg.Paths.FinalFile),
		)
		return nil
	},
}

// startRun records the invocation in the store when one is configured.
// The returned finish func is a no-op otherwise.
func startRun(ctx context.Context, command string) func(model.RunStatus, int, int, error) {
	noop := func(model.RunStatus, int, int, error) {}

	if cfg.Store.Driver == "" {
		return noop
	}
	if err := cfg.Validate("store"); err != nil {
		zap.L().Warn("store misconfigured, run will not be recorded", zap.Error(err))
		return noop
	}

	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		zap.L().Warn("store unavailable, run will not be recorded", zap.Error(err))
		return noop
	}
	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("store migration failed", zap.Error(err))
		st.Close() //nolint:errcheck
		return noop
	}

	run, err := st.CreateRun(ctx, command)
	if err != nil {
		zap.L().Warn("could not record run", zap.Error(err))
		st.Close() //nolint:errcheck
		return noop
	}

	return func(status model.RunStatus, rows, geocoded int, runErr error) {
		if err := st.FinishRun(ctx, run.ID, status, rows, geocoded, runErr); err != nil {
			zap.L().Warn("could not finish run record", zap.Error(err))
		}
		st.Close() //nolint:errcheck
	}
}

func init() {
	runCmd.Flags().IntVar(&runMaxRows, "max-rows", 0, "process only the first N rows (0 = all)")
	rootCmd.AddCommand(runCmd)
}
