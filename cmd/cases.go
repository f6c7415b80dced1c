package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/pipeline"
)

var (
	casesInput   string
	casesOutput  string
	casesMaxRows int
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Geocode scraped planning cases",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		input := casesInput
		if input == "" {
			input = cfg.Paths.CasesFile
		}
		output := casesOutput
		if output == "" {
			output = "planning_cases_merged_processed.csv"
		}

		cases, err := pipeline.ReadCases(input)
		if err != nil {
			return eris.Wrap(err, "cases")
		}

		resolver, err := newResolver(cfg.Geocode.CasesBounds)
		if err != nil {
			return err
		}

		processed, stats := pipeline.ProcessCases(ctx, resolver, cases, casesMaxRows)
		if err := pipeline.WriteProcessedCases(output, processed); err != nil {
			return eris.Wrap(err, "cases")
		}

		zap.L().Info("case processing complete",
			zap.Int("rows", stats.Rows),
			zap.Int("unique_addresses", stats.Unique),
			zap.Int("geocoded", stats.Geocoded),
			zap.String("success_rate", fmt.Sprintf("%.1f%%", stats.SuccessRate())),
			zap.String("output", output),
		)
		return nil
	},
}

func init() {
	casesCmd.Flags().StringVar(&casesInput, "input", "", "scraped cases CSV path (default from config)")
	casesCmd.Flags().StringVar(&casesOutput, "output", "", "processed cases CSV path")
	casesCmd.Flags().IntVar(&casesMaxRows, "max-rows", 0, "process only the first N rows (0 = all)")
	rootCmd.AddCommand(casesCmd)
}
