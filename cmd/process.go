package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/pipeline"
)

var (
	processInput   string
	processOutput  string
	processMaxRows int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Clean, derive, and geocode merged sale records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		input := processInput
		if input == "" {
			input = cfg.Paths.MergedFile
		}
		output := processOutput
		if output == "" {
			output = cfg.Paths.FinalFile
		}

		records, err := pipeline.ReadSales(input)
		if err != nil {
			return eris.Wrap(err, "process")
		}

		resolver, err := newResolver(cfg.Geocode.SalesBounds)
		if err != nil {
			return err
		}

		processed, stats := pipeline.ProcessSales(ctx, resolver, records, processMaxRows)
		if err := pipeline.WriteSales(output, processed); err != nil {
			return eris.Wrap(err, "process")
		}

		zap.L().Info("processing complete",
			zap.Int("rows", stats.Rows),
			zap.Int("unique_addresses", stats.Unique),
			zap.Int("geocoded", stats.Geocoded),
			zap.String("output", output),
		)
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processInput, "input", "", "merged CSV path (default from config)")
	processCmd.Flags().StringVar(&processOutput, "output", "", "processed CSV path (default from config)")
	processCmd.Flags().IntVar(&processMaxRows, "max-rows", 0, "process only the first N rows (0 = all)")
	rootCmd.AddCommand(processCmd)
}
