package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/merge"
)

var (
	mergeInputDir string
	mergeOutput   string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge register CSV/XLSX exports into a single CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		inputDir := mergeInputDir
		if inputDir == "" {
			inputDir = cfg.Paths.InputDir
		}
		output := mergeOutput
		if output == "" {
			output = cfg.Paths.MergedFile
		}

		res, err := merge.Dir(inputDir, output)
		if err != nil {
			return eris.Wrap(err, "merge")
		}

		zap.L().Info("merge complete",
			zap.Int("files", res.Files),
			zap.Int("skipped", res.Skipped),
			zap.Int("rows", res.Rows),
			zap.String("output", output),
		)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeInputDir, "input", "", "directory of register exports (default from config)")
	mergeCmd.Flags().StringVar(&mergeOutput, "output", "", "merged CSV path (default from config)")
	rootCmd.AddCommand(mergeCmd)
}
