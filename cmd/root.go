package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dublin-research/property-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "property-cli",
	Short: "Dublin property and planning data pipeline",
	Long:  "Merges Property Price Register exports, cleans and geocodes addresses via Nominatim with a persistent cache, and scrapes An Bord Pleanála planning cases.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
