package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/wellplay/internal/config"
)

var cfg *config.Config

var (
	dataLocations []string
	sqlSources    []string
)

var rootCmd = &cobra.Command{
	Use:   "wellplay",
	Short: "Eagle Ford well enrichment and filtering",
	Long:  "Loads Eagle Ford well data, derives per-foot completion metrics, gas-oil ratio and fluid type, filters wells and serves the dashboard views.",
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
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&dataLocations, "data", nil, "dataset file, URL or archive (repeatable; default dataset.sources)")
	rootCmd.PersistentFlags().StringSliceVar(&sqlSources, "source", nil, "SQL source: sqlite:PATH[#table] or postgres[:table] (repeatable)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
