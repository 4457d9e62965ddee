package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Load wells and write them with derived fields",
	Long:  "Loads every dataset source, adds per-foot frac fluid, proppant and cost, gas-oil ratio and fluid type, and writes the enriched wells.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(cmd.Name()); err != nil {
			return err
		}
		wells, stats, err := loadWells(ctx)
		if err != nil {
			return err
		}
		for _, st := range stats {
			if st.FieldErrorCount > 0 || len(st.MissingColumns) > 0 {
				zap.L().Warn("source has incomplete data",
					zap.String("source", st.Source),
					zap.Int("field_errors", st.FieldErrorCount),
					zap.Strings("missing_columns", st.MissingColumns),
				)
			}
		}

		return writeWells(ctx, cmd.OutOrStdout(), wells)
	},
}

func init() {
	addOutputFlags(enrichCmd.Flags())
	rootCmd.AddCommand(enrichCmd)
}
