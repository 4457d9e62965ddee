package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/wellplay/internal/filter"
)

var filterTopOperators bool

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter enriched wells",
	Long:  "Samples and filters the enriched wells by sub-play, fluid type and exclusive depth, date, lateral and completion ranges. With --top-operators only the wells of the leading operators are written.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(cmd.Name()); err != nil {
			return err
		}
		c, err := buildCriteria(cmd)
		if err != nil {
			return err
		}
		wells, _, err := loadWells(ctx)
		if err != nil {
			return err
		}

		res, err := filter.Run(wells, c, topOperatorOptions(), filter.WithSeed(seed()))
		if err != nil {
			return err
		}
		zap.L().Info("filter complete",
			zap.Int("input", len(wells)),
			zap.Int("kept", len(res.Wells)),
			zap.Strings("top_operators", res.Operators.Names()),
		)

		out := res.Wells
		if filterTopOperators {
			out = res.Operators.Wells
		}
		return writeWells(ctx, cmd.OutOrStdout(), out)
	},
}

func init() {
	addCriteriaFlags(filterCmd.Flags())
	addOutputFlags(filterCmd.Flags())
	filterCmd.Flags().BoolVar(&filterTopOperators, "top-operators", false, "write only wells of the top operators")
	rootCmd.AddCommand(filterCmd)
}
