package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/wellplay/internal/dashboard"
	"github.com/sells-group/wellplay/internal/filter"
)

var (
	viewOperator string
	viewBox      string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the dashboard report for a filter",
	Long:  "Filters the wells and prints the tab metrics, top-operator comparison, linked chart series and map extent as JSON.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(cmd.Name()); err != nil {
			return err
		}
		c, err := buildCriteria(cmd)
		if err != nil {
			return err
		}
		var sel dashboard.Selection
		if viewBox != "" {
			box, err := parseBox(viewBox)
			if err != nil {
				return err
			}
			sel.Map = &box
		}

		wells, _, err := loadWells(ctx)
		if err != nil {
			return err
		}
		res, err := filter.Run(wells, c, topOperatorOptions(), filter.WithSeed(seed()))
		if err != nil {
			return err
		}
		report, err := dashboard.Build(res, sel, viewOperator, dashboardOptions())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), report)
	},
}

// parseBox parses "minLon,minLat,maxLon,maxLat".
func parseBox(s string) (dashboard.Box, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return dashboard.Box{}, eris.Errorf("--box %q: want minLon,minLat,maxLon,maxLat", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return dashboard.Box{}, eris.Wrapf(err, "--box %q", s)
		}
		v[i] = f
	}
	if v[0] > v[2] || v[1] > v[3] {
		return dashboard.Box{}, eris.Errorf("--box %q: min exceeds max", s)
	}
	return dashboard.Box{MinLon: v[0], MinLat: v[1], MaxLon: v[2], MaxLat: v[3]}, nil
}

func init() {
	addCriteriaFlags(viewCmd.Flags())
	viewCmd.Flags().StringVar(&viewOperator, "operator", "", "narrow completion trends to one top operator")
	viewCmd.Flags().StringVar(&viewBox, "box", "", "map selection minLon,minLat,maxLon,maxLat")
	viewCmd.Flags().StringVar(&outputPath, "output", "", "output file (default stdout)")
	rootCmd.AddCommand(viewCmd)
}
