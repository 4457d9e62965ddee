package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/wellplay/internal/dashboard"
	"github.com/sells-group/wellplay/internal/filter"
	"github.com/sells-group/wellplay/internal/model"
)

var criteriaFlags struct {
	file      string
	sample    float64
	subPlays  []string
	fluids    []string
	tvd       string
	date      string
	lateral   string
	proppant  string
	fracFluid string
	seed      uint64
}

func addCriteriaFlags(flags *pflag.FlagSet) {
	flags.StringVar(&criteriaFlags.file, "criteria", "", "YAML criteria file applied over filter.defaults")
	flags.Float64Var(&criteriaFlags.sample, "sample", 0.25, "fraction of wells to sample, 0 to 1")
	flags.StringSliceVar(&criteriaFlags.subPlays, "subplay", nil, "sub-play to keep (repeatable)")
	flags.StringSliceVar(&criteriaFlags.fluids, "fluid", nil, "fluid type to keep (repeatable)")
	flags.StringVar(&criteriaFlags.tvd, "tvd", "", "true vertical depth range lo:hi (ft, exclusive)")
	flags.StringVar(&criteriaFlags.date, "date", "", "drilling start date range lo:hi (YYYY-MM-DD, exclusive)")
	flags.StringVar(&criteriaFlags.lateral, "lateral", "", "lateral length range lo:hi (ft, exclusive)")
	flags.StringVar(&criteriaFlags.proppant, "proppant", "", "proppant concentration range lo:hi (lb/ft, exclusive)")
	flags.StringVar(&criteriaFlags.fracFluid, "frac-fluid", "", "frac fluid concentration range lo:hi (gal/ft, exclusive)")
	flags.Uint64Var(&criteriaFlags.seed, "seed", 0, "sampling seed (default filter.seed)")
}

// loadCriteriaFile decodes a YAML criteria document over base. Keys absent
// from the file keep their base values.
func loadCriteriaFile(path string, base model.FilterCriteria) (model.FilterCriteria, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.FilterCriteria{}, eris.Wrap(err, "read criteria file")
	}
	c := base
	if err := yaml.Unmarshal(b, &c); err != nil {
		return model.FilterCriteria{}, eris.Wrapf(err, "parse criteria file %s", path)
	}
	return c, nil
}

// buildCriteria layers config defaults, the --criteria file and explicitly
// set flags, in that order.
func buildCriteria(cmd *cobra.Command) (model.FilterCriteria, error) {
	c, err := cfg.Filter.Defaults.Criteria()
	if err != nil {
		return model.FilterCriteria{}, err
	}
	if criteriaFlags.file != "" {
		if c, err = loadCriteriaFile(criteriaFlags.file, c); err != nil {
			return model.FilterCriteria{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("sample") {
		c.SampleFraction = criteriaFlags.sample
	}
	if flags.Changed("subplay") {
		c.SubPlays = make([]model.SubPlay, 0, len(criteriaFlags.subPlays))
		for _, s := range criteriaFlags.subPlays {
			c.SubPlays = append(c.SubPlays, model.SubPlay(s))
		}
	}
	if flags.Changed("fluid") {
		c.FluidTypes = make([]model.FluidType, 0, len(criteriaFlags.fluids))
		for _, f := range criteriaFlags.fluids {
			c.FluidTypes = append(c.FluidTypes, model.FluidType(f))
		}
	}

	ranges := []struct {
		flag string
		raw  string
		dst  **model.FloatRange
	}{
		{"tvd", criteriaFlags.tvd, &c.TVD},
		{"lateral", criteriaFlags.lateral, &c.LateralLength},
		{"proppant", criteriaFlags.proppant, &c.ProppantConcentration},
		{"frac-fluid", criteriaFlags.fracFluid, &c.FracFluidConcentration},
	}
	for _, r := range ranges {
		if !flags.Changed(r.flag) {
			continue
		}
		var def model.FloatRange
		if *r.dst != nil {
			def = **r.dst
		}
		parsed, err := model.ParseFloatRange(r.raw, def)
		if err != nil {
			return model.FilterCriteria{}, eris.Wrapf(err, "--%s", r.flag)
		}
		*r.dst = &parsed
	}
	if flags.Changed("date") {
		var def model.DateRange
		if c.DrillDate != nil {
			def = *c.DrillDate
		}
		parsed, err := model.ParseDateRange(criteriaFlags.date, def)
		if err != nil {
			return model.FilterCriteria{}, eris.Wrap(err, "--date")
		}
		c.DrillDate = &parsed
	}

	return c, nil
}

func seed() uint64 {
	if criteriaFlags.seed != 0 {
		return criteriaFlags.seed
	}
	if cfg.Filter.Seed != 0 {
		return cfg.Filter.Seed
	}
	return filter.DefaultSeed
}

func topOperatorOptions() filter.TopOperatorOptions {
	return filter.TopOperatorOptions{
		N:            cfg.Dashboard.TopOperators,
		MaxFracFluid: cfg.Dashboard.MaxFracFluid,
		MaxProppant:  cfg.Dashboard.MaxProppant,
	}
}

func dashboardOptions() dashboard.Options {
	return dashboard.Options{
		Metrics: dashboard.MetricOptions{OilPriceUSD: cfg.Dashboard.OilPriceUSD},
		Views: dashboard.ViewOptions{
			MaxBins: cfg.Dashboard.HistMaxBins,
			MinYear: cfg.Dashboard.MinYear,
		},
	}
}
