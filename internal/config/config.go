package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sells-group/wellplay/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	Filter    FilterConfig    `yaml:"filter" mapstructure:"filter"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DatasetConfig configures where well data is loaded from.
type DatasetConfig struct {
	Sources     []string `yaml:"sources" mapstructure:"sources"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int      `yaml:"max_retries" mapstructure:"max_retries"`
	TempDir     string   `yaml:"temp_dir" mapstructure:"temp_dir"`
	Sheet       string   `yaml:"sheet" mapstructure:"sheet"`
}

// Timeout returns the per-download timeout.
func (c DatasetConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// FilterConfig configures the filter stage.
type FilterConfig struct {
	Seed     uint64         `yaml:"seed" mapstructure:"seed"`
	Defaults CriteriaConfig `yaml:"defaults" mapstructure:"defaults"`
}

// CriteriaConfig overrides the default filter criteria. Unset fields keep
// their defaults. Ranges are written "lo:hi".
type CriteriaConfig struct {
	SampleFraction *float64 `yaml:"sample_fraction" mapstructure:"sample_fraction"`
	SubPlays       []string `yaml:"sub_plays" mapstructure:"sub_plays"`
	FluidTypes     []string `yaml:"fluid_types" mapstructure:"fluid_types"`
	TVD            string   `yaml:"tvd_ft" mapstructure:"tvd_ft"`
	DrillDate      string   `yaml:"drill_date" mapstructure:"drill_date"`
	LateralLength  string   `yaml:"lateral_length_ft" mapstructure:"lateral_length_ft"`
	Proppant       string   `yaml:"proppant_lb_ft" mapstructure:"proppant_lb_ft"`
	FracFluid      string   `yaml:"frac_fluid_gal_ft" mapstructure:"frac_fluid_gal_ft"`
}

// Criteria applies the overrides to model.DefaultCriteria and validates the
// result.
func (c CriteriaConfig) Criteria() (model.FilterCriteria, error) {
	out := model.DefaultCriteria()
	if c.SampleFraction != nil {
		out.SampleFraction = *c.SampleFraction
	}
	if c.SubPlays != nil {
		out.SubPlays = make([]model.SubPlay, 0, len(c.SubPlays))
		for _, s := range c.SubPlays {
			out.SubPlays = append(out.SubPlays, model.SubPlay(s))
		}
	}
	if c.FluidTypes != nil {
		out.FluidTypes = make([]model.FluidType, 0, len(c.FluidTypes))
		for _, f := range c.FluidTypes {
			out.FluidTypes = append(out.FluidTypes, model.FluidType(f))
		}
	}

	ranges := []struct {
		key string
		raw string
		dst **model.FloatRange
	}{
		{"tvd_ft", c.TVD, &out.TVD},
		{"lateral_length_ft", c.LateralLength, &out.LateralLength},
		{"proppant_lb_ft", c.Proppant, &out.ProppantConcentration},
		{"frac_fluid_gal_ft", c.FracFluid, &out.FracFluidConcentration},
	}
	for _, r := range ranges {
		if r.raw == "" {
			continue
		}
		parsed, err := model.ParseFloatRange(r.raw, **r.dst)
		if err != nil {
			return model.FilterCriteria{}, eris.Wrapf(err, "config: filter.defaults.%s", r.key)
		}
		*r.dst = &parsed
	}
	if c.DrillDate != "" {
		parsed, err := model.ParseDateRange(c.DrillDate, *out.DrillDate)
		if err != nil {
			return model.FilterCriteria{}, eris.Wrap(err, "config: filter.defaults.drill_date")
		}
		out.DrillDate = &parsed
	}

	if err := out.Validate(); err != nil {
		return model.FilterCriteria{}, eris.Wrap(err, "config: filter.defaults")
	}
	return out, nil
}

// DashboardConfig configures the aggregate views.
type DashboardConfig struct {
	TopOperators int     `yaml:"top_operators" mapstructure:"top_operators"`
	MaxFracFluid float64 `yaml:"max_frac_fluid" mapstructure:"max_frac_fluid"`
	MaxProppant  float64 `yaml:"max_proppant" mapstructure:"max_proppant"`
	OilPriceUSD  float64 `yaml:"oil_price_usd" mapstructure:"oil_price_usd"`
	HistMaxBins  int     `yaml:"hist_max_bins" mapstructure:"hist_max_bins"`
	MinYear      int     `yaml:"min_year" mapstructure:"min_year"`
}

// StoreConfig configures SQL dataset sources and the PostGIS export.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Table       string `yaml:"table" mapstructure:"table"`
	ExportTable string `yaml:"export_table" mapstructure:"export_table"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	TimeoutSecs    int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WELLPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.timeout_secs", 60)
	v.SetDefault("dataset.max_retries", 3)
	v.SetDefault("filter.seed", 1)
	v.SetDefault("dashboard.top_operators", 5)
	v.SetDefault("dashboard.max_frac_fluid", 4000)
	v.SetDefault("dashboard.max_proppant", 5000)
	v.SetDefault("dashboard.oil_price_usd", 80)
	v.SetDefault("dashboard.hist_max_bins", 100)
	v.SetDefault("dashboard.min_year", 2009)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.table", "wells")
	v.SetDefault("store.export_table", "wells_enriched")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.timeout_secs", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on.
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Dashboard.TopOperators < 1 {
		errs = append(errs, "dashboard.top_operators must be >= 1")
	}
	if c.Dashboard.HistMaxBins < 1 {
		errs = append(errs, "dashboard.hist_max_bins must be >= 1")
	}
	if c.Dashboard.MaxFracFluid <= 0 || c.Dashboard.MaxProppant <= 0 {
		errs = append(errs, "dashboard.max_frac_fluid and dashboard.max_proppant must be > 0")
	}

	switch mode {
	case "enrich", "filter", "view":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger. When cfg.File is set, log
// entries are also written as JSON to a rotating file.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	var opts []zap.Option
	if cfg.File != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zapCfg.Level)
		opts = append(opts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
