package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wellplay/internal/dataset"
	"github.com/sells-group/wellplay/internal/enrich"
	"github.com/sells-group/wellplay/internal/fetcher"
	"github.com/sells-group/wellplay/internal/model"
)

// sqlSource is a parsed --source value.
type sqlSource struct {
	driver string // "sqlite" or "postgres"
	path   string // sqlite database file
	table  string
}

// parseSource parses "sqlite:PATH[#table]" or "postgres[:table]". A missing
// table falls back to defaultTable.
func parseSource(s, defaultTable string) (sqlSource, error) {
	driver, rest, _ := strings.Cut(strings.TrimSpace(s), ":")
	src := sqlSource{driver: driver, table: defaultTable}
	switch driver {
	case "sqlite":
		path, table, _ := strings.Cut(rest, "#")
		if path == "" {
			return sqlSource{}, eris.Errorf("source %q: sqlite needs a database path", s)
		}
		src.path = path
		if table != "" {
			src.table = table
		}
	case "postgres":
		if rest != "" {
			src.table = rest
		}
	default:
		return sqlSource{}, eris.Errorf("source %q: unsupported driver %q", s, driver)
	}
	if src.table == "" {
		src.table = dataset.DefaultTable
	}
	return src, nil
}

func loadSQL(ctx context.Context, src sqlSource) ([]model.WellRecord, *dataset.LoadStats, error) {
	switch src.driver {
	case "sqlite":
		db, err := dataset.OpenSQLite(src.path)
		if err != nil {
			return nil, nil, err
		}
		defer db.Close() //nolint:errcheck

		s, err := dataset.NewSQLSource(db, src.table)
		if err != nil {
			return nil, nil, err
		}
		return s.Load(ctx)
	default:
		if cfg.Store.DatabaseURL == "" {
			return nil, nil, eris.New("store.database_url is required for postgres sources (WELLPLAY_STORE_DATABASE_URL)")
		}
		pool, err := dataset.NewPostgresPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		defer pool.Close()

		s, err := dataset.NewPostgresSource(pool, src.table)
		if err != nil {
			return nil, nil, err
		}
		return s.Load(ctx)
	}
}

func newLoader() *dataset.Loader {
	opener := fetcher.NewOpener(
		fetcher.HTTPOptions{
			Timeout:    cfg.Dataset.Timeout(),
			MaxRetries: cfg.Dataset.MaxRetries,
		},
		fetcher.FTPOptions{Timeout: cfg.Dataset.Timeout()},
	)
	return dataset.NewLoader(opener, dataset.Options{
		CSV:     fetcher.CSVOptions{LazyQuotes: true, TrimSpace: true},
		XLSX:    fetcher.XLSXOptions{SheetName: cfg.Dataset.Sheet},
		TempDir: cfg.Dataset.TempDir,
	})
}

// loadWells reads every --data location and --source table, falling back
// to dataset.sources, and enriches the combined records.
func loadWells(ctx context.Context) ([]model.EnrichedWell, []*dataset.LoadStats, error) {
	locations := dataLocations
	if len(locations) == 0 && len(sqlSources) == 0 {
		locations = cfg.Dataset.Sources
	}
	if len(locations) == 0 && len(sqlSources) == 0 {
		return nil, nil, eris.New("no dataset given (--data, --source or dataset.sources)")
	}

	var (
		records []model.WellRecord
		stats   []*dataset.LoadStats
	)
	if len(locations) > 0 {
		recs, st, err := newLoader().LoadAll(ctx, locations)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, recs...)
		stats = append(stats, st...)
	}
	for _, s := range sqlSources {
		src, err := parseSource(s, cfg.Store.Table)
		if err != nil {
			return nil, nil, err
		}
		recs, st, err := loadSQL(ctx, src)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "load %s", s)
		}
		records = append(records, recs...)
		stats = append(stats, st)
	}

	wells := enrich.Enrich(records)
	zap.L().Info("dataset loaded",
		zap.Int("sources", len(stats)),
		zap.Int("wells", len(wells)),
	)
	return wells, stats, nil
}
