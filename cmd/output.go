package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/wellplay/internal/dataset"
	"github.com/sells-group/wellplay/internal/export"
	"github.com/sells-group/wellplay/internal/model"
)

const formatPostgres = "postgres"

var (
	outputFormat string
	outputPath   string
)

// writeWells writes wells in outputFormat. JSON and CSV go to stdout when no
// --output is given; xlsx and shp need a path. The postgres format copies
// into the --output table (default store.export_table).
func writeWells(ctx context.Context, stdout io.Writer, wells []model.EnrichedWell) error {
	if outputFormat == formatPostgres {
		return copyToPostgres(ctx, wells)
	}

	format, err := export.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if outputPath == "" {
		if format == export.FormatXLSX || format == export.FormatShapefile {
			return eris.Errorf("--output is required for %s", format)
		}
		return export.Write(stdout, format, wells)
	}

	if err := export.WriteFile(outputPath, format, wells); err != nil {
		return err
	}
	zap.L().Info("wells written",
		zap.String("path", outputPath),
		zap.String("format", string(format)),
		zap.Int("wells", len(wells)),
	)
	return nil
}

func copyToPostgres(ctx context.Context, wells []model.EnrichedWell) error {
	if err := cfg.Validate(formatPostgres); err != nil {
		return err
	}
	table := outputPath
	if table == "" {
		table = cfg.Store.ExportTable
	}

	pool, err := dataset.NewPostgresPool(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := export.EnsureTable(ctx, pool, table); err != nil {
		return err
	}
	n, err := export.CopyToPostgres(ctx, pool, table, wells, 0)
	if err != nil {
		return err
	}
	zap.L().Info("wells copied to postgres", zap.String("table", table), zap.Int64("rows", n))
	return nil
}

// writeJSON pretty-prints v to stdout or --output.
func writeJSON(stdout io.Writer, v any) error {
	if outputPath == "" {
		return encodeJSON(stdout, v)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "create output")
	}
	if err := encodeJSON(f, v); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrap(f.Close(), "close output")
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode output")
}

func addOutputFlags(flags *pflag.FlagSet) {
	flags.StringVar(&outputFormat, "format", "json", "output format: json, csv, xlsx, shp or postgres")
	flags.StringVar(&outputPath, "output", "", "output file (postgres: table name)")
}
