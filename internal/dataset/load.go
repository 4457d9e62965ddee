package dataset

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/wellplay/internal/fetcher"
	"github.com/sells-group/wellplay/internal/model"
)

// maxReportedFieldErrors caps the per-source FieldErrors kept in LoadStats.
const maxReportedFieldErrors = 100

// LoadStats summarizes one loaded source.
type LoadStats struct {
	Source          string       `json:"source"`
	Rows            int          `json:"rows"`
	MissingColumns  []string     `json:"missing_columns,omitempty"`
	FieldErrorCount int          `json:"field_error_count"`
	FieldErrors     []FieldError `json:"field_errors,omitempty"`
	UnknownSubPlays int          `json:"unknown_sub_plays"`
}

func (s *LoadStats) add(rec model.WellRecord, errs []FieldError) {
	s.Rows++
	s.FieldErrorCount += len(errs)
	for _, e := range errs {
		if len(s.FieldErrors) >= maxReportedFieldErrors {
			break
		}
		s.FieldErrors = append(s.FieldErrors, e)
	}
	if rec.SubPlay != "" && !rec.SubPlay.Known() {
		s.UnknownSubPlays++
	}
}

func (s *LoadStats) log() {
	zap.L().Info("dataset: loaded source",
		zap.String("source", s.Source),
		zap.Int("rows", s.Rows),
		zap.Int("field_errors", s.FieldErrorCount),
		zap.Strings("missing_columns", s.MissingColumns),
		zap.Int("unknown_sub_plays", s.UnknownSubPlays),
	)
	for _, e := range s.FieldErrors {
		zap.L().Debug("dataset: unparsable cell",
			zap.String("source", s.Source),
			zap.Int("line", e.Line),
			zap.String("column", string(e.Column)),
			zap.String("value", e.Value),
		)
	}
}

// Options configures a Loader.
type Options struct {
	CSV     fetcher.CSVOptions
	XLSX    fetcher.XLSXOptions
	TempDir string // where remote workbooks and archives are staged
}

// Loader reads well records from dataset locations.
type Loader struct {
	opener *fetcher.Opener
	opts   Options
}

// NewLoader returns a Loader that resolves locations through opener.
func NewLoader(opener *fetcher.Opener, opts Options) *Loader {
	return &Loader{opener: opener, opts: opts}
}

// Load reads every record from location. The reader is chosen by extension;
// anything that is not .xlsx or .zip is read as delimited text.
func (l *Loader) Load(ctx context.Context, location string) ([]model.WellRecord, *LoadStats, error) {
	switch fetcher.FormatOf(location) {
	case fetcher.FormatXLSX:
		return l.loadXLSX(ctx, location)
	case fetcher.FormatZIP:
		return l.loadZIP(ctx, location)
	default:
		return l.loadCSV(ctx, location)
	}
}

// LoadAll loads locations concurrently and concatenates their records in
// argument order. Any source failure aborts the whole load.
func (l *Loader) LoadAll(ctx context.Context, locations []string) ([]model.WellRecord, []*LoadStats, error) {
	if len(locations) == 0 {
		return nil, nil, eris.New("dataset: no sources given")
	}

	results := make([][]model.WellRecord, len(locations))
	stats := make([]*LoadStats, len(locations))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, loc := range locations {
		g.Go(func() error {
			recs, st, err := l.Load(gCtx, loc)
			if err != nil {
				return eris.Wrapf(err, "dataset: load %s", loc)
			}
			results[i] = recs
			stats[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	all := make([]model.WellRecord, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, stats, nil
}

func (l *Loader) loadCSV(ctx context.Context, location string) ([]model.WellRecord, *LoadStats, error) {
	rc, err := l.opener.Open(ctx, location)
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: open csv")
	}
	defer rc.Close() //nolint:errcheck

	return ReadCSV(ctx, rc, location, l.opts.CSV)
}

// ReadCSV parses delimited text whose first row is the header.
func ReadCSV(ctx context.Context, r io.Reader, source string, opts fetcher.CSVOptions) ([]model.WellRecord, *LoadStats, error) {
	rowCh, errCh := fetcher.StreamCSV(ctx, r, opts)

	stats := &LoadStats{Source: source}
	var (
		header  Header
		records []model.WellRecord
	)
	for row := range rowCh {
		if header == nil {
			header = ParseHeader(row.Fields)
			continue
		}
		rec, errs := ParseRow(header, row.Fields, row.Line)
		stats.add(rec, errs)
		records = append(records, rec)
	}
	for err := range errCh {
		if err != nil {
			return nil, nil, eris.Wrap(err, "dataset: read csv")
		}
	}

	if err := checkHeader(header, source); err != nil {
		return nil, nil, err
	}
	stats.MissingColumns = header.Missing()
	stats.log()
	return records, stats, nil
}

// ReadRows parses rows whose first element is the header.
func ReadRows(rows [][]string, source string) ([]model.WellRecord, *LoadStats, error) {
	if len(rows) == 0 {
		return nil, nil, eris.Errorf("dataset: %s is empty", source)
	}
	header := ParseHeader(rows[0])
	if err := checkHeader(header, source); err != nil {
		return nil, nil, err
	}

	stats := &LoadStats{Source: source, MissingColumns: header.Missing()}
	records := make([]model.WellRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, errs := ParseRow(header, row, i+2)
		stats.add(rec, errs)
		records = append(records, rec)
	}
	stats.log()
	return records, stats, nil
}

// checkHeader rejects sources in which no recognized column was found.
func checkHeader(h Header, source string) error {
	if len(h) == 0 {
		return eris.Errorf("dataset: %s has no recognizable well columns", source)
	}
	return nil
}

func (l *Loader) loadXLSX(ctx context.Context, location string) ([]model.WellRecord, *LoadStats, error) {
	path, cleanup, err := l.opener.Localize(ctx, location, l.opts.TempDir)
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: fetch xlsx")
	}
	defer cleanup()

	rows, err := fetcher.ReadXLSX(path, l.opts.XLSX)
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: read xlsx")
	}
	return ReadRows(rows, location)
}

func (l *Loader) loadZIP(ctx context.Context, location string) ([]model.WellRecord, *LoadStats, error) {
	path, cleanup, err := l.opener.Localize(ctx, location, l.opts.TempDir)
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: fetch zip")
	}
	defer cleanup()

	dir, err := os.MkdirTemp(l.opts.TempDir, "wellplay-unzip-*")
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: create unzip dir")
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	member, err := fetcher.ExtractDataset(path, dir)
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: extract zip")
	}

	recs, stats, err := l.Load(ctx, member)
	if err != nil {
		return nil, nil, err
	}
	stats.Source = location
	return recs, stats, nil
}
