package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/wellplay/internal/model"
)

// DefaultTable is the table SQL sources read when none is configured.
const DefaultTable = "wells"

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func checkTable(table string) (string, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableRe.MatchString(table) {
		return "", eris.Errorf("dataset: invalid table name %q", table)
	}
	return table, nil
}

// selectList renders every column cast to text with the given quoting and
// cast functions.
func selectList(quote func(string) string, cast func(string) string) string {
	cols := Columns()
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = cast(quote(string(c)))
	}
	return strings.Join(parts, ", ")
}

// positionalHeader maps each column to its position in selectList.
func positionalHeader() Header {
	h := make(Header, len(Columns()))
	for i, c := range Columns() {
		h[c] = i
	}
	return h
}

// scanner is the row cursor shared by database/sql and pgx.
type scanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// readRows parses text-cast rows into records. NULL cells become empty strings
// and are treated like blank CSV cells.
func readRows(rows scanner, source string) ([]model.WellRecord, *LoadStats, error) {
	h := positionalHeader()
	n := len(Columns())
	stats := &LoadStats{Source: source}

	var records []model.WellRecord
	for line := 1; rows.Next(); line++ {
		cells := make([]*string, n)
		dest := make([]any, n)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, eris.Wrap(err, "dataset: scan row")
		}

		row := make([]string, n)
		for i, c := range cells {
			if c != nil {
				row[i] = *c
			}
		}
		rec, errs := ParseRow(h, row, line)
		stats.add(rec, errs)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, eris.Wrap(err, "dataset: iterate rows")
	}
	stats.log()
	return records, stats, nil
}

// OpenSQLite opens a SQLite database file.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open sqlite")
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "dataset: sqlite pragma")
	}
	return db, nil
}

// SQLSource reads well records from a database/sql table whose column names
// match the CSV headers.
type SQLSource struct {
	db    *sql.DB
	table string
}

// NewSQLSource returns a source reading table from db.
func NewSQLSource(db *sql.DB, table string) (*SQLSource, error) {
	t, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	return &SQLSource{db: db, table: t}, nil
}

func (s *SQLSource) query() string {
	quote := func(c string) string { return `"` + c + `"` }
	cast := func(c string) string { return "CAST(" + c + " AS TEXT)" }
	return fmt.Sprintf("SELECT %s FROM %s", selectList(quote, cast), s.table)
}

// Load reads every row of the table.
func (s *SQLSource) Load(ctx context.Context) ([]model.WellRecord, *LoadStats, error) {
	rows, err := s.db.QueryContext(ctx, s.query())
	if err != nil {
		return nil, nil, eris.Wrapf(err, "dataset: query %s", s.table)
	}
	defer rows.Close() //nolint:errcheck

	return readRows(rows, "sqlite:"+s.table)
}

// Querier is the subset of *pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewPostgresPool connects to Postgres and verifies the connection.
func NewPostgresPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: parse postgres config")
	}
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: create postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "dataset: ping postgres")
	}
	return pool, nil
}

// PostgresSource reads well records from a Postgres table, optionally
// schema-qualified, whose column names match the CSV headers.
type PostgresSource struct {
	pool  Querier
	table string
}

// NewPostgresSource returns a source reading table through pool.
func NewPostgresSource(pool Querier, table string) (*PostgresSource, error) {
	t, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	return &PostgresSource{pool: pool, table: t}, nil
}

func (s *PostgresSource) query() string {
	quote := func(c string) string { return pgx.Identifier{c}.Sanitize() }
	cast := func(c string) string { return c + "::text" }
	ident := pgx.Identifier(strings.SplitN(s.table, ".", 2)).Sanitize()
	return fmt.Sprintf("SELECT %s FROM %s", selectList(quote, cast), ident)
}

// Load reads every row of the table.
func (s *PostgresSource) Load(ctx context.Context) ([]model.WellRecord, *LoadStats, error) {
	rows, err := s.pool.Query(ctx, s.query())
	if err != nil {
		return nil, nil, eris.Wrapf(err, "dataset: query %s", s.table)
	}
	defer rows.Close()

	return readRows(rows, "postgres:"+s.table)
}
