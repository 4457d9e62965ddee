package dataset

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sells-group/wellplay/internal/model"
)

func createWellsTable(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	cols := make([]string, 0, len(Columns()))
	for _, c := range Columns() {
		typ := "REAL"
		switch c {
		case ColName, ColAPINumber, ColOperator, ColSubPlay:
			typ = "TEXT"
		case ColDrillDate:
			typ = "DATE"
		}
		cols = append(cols, `"`+string(c)+`" `+typ)
	}
	_, err := db.Exec("CREATE TABLE " + table + " (" + strings.Join(cols, ", ") + ")")
	require.NoError(t, err)
}

func TestSQLSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wells.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	createWellsTable(t, db, "wells")
	_, err = db.Exec(`INSERT INTO wells ("Name", "operator_name", "sub_play_name", "tvd__ft", "drilling_start_date", "lateral_length__ft", "proppant__lbs")
		VALUES ('W-1', 'EOG Resources', 'Karnes Trough', 11000, '2015-06-01', 6000, 9000000),
		       ('W-2', NULL, 'Black Oil', NULL, NULL, 0, 1000)`)
	require.NoError(t, err)

	src, err := NewSQLSource(db, "")
	require.NoError(t, err)

	recs, stats, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "W-1", recs[0].Name)
	assert.Equal(t, model.SubPlayKarnesTrough, recs[0].SubPlay)
	require.NotNil(t, recs[0].TrueVerticalDepthFt)
	assert.InDelta(t, 11000, *recs[0].TrueVerticalDepthFt, 1e-9)
	require.NotNil(t, recs[0].DrillingStartDate)
	assert.Equal(t, model.NewDate(2015, 6, 1), *recs[0].DrillingStartDate)

	assert.Empty(t, recs[1].OperatorName)
	assert.Nil(t, recs[1].TrueVerticalDepthFt)
	assert.Nil(t, recs[1].DrillingStartDate)
	require.NotNil(t, recs[1].LateralLengthFt)
	assert.Zero(t, *recs[1].LateralLengthFt)

	assert.Equal(t, "sqlite:wells", stats.Source)
	assert.Zero(t, stats.FieldErrorCount)
}

func TestSQLSource_MissingTable(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	src, err := NewSQLSource(db, "wells")
	require.NoError(t, err)

	_, _, err = src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: query wells")
}

func TestCheckTable(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: DefaultTable},
		{in: "wells", want: "wells"},
		{in: "eagle_ford.wells", want: "eagle_ford.wells"},
		{in: "wells; DROP TABLE x", wantErr: true},
		{in: "a.b.c", wantErr: true},
		{in: "1wells", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := checkTable(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func strPtr(s string) *string { return &s }

func mockWellRow(values map[Column]string) []any {
	row := make([]any, len(Columns()))
	for i, c := range Columns() {
		if v, ok := values[c]; ok {
			row[i] = strPtr(v)
		} else {
			row[i] = (*string)(nil)
		}
	}
	return row
}

func columnNames() []string {
	out := make([]string, len(Columns()))
	for i, c := range Columns() {
		out[i] = string(c)
	}
	return out
}

func TestPostgresSource_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src, err := NewPostgresSource(mock, "eagle_ford.wells")
	require.NoError(t, err)

	rows := pgxmock.NewRows(columnNames()).
		AddRow(mockWellRow(map[Column]string{
			ColName:          "W-1",
			ColOperator:      "Marathon Oil",
			ColDrillDate:     "2014-09-30",
			ColLateralLength: "7200.5",
			ColCum30Oil:      "15000",
			ColCum30Gas:      "30000",
		})...).
		AddRow(mockWellRow(map[Column]string{
			ColName: "W-2",
			ColTVD:  "deep",
		})...)

	mock.ExpectQuery(`SELECT "Name"::text, .* FROM "eagle_ford"."wells"`).WillReturnRows(rows)

	recs, stats, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Marathon Oil", recs[0].OperatorName)
	assert.Equal(t, model.NewDate(2014, 9, 30), *recs[0].DrillingStartDate)
	assert.InDelta(t, 7200.5, *recs[0].LateralLengthFt, 1e-9)
	assert.Nil(t, recs[0].TrueVerticalDepthFt)

	assert.Nil(t, recs[1].TrueVerticalDepthFt)
	assert.Equal(t, 1, stats.FieldErrorCount)
	assert.Equal(t, "postgres:eagle_ford.wells", stats.Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src, err := NewPostgresSource(mock, "")
	require.NoError(t, err)

	mock.ExpectQuery(`FROM "wells"`).WillReturnError(errors.New("connection refused"))

	_, _, err = src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_InvalidTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewPostgresSource(mock, `wells"--`)
	require.Error(t, err)
}
