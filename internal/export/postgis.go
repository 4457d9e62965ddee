package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"go.uber.org/zap"

	"github.com/sells-group/wellplay/internal/model"
)

const defaultBatchSize = 10000

// Pool is the subset of *pgxpool.Pool used to load a PostGIS table.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresColumns is the COPY column order; geom is the well location.
var PostgresColumns = append(append([]string{}, Header...), "geom")

// tableIdent splits an optionally schema-qualified table name.
func tableIdent(table string) (pgx.Identifier, error) {
	parts := strings.Split(table, ".")
	if table == "" || len(parts) > 2 {
		return nil, eris.Errorf("export: invalid table name %q", table)
	}
	for _, p := range parts {
		if p == "" {
			return nil, eris.Errorf("export: invalid table name %q", table)
		}
	}
	return pgx.Identifier(parts), nil
}

// EnsureTable creates the PostGIS table if it does not exist.
func EnsureTable(ctx context.Context, pool Pool, table string) error {
	ident, err := tableIdent(table)
	if err != nil {
		return err
	}
	cols := make([]string, 0, len(PostgresColumns))
	for _, c := range PostgresColumns {
		cols = append(cols, pgx.Identifier{c}.Sanitize()+" "+columnType(c))
	}
	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", ident.Sanitize(), strings.Join(cols, ", "))
	if _, err := pool.Exec(ctx, sql); err != nil {
		return eris.Wrapf(err, "export: create table %s", table)
	}
	return nil
}

func columnType(col string) string {
	switch col {
	case "name", "api_number", "operator_name", "sub_play_name", "fluid_type":
		return "TEXT"
	case "drilling_start_date":
		return "DATE"
	case "geom":
		return "geometry(Point, 4326)"
	default:
		return "DOUBLE PRECISION"
	}
}

// EncodePoint returns the EWKB encoding of the well location with SRID 4326,
// or nil when the well has no coordinates.
func EncodePoint(w model.EnrichedWell) ([]byte, error) {
	if w.LongitudeDeg == nil || w.LatitudeDeg == nil {
		return nil, nil
	}
	p := geom.NewPointFlat(geom.XY, []float64{*w.LongitudeDeg, *w.LatitudeDeg}).SetSRID(4326)
	b, err := ewkb.Marshal(p, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode point")
	}
	return b, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// postgresRow renders w in PostgresColumns order.
func postgresRow(w model.EnrichedWell) ([]any, error) {
	pt, err := EncodePoint(w)
	if err != nil {
		return nil, err
	}
	var drilled any
	if w.DrillingStartDate != nil {
		drilled = w.DrillingStartDate.Time
	}
	var point any
	if pt != nil {
		point = pt
	}
	return []any{
		w.Name, w.APINumber, w.OperatorName, string(w.SubPlay),
		nullable(w.LongitudeDeg), nullable(w.LatitudeDeg), nullable(w.TrueVerticalDepthFt), drilled,
		nullable(w.LateralLengthFt), nullable(w.FractureFluidVolumeGal), nullable(w.ProppantWeightLbs), nullable(w.TotalCostUSD),
		nullable(w.Cum30OilBbl), nullable(w.Cum30GasMcf), nullable(w.Cum90TotalBOE),
		nullable(w.EURTotalMBOE), nullable(w.EUROilMBbl), nullable(w.EURGasBscf),
		nullable(w.NormFractureFluid), nullable(w.NormProppant), nullable(w.NormTotalCost), nullable(w.GasOilRatio), string(w.FluidType),
		point,
	}, nil
}

// CopyToPostgres bulk-loads wells into table with the COPY protocol in
// batches of batchSize rows (0 means the default). It returns the number of
// rows copied.
func CopyToPostgres(ctx context.Context, pool Pool, table string, wells []model.EnrichedWell, batchSize int) (int64, error) {
	ident, err := tableIdent(table)
	if err != nil {
		return 0, err
	}
	if len(wells) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	rows := make([][]any, 0, len(wells))
	for _, w := range wells {
		row, err := postgresRow(w)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	log := zap.L().With(
		zap.String("component", "export.postgis"),
		zap.String("table", table),
		zap.Int("total_rows", len(rows)),
	)

	var total int64
	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		n, err := pool.CopyFrom(ctx, ident, PostgresColumns, pgx.CopyFromRows(rows[i:end]))
		if err != nil {
			return total, eris.Wrapf(err, "export: COPY into %s (batch %d-%d)", table, i, end)
		}
		total += n
		log.Debug("batch loaded", zap.Int("batch_start", i), zap.Int("batch_end", end), zap.Int64("batch_rows", n))
	}
	return total, nil
}
