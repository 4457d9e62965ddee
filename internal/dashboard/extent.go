package dashboard

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/wellplay/internal/model"
)

// Extent returns the lon/lat bounding box of the wells as a closed WGS84
// polygon, or nil when no well has coordinates.
func Extent(wells []model.EnrichedWell) *geom.Polygon {
	minLon, minLat := math.Inf(1), math.Inf(1)
	maxLon, maxLat := math.Inf(-1), math.Inf(-1)
	found := false
	for _, w := range wells {
		if w.LongitudeDeg == nil || w.LatitudeDeg == nil {
			continue
		}
		found = true
		minLon = math.Min(minLon, *w.LongitudeDeg)
		maxLon = math.Max(maxLon, *w.LongitudeDeg)
		minLat = math.Min(minLat, *w.LatitudeDeg)
		maxLat = math.Max(maxLat, *w.LatitudeDeg)
	}
	if !found {
		return nil
	}

	ring := []float64{
		minLon, minLat,
		maxLon, minLat,
		maxLon, maxLat,
		minLon, maxLat,
		minLon, minLat,
	}
	return geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)}).SetSRID(4326)
}

// ExtentGeoJSON encodes Extent as a GeoJSON geometry. It returns nil, nil
// when there is no extent.
func ExtentGeoJSON(wells []model.EnrichedWell) (*geojson.Geometry, error) {
	poly := Extent(wells)
	if poly == nil {
		return nil, nil
	}
	g, err := geojson.Encode(poly)
	if err != nil {
		return nil, eris.Wrap(err, "dashboard: encode extent")
	}
	return g, nil
}
