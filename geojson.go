package gtfsdb

import (
	"github.com/urbanatlas/gtfsdb/model"
)

// GetStopsAsGeoJSON runs the stops query and assembles a GeoJSON
// FeatureCollection: one Point per stop, coordinates [lon, lat],
// remaining columns as properties. Stops with missing or out-of-range
// coordinates are left out rather than failing the request.
func (s *Store) GetStopsAsGeoJSON(q Query) (*model.FeatureCollection, error) {
	// The geometry columns are always needed, so the field
	// projection is ignored here.
	rows, err := s.query("stops", Query{
		AgencyKey: q.AgencyKey,
		Where:     q.Where,
		OrderBy:   q.OrderBy,
	})
	if err != nil {
		return nil, err
	}

	fc := model.NewFeatureCollection()
	for _, row := range rows {
		lat, latOK := coordinate(row["stop_lat"], 90)
		lon, lonOK := coordinate(row["stop_lon"], 180)
		if !latOK || !lonOK {
			continue
		}

		props := map[string]any{}
		for name, v := range row {
			if name == "stop_lat" || name == "stop_lon" {
				continue
			}
			props[name] = v.Arg()
		}

		fc.Features = append(fc.Features, model.Feature{
			Type:       "Feature",
			Geometry:   model.NewPoint(lon, lat),
			Properties: props,
		})
	}

	return fc, nil
}

// GetShapesAsGeoJSON assembles one LineString Feature per shape_id,
// with points ordered by shape_pt_sequence. Shapes with fewer than
// two valid points are left out.
func (s *Store) GetShapesAsGeoJSON(q Query) (*model.FeatureCollection, error) {
	rows, err := s.query("shapes", Query{
		AgencyKey: q.AgencyKey,
		Where:     q.Where,
		OrderBy: model.OrderBy{
			{Field: "shape_id"},
			{Field: "shape_pt_sequence"},
		},
	})
	if err != nil {
		return nil, err
	}

	fc := model.NewFeatureCollection()

	var shapeID string
	var points [][]float64
	flush := func() {
		if len(points) < 2 {
			points = nil
			return
		}
		fc.Features = append(fc.Features, model.Feature{
			Type:       "Feature",
			Geometry:   model.NewLineString(points),
			Properties: map[string]any{"shape_id": shapeID},
		})
		points = nil
	}

	for _, row := range rows {
		id := row["shape_id"].String()
		if id != shapeID {
			flush()
			shapeID = id
		}

		lat, latOK := coordinate(row["shape_pt_lat"], 90)
		lon, lonOK := coordinate(row["shape_pt_lon"], 180)
		if !latOK || !lonOK {
			continue
		}
		points = append(points, []float64{lon, lat})
	}
	flush()

	return fc, nil
}

func coordinate(v model.Value, bound float64) (float64, bool) {
	if v.Kind != model.KindFloat {
		return 0, false
	}
	if v.Float < -bound || v.Float > bound {
		return 0, false
	}
	return v.Float, true
}
