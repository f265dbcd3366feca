package gtfsdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanatlas/gtfsdb/model"
)

func TestStopsAsGeoJSON(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon",
			"S1,First St,40.70,-74.10",
			"S2,Second St,40.72,-74.12",
		},
	})

	fc, err := s.GetStopsAsGeoJSON(Query{AgencyKey: "a1"})
	require.NoError(t, err)
	require.Equal(t, "FeatureCollection", fc.Type)
	require.Equal(t, 2, len(fc.Features))

	byID := map[any]model.Feature{}
	for _, f := range fc.Features {
		assert.Equal(t, "Feature", f.Type)
		assert.Equal(t, "Point", f.Geometry.Type)
		byID[f.Properties["stop_id"]] = f
	}

	f, ok := byID["S1"]
	require.True(t, ok)
	coords, ok := f.Geometry.Coordinates.([]float64)
	require.True(t, ok)
	require.Equal(t, 2, len(coords))
	// Longitude first.
	assert.InDelta(t, -74.10, coords[0], 1e-9)
	assert.InDelta(t, 40.70, coords[1], 1e-9)

	_, hasLat := f.Properties["stop_lat"]
	_, hasLon := f.Properties["stop_lon"]
	assert.False(t, hasLat)
	assert.False(t, hasLon)
	assert.Equal(t, "First St", f.Properties["stop_name"])
}

func TestStopsAsGeoJSONSkipsInvalidCoordinates(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon",
			"OK,Good St,40.70,-74.10",
			"NOLAT,No Lat St,,-74.11",
			"RANGE,Range St,95.0,-74.12",
		},
	})

	fc, err := s.GetStopsAsGeoJSON(Query{AgencyKey: "a1"})
	require.NoError(t, err)
	require.Equal(t, 1, len(fc.Features))
	assert.Equal(t, "OK", fc.Features[0].Properties["stop_id"])
}

func TestStopsAsGeoJSONIgnoresFields(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", nil)

	// Projection cannot strip the coordinate columns.
	fc, err := s.GetStopsAsGeoJSON(Query{
		AgencyKey: "a1",
		Fields:    []string{"stop_id"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, len(fc.Features))
}

func TestShapesAsGeoJSON(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", map[string][]string{
		"shapes.txt": {
			"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence",
			"SH1,40.72,-74.12,3",
			"SH1,40.70,-74.10,1",
			"SH1,40.71,-74.11,2",
			"SH2,41.00,-75.00,1",
			"SH2,41.01,-75.01,2",
		},
	})

	fc, err := s.GetShapesAsGeoJSON(Query{AgencyKey: "a1"})
	require.NoError(t, err)
	require.Equal(t, 2, len(fc.Features))

	byID := map[any]model.Feature{}
	for _, f := range fc.Features {
		assert.Equal(t, "LineString", f.Geometry.Type)
		byID[f.Properties["shape_id"]] = f
	}

	f, ok := byID["SH1"]
	require.True(t, ok)
	coords, ok := f.Geometry.Coordinates.([][]float64)
	require.True(t, ok)
	require.Equal(t, 3, len(coords))
	// Points come back in sequence order regardless of file order.
	assert.InDelta(t, -74.10, coords[0][0], 1e-9)
	assert.InDelta(t, -74.11, coords[1][0], 1e-9)
	assert.InDelta(t, -74.12, coords[2][0], 1e-9)
}

func TestShapesAsGeoJSONExcludesDegenerate(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", map[string][]string{
		"shapes.txt": {
			"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence",
			"LONELY,40.70,-74.10,1",
			"PAIR,40.70,-74.10,1",
			"PAIR,40.71,-74.11,2",
		},
	})

	fc, err := s.GetShapesAsGeoJSON(Query{AgencyKey: "a1"})
	require.NoError(t, err)
	require.Equal(t, 1, len(fc.Features))
	assert.Equal(t, "PAIR", fc.Features[0].Properties["shape_id"])
}

func TestShapesAsGeoJSONWhereFilter(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", map[string][]string{
		"shapes.txt": {
			"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence",
			"SH1,40.70,-74.10,1",
			"SH1,40.71,-74.11,2",
			"SH2,41.00,-75.00,1",
			"SH2,41.01,-75.01,2",
		},
	})

	fc, err := s.GetShapesAsGeoJSON(Query{
		AgencyKey: "a1",
		Where:     model.Where{"shape_id": "SH2"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, len(fc.Features))
	assert.Equal(t, "SH2", fc.Features[0].Properties["shape_id"])
}
