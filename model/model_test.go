package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueZeroIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Nil(t, v.Arg())
	assert.Equal(t, "", v.String())
}

func TestValueVariants(t *testing.T) {
	assert.Equal(t, "L", String("L").Arg())
	assert.Equal(t, int64(42), Int64(42).Arg())
	assert.Equal(t, 40.7, Float64(40.7).Arg())

	assert.Equal(t, "42", Int64(42).String())
	assert.Equal(t, "40.7", Float64(40.7).String())

	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(String("b")))
	assert.False(t, Null.Equal(Int64(0)))
}

func TestRowMarshalJSON(t *testing.T) {
	row := Row{
		"route_id":   String("A1"),
		"route_type": Int64(3),
		"route_desc": Null,
	}

	buf, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"route_id":"A1","route_type":3,"route_desc":null}`, string(buf))
}

func TestFeatureCollectionMarshalJSON(t *testing.T) {
	fc := NewFeatureCollection()
	fc.Features = append(fc.Features, Feature{
		Type:       "Feature",
		Geometry:   NewPoint(-74.1, 40.7),
		Properties: map[string]any{"stop_id": "S1"},
	})

	buf, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [-74.1, 40.7]},
			"properties": {"stop_id": "S1"}
		}]
	}`, string(buf))
}

func TestEmptyFeatureCollectionMarshalJSON(t *testing.T) {
	buf, err := json.Marshal(NewFeatureCollection())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(buf))
}
