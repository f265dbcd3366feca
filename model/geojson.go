package model

// GeoJSON wrappers for the geospatial query variants.

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}
}

func NewPoint(lon, lat float64) Geometry {
	return Geometry{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
	}
}

func NewLineString(points [][]float64) Geometry {
	return Geometry{
		Type:        "LineString",
		Coordinates: points,
	}
}
