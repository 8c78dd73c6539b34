package utils

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Coordinate represents a geographic coordinate with latitude and longitude
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func validateCoordinate(coord Coordinate) error {
	// Latitude must be between -90 and 90
	if coord.Lat < -90 || coord.Lat > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", coord.Lat)
	}

	// Longitude must be between -180 and 180
	if coord.Lng < -180 || coord.Lng > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", coord.Lng)
	}

	return nil
}

// ParseBoundary parses a GeoJSON Polygon or MultiPolygon geometry.
func ParseBoundary(raw []byte) (orb.Geometry, error) {
	if len(raw) == 0 {
		return nil, nil // Boundary is optional
	}
	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid boundary GeoJSON: %w", err)
	}
	switch geom.Geometry().(type) {
	case orb.Polygon, orb.MultiPolygon:
		return geom.Geometry(), nil
	}
	return nil, errors.New("boundary must be a Polygon or MultiPolygon")
}

// PointInBoundary checks whether a coordinate lies inside a station
// boundary geometry.
func PointInBoundary(coord Coordinate, geom orb.Geometry) (bool, error) {
	if err := validateCoordinate(coord); err != nil {
		return false, err
	}
	point := orb.Point{coord.Lng, coord.Lat}
	switch g := geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, point), nil
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, point), nil
	}
	return false, errors.New("unsupported boundary geometry")
}

// BoundaryCenter returns the centroid of a boundary geometry.
func BoundaryCenter(geom orb.Geometry) Coordinate {
	center, _ := planar.CentroidArea(geom)
	return Coordinate{Lat: center[1], Lng: center[0]}
}
