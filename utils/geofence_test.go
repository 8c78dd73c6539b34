package utils

import "testing"

var squareBoundary = []byte(`{"type":"Polygon","coordinates":[[[100.5528,13.8018],[100.5548,13.8018],[100.5548,13.8034],[100.5528,13.8034],[100.5528,13.8018]]]}`)

func TestParseBoundary(t *testing.T) {
	geom, err := ParseBoundary(squareBoundary)
	if err != nil {
		t.Fatalf("ParseBoundary: %v", err)
	}
	if geom == nil {
		t.Fatal("ParseBoundary returned nil geometry")
	}

	if _, err := ParseBoundary([]byte(`{"type":"Point","coordinates":[100,13]}`)); err == nil {
		t.Error("Point geometry should be rejected")
	}
	if g, err := ParseBoundary(nil); g != nil || err != nil {
		t.Errorf("empty boundary should parse to nil, got %v, %v", g, err)
	}
}

func TestPointInBoundary(t *testing.T) {
	geom, err := ParseBoundary(squareBoundary)
	if err != nil {
		t.Fatalf("ParseBoundary: %v", err)
	}

	tests := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{"center", Coordinate{Lat: 13.8026, Lng: 100.5538}, true},
		{"outside north", Coordinate{Lat: 13.8050, Lng: 100.5538}, false},
		{"outside west", Coordinate{Lat: 13.8026, Lng: 100.5500}, false},
	}
	for _, tc := range tests {
		got, err := PointInBoundary(tc.coord, geom)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}

	if _, err := PointInBoundary(Coordinate{Lat: 95, Lng: 0}, geom); err == nil {
		t.Error("out-of-range latitude should be rejected")
	}
}
