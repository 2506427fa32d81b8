package spatial

import (
	"math"
	"testing"
)

func TestDistanceSymmetry(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"Lubumbashi pair", -11.6647, 27.4794, -11.6598, 27.4731},
		{"across equator", -1.5, 30.0, 2.25, 28.75},
		{"across antimeridian", 10.0, 179.5, 10.0, -179.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			ba := Distance(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
			}
		})
	}
}

func TestDistanceIdentity(t *testing.T) {
	points := [][2]float64{{0, 0}, {-11.6647, 27.4794}, {89.9, -120.0}}
	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v, %v) to itself = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceAdditivityAlongGreatCircle(t *testing.T) {
	// Three colinear points along the equator.
	ac := Distance(0, 10, 0, 11)
	ab := Distance(0, 10, 0, 10.5)
	bc := Distance(0, 10.5, 0, 11)

	if math.Abs(ac-(ab+bc)) > 1e-6 {
		t.Errorf("Distance not additive: %v != %v + %v", ac, ab, bc)
	}
}

// Regression fixture: two Rawbank ATMs from the Lubumbashi data set.
func TestDistanceLubumbashiFixture(t *testing.T) {
	got := Distance(-11.6647, 27.4794, -11.6598, 27.4731)
	const want = 0.8761
	if math.Abs(got-want) > 0.001 {
		t.Errorf("Distance = %v km, want %v ± 0.001", got, want)
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	if d := Distance(math.NaN(), 27.4794, -11.6598, 27.4731); !math.IsNaN(d) {
		t.Errorf("Distance with NaN input = %v, want NaN", d)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"due north", 0, 20, 1, 20, 0},
		{"due east", 0, 20, 0, 21, 90},
		{"due south", 1, 20, 0, 20, 180},
		{"due west", 0, 21, 0, 20, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Bearing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDestinationPointRoundTrip(t *testing.T) {
	lat, lon := DestinationPoint(-11.6647, 27.4794, 45, 10)
	back := Distance(-11.6647, 27.4794, lat, lon)
	if math.Abs(back-10) > 0.01 {
		t.Errorf("DestinationPoint landed %v km away, want 10", back)
	}
}

func TestIsValidLatLon(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{-11.6647, 27.4794, true},
		{0, 0, true},
		{91, 0, false},
		{0, 181, false},
		{math.NaN(), 0, false},
	}

	for _, tt := range tests {
		if got := IsValidLatLon(tt.lat, tt.lon); got != tt.want {
			t.Errorf("IsValidLatLon(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}

func TestBoxAroundContainsRadius(t *testing.T) {
	minLat, minLon, maxLat, maxLon := BoxAround(-11.6647, 27.4794, 5)

	if minLat >= maxLat || minLon >= maxLon {
		t.Fatalf("degenerate box: %v %v %v %v", minLat, minLon, maxLat, maxLon)
	}

	// A point 4 km due north must land inside the box.
	lat, lon := DestinationPoint(-11.6647, 27.4794, 0, 4)
	if lat < minLat || lat > maxLat || lon < minLon || lon > maxLon {
		t.Errorf("point 4 km north (%v, %v) outside box", lat, lon)
	}
}

func TestPathLengthKm(t *testing.T) {
	if got := PathLengthKm([]Point{{Lat: 0, Lon: 10}}); got != 0 {
		t.Errorf("single-point path length = %v, want 0", got)
	}

	path := []Point{{Lat: 0, Lon: 10}, {Lat: 0, Lon: 10.5}, {Lat: 0, Lon: 11}}
	want := Distance(0, 10, 0, 11)
	if got := PathLengthKm(path); math.Abs(got-want) > 1e-6 {
		t.Errorf("PathLengthKm = %v, want %v", got, want)
	}
}
