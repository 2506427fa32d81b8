package models

import "math"

// Route is an ordered polyline plus an estimated travel duration, produced
// per request by the routing service and held transiently.
type Route struct {
	Points          []Coordinate `json:"points"`
	DurationSeconds float64      `json:"durationSeconds"`
	DistanceKm      float64      `json:"distanceKm"`
}

// TravelTimeMinutes rounds the duration to whole minutes for display.
func (r *Route) TravelTimeMinutes() int {
	return int(math.Round(r.DurationSeconds / 60))
}
