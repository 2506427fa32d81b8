package models

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ATM represents a single cash machine location entry.
type ATM struct {
	ID           string     `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Bank         string     `json:"bank" db:"bank"`
	Coordinate   Coordinate `json:"coordinate"`
	Address      string     `json:"address" db:"address"`
	Services     []string   `json:"services" db:"services"`
	IsOpen       bool       `json:"isOpen" db:"is_open"`
	OpeningHours string     `json:"openingHours" db:"opening_hours"`
	Rating       float64    `json:"rating" db:"rating"`
	Logo         string     `json:"logo" db:"logo_url"`

	// DistanceKm is derived from the caller's reference point per query,
	// never persisted.
	DistanceKm float64 `json:"distance"`
}
