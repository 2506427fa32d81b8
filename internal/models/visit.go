package models

import "time"

// VisitEntry records a confirmed route to an ATM. Entries are written once
// after the user confirms a route and only read back for display.
type VisitEntry struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"userId" db:"user_id"`
	ATMName       string    `json:"atmName" db:"atm_name"`
	ATMAddress    string    `json:"atmAddress" db:"atm_address"`
	TravelTimeMin *int      `json:"travelTimeMin,omitempty" db:"travel_time_min"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
