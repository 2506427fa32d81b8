package models

import "time"

// ATMState is a community-reported availability flag for one ATM.
// One row per ATM id, owned by the reporting user that last touched it.
type ATMState struct {
	ID          string    `json:"id" db:"id"`
	ATMID       string    `json:"atmId" db:"atm_id"`
	IsAvailable bool      `json:"isAvailable" db:"is_available"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`
	UserID      string    `json:"userId" db:"user_id"`
}

// ChangeEvent describes a create/update/delete on an availability state.
// Subscribers are expected to re-fetch the full state list on any event.
type ChangeEvent struct {
	Event       string    `json:"event"` // create, update, delete
	ATMID       string    `json:"atmId"`
	IsAvailable bool      `json:"isAvailable"`
	LastUpdated time.Time `json:"lastUpdated"`
}
