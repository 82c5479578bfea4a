package models

import "time"

// Match представляет одну игру: событие с фиксированным числом слотов,
// опубликованное организатором.
type Match struct {
	ID        int       `json:"id" db:"id"`
	OwnerID   int       `json:"owner_id" db:"owner_id"`
	Date      time.Time `json:"date" db:"date"`
	Location  string    `json:"location" db:"location"`
	Slots     int       `json:"slots" db:"slots"`
	TeamCount int       `json:"team_count" db:"team_count"`
	Fee       *float64  `json:"fee,omitempty" db:"fee"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Owner      *User  `json:"owner,omitempty" db:"-"`
	Teams      []Team `json:"teams,omitempty" db:"-"`
	TakenSlots int    `json:"taken_slots" db:"-"`
}
