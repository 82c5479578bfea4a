package models

import "time"

// Team — команда, собранная драфтом внутри одной игры.
// Все команды игры целиком заменяются при повторном драфте.
type Team struct {
	ID        int       `json:"id" db:"id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	Label     string    `json:"label" db:"label"`
	Position  int       `json:"position" db:"position"`
	Goals     int       `json:"goals" db:"goals"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}
