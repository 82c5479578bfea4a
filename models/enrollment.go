package models

import "time"

// EnrollmentStatus представляет статусы записи, соответствующие ENUM в БД.
type EnrollmentStatus string

const (
	StatusEnrolled  EnrollmentStatus = "enrolled"
	StatusConfirmed EnrollmentStatus = "confirmed"
)

// Enrollment — заявка игрока на один слот конкретной игры.
// Пара (match_id, player_id) уникальна.
type Enrollment struct {
	ID        int              `json:"id" db:"id"`
	MatchID   int              `json:"match_id" db:"match_id"`
	PlayerID  int              `json:"player_id" db:"player_id"`
	Status    EnrollmentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
