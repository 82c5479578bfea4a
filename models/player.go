package models

import "time"

// DefaultSkillRating используется при балансировке, если у игрока рейтинг не задан.
const DefaultSkillRating = 50

// Player — участник игр. Может быть привязан к зарегистрированному
// пользователю или существовать как гость, заведённый организатором.
type Player struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	SkillRating *int      `json:"skill_rating,omitempty" db:"skill_rating"`
	UserID      *int      `json:"user_id,omitempty" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	AvatarKey *string `json:"-" db:"avatar_key"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}

// Skill возвращает рейтинг игрока с подстановкой нейтрального значения.
func (p *Player) Skill() int {
	if p.SkillRating == nil {
		return DefaultSkillRating
	}
	return *p.SkillRating
}
