package draft

import (
	"context"

	"github.com/futdraft/futdraft-backend/models"
)

// Mode задаёт алгоритм жеребьёвки составов.
type Mode string

const (
	ModeRandom   Mode = "random"
	ModeBalanced Mode = "balanced"
)

type DraftParams struct {
	// Roster — подтверждённые игроки матча на момент жеребьёвки.
	Roster    []*models.Player
	TeamCount int
}

// Drafter разбивает состав на TeamCount команд. Каждый игрок попадает ровно
// в одну команду; размеры команд отличаются не больше чем на одного игрока.
type Drafter interface {
	Draft(ctx context.Context, params DraftParams) ([][]*models.Player, error)

	GetName() string
}

// teamCeiling — максимальный размер одной команды при n игроках на k команд.
func teamCeiling(n, k int) int {
	return (n + k - 1) / k
}
