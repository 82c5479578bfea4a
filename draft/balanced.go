package draft

import (
	"context"
	"fmt"
	"sort"

	"github.com/futdraft/futdraft-backend/models"
)

type BalancedDrafter struct{}

func NewBalancedDrafter() Drafter {
	return &BalancedDrafter{}
}

func (d *BalancedDrafter) GetName() string {
	return "Balanced"
}

// Draft assigns players sorted by skill (descending, ties broken by player id
// for determinism) greedily to the team with the lowest running skill sum,
// ties broken by lowest team index. Filling is round-based: only teams at the
// current minimum size are candidates, so no team ever exceeds ceil(n/k) and
// size balance takes precedence over skill balance.
//
// This is the classic greedy partition heuristic. It does not produce an
// optimal minimum-variance split, but rosters are tens of players at most.
func (d *BalancedDrafter) Draft(_ context.Context, params DraftParams) ([][]*models.Player, error) {
	if params.TeamCount < 2 {
		return nil, fmt.Errorf("BalancedDrafter: team count must be at least 2, got %d", params.TeamCount)
	}
	if len(params.Roster) < params.TeamCount {
		return nil, fmt.Errorf("BalancedDrafter: not enough players (found %d, min %d required)", len(params.Roster), params.TeamCount)
	}

	ordered := make([]*models.Player, len(params.Roster))
	copy(ordered, params.Roster)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Skill() != ordered[j].Skill() {
			return ordered[i].Skill() > ordered[j].Skill()
		}
		return ordered[i].ID < ordered[j].ID
	})

	teams := make([][]*models.Player, params.TeamCount)
	sums := make([]int, params.TeamCount)
	for i := range teams {
		teams[i] = make([]*models.Player, 0, teamCeiling(len(ordered), params.TeamCount))
	}

	for _, p := range ordered {
		target := 0
		for i := 1; i < len(teams); i++ {
			if len(teams[i]) < len(teams[target]) ||
				(len(teams[i]) == len(teams[target]) && sums[i] < sums[target]) {
				target = i
			}
		}
		teams[target] = append(teams[target], p)
		sums[target] += p.Skill()
	}

	return teams, nil
}
