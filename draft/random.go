package draft

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/futdraft/futdraft-backend/models"
)

type RandomDrafter struct{}

func NewRandomDrafter() Drafter {
	return &RandomDrafter{}
}

func (d *RandomDrafter) GetName() string {
	return "Random"
}

// Draft applies a uniform permutation to the roster and deals players
// round-robin into TeamCount buckets, so team sizes differ by at most 1.
// Consecutive calls over the same roster produce different partitions.
func (d *RandomDrafter) Draft(_ context.Context, params DraftParams) ([][]*models.Player, error) {
	if params.TeamCount < 2 {
		return nil, fmt.Errorf("RandomDrafter: team count must be at least 2, got %d", params.TeamCount)
	}
	if len(params.Roster) < params.TeamCount {
		return nil, fmt.Errorf("RandomDrafter: not enough players (found %d, min %d required)", len(params.Roster), params.TeamCount)
	}

	shuffled := make([]*models.Player, len(params.Roster))
	copy(shuffled, params.Roster)
	// rand.Shuffle is a Fisher–Yates shuffle; every permutation is equally likely.
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	teams := make([][]*models.Player, params.TeamCount)
	for i := range teams {
		teams[i] = make([]*models.Player, 0, teamCeiling(len(shuffled), params.TeamCount))
	}
	for i, p := range shuffled {
		idx := i % params.TeamCount
		teams[idx] = append(teams[idx], p)
	}

	return teams, nil
}
