package draft

import (
	"context"
	"fmt"
	"testing"

	"github.com/futdraft/futdraft-backend/models"
)

func makeRoster(n int) []*models.Player {
	roster := make([]*models.Player, 0, n)
	for i := 1; i <= n; i++ {
		roster = append(roster, &models.Player{
			ID:   i,
			Name: fmt.Sprintf("Игрок %d", i),
		})
	}
	return roster
}

func TestRandomDrafterPartition(t *testing.T) {
	tests := []struct {
		players   int
		teamCount int
		wantSizes []int
	}{
		{players: 9, teamCount: 3, wantSizes: []int{3, 3, 3}},
		{players: 10, teamCount: 3, wantSizes: []int{4, 3, 3}},
		{players: 7, teamCount: 2, wantSizes: []int{4, 3}},
		{players: 2, teamCount: 2, wantSizes: []int{1, 1}},
		{players: 5, teamCount: 4, wantSizes: []int{2, 1, 1, 1}},
	}

	d := NewRandomDrafter()
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d players %d teams", tt.players, tt.teamCount), func(t *testing.T) {
			// Размеры детерминированы раскладкой по кругу, сколько бы раз
			// жеребьёвка ни повторялась.
			for run := 0; run < 20; run++ {
				teams, err := d.Draft(context.Background(), DraftParams{
					Roster:    makeRoster(tt.players),
					TeamCount: tt.teamCount,
				})
				if err != nil {
					t.Fatalf("draft: %v", err)
				}
				if len(teams) != tt.teamCount {
					t.Fatalf("teams = %d, want %d", len(teams), tt.teamCount)
				}

				seen := make(map[int]bool, tt.players)
				for i, team := range teams {
					if len(team) != tt.wantSizes[i] {
						t.Fatalf("team %d size = %d, want %d", i, len(team), tt.wantSizes[i])
					}
					for _, p := range team {
						if seen[p.ID] {
							t.Fatalf("player %d appears twice", p.ID)
						}
						seen[p.ID] = true
					}
				}
				if len(seen) != tt.players {
					t.Fatalf("assigned players = %d, want %d", len(seen), tt.players)
				}
			}
		})
	}
}

func TestRandomDrafterUniformAssignment(t *testing.T) {
	// При честной перетасовке каждый игрок попадает в каждую команду примерно
	// в трети прогонов. Полоса ±40% от ожидания широкая и на 1500 прогонах
	// ложно не срабатывает, но смещённую раздачу (например, игрока,
	// прилипшего к одной команде) ловит надёжно.
	const (
		players   = 9
		teamCount = 3
		runs      = 1500
	)
	expected := runs / teamCount
	lo := expected * 60 / 100
	hi := expected * 140 / 100

	d := NewRandomDrafter()
	roster := makeRoster(players)
	counts := make([][]int, players+1)
	for id := 1; id <= players; id++ {
		counts[id] = make([]int, teamCount)
	}

	for run := 0; run < runs; run++ {
		teams, err := d.Draft(context.Background(), DraftParams{Roster: roster, TeamCount: teamCount})
		if err != nil {
			t.Fatalf("draft: %v", err)
		}
		for teamIdx, team := range teams {
			for _, p := range team {
				counts[p.ID][teamIdx]++
			}
		}
	}

	for id := 1; id <= players; id++ {
		for teamIdx, count := range counts[id] {
			if count < lo || count > hi {
				t.Errorf("player %d landed in team %d %d times, want %d..%d (expected ~%d)",
					id, teamIdx, count, lo, hi, expected)
			}
		}
	}
}

func TestRandomDrafterDoesNotMutateRoster(t *testing.T) {
	d := NewRandomDrafter()
	roster := makeRoster(6)

	if _, err := d.Draft(context.Background(), DraftParams{Roster: roster, TeamCount: 2}); err != nil {
		t.Fatalf("draft: %v", err)
	}
	for i, p := range roster {
		if p.ID != i+1 {
			t.Fatalf("roster order changed: roster[%d].ID = %d", i, p.ID)
		}
	}
}

func TestDrafterNames(t *testing.T) {
	// Имена попадают в журнал жеребьёвки, менять их молча нельзя.
	if got := NewRandomDrafter().GetName(); got != "Random" {
		t.Errorf("random drafter name = %q, want %q", got, "Random")
	}
	if got := NewBalancedDrafter().GetName(); got != "Balanced" {
		t.Errorf("balanced drafter name = %q, want %q", got, "Balanced")
	}
}

func TestRandomDrafterValidation(t *testing.T) {
	d := NewRandomDrafter()

	if _, err := d.Draft(context.Background(), DraftParams{Roster: makeRoster(5), TeamCount: 1}); err == nil {
		t.Error("expected error for a single team")
	}
	if _, err := d.Draft(context.Background(), DraftParams{Roster: makeRoster(2), TeamCount: 3}); err == nil {
		t.Error("expected error when players are fewer than teams")
	}
}
