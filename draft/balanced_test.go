package draft

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/futdraft/futdraft-backend/models"
)

func skillRoster(skills ...int) []*models.Player {
	roster := make([]*models.Player, 0, len(skills))
	for i, skill := range skills {
		s := skill
		roster = append(roster, &models.Player{
			ID:          i + 1,
			Name:        fmt.Sprintf("Игрок %d", i+1),
			SkillRating: &s,
		})
	}
	return roster
}

func teamIDs(teams [][]*models.Player) [][]int {
	out := make([][]int, len(teams))
	for i, team := range teams {
		out[i] = make([]int, 0, len(team))
		for _, p := range team {
			out[i] = append(out[i], p.ID)
		}
	}
	return out
}

func TestBalancedDrafterGreedyAssignment(t *testing.T) {
	tests := []struct {
		name      string
		skills    []int
		teamCount int
		wantIDs   [][]int
	}{
		{
			// 90 открывает первую команду, 80 и 70 уходят во вторую как в
			// наименьшую по сумме, дальше суммы выравниваются: 200 против 190.
			name:      "six players two teams",
			skills:    []int{90, 80, 70, 60, 50, 40},
			teamCount: 2,
			wantIDs:   [][]int{{1, 4, 5}, {2, 3, 6}},
		},
		{
			// Размер важнее суммы: слабые не сбиваются в одну переполненную
			// команду, даже если суммы этого просят.
			name:      "size ceiling beats skill sum",
			skills:    []int{100, 1, 1, 1},
			teamCount: 2,
			wantIDs:   [][]int{{1, 4}, {2, 3}},
		},
		{
			// Равные рейтинги раздаются по кругу в порядке ID.
			name:      "equal skills",
			skills:    []int{50, 50, 50, 50, 50, 50},
			teamCount: 3,
			wantIDs:   [][]int{{1, 4}, {2, 5}, {3, 6}},
		},
		{
			name:      "remainder goes to the lowest sums",
			skills:    []int{9, 8, 7, 6, 5},
			teamCount: 2,
			wantIDs:   [][]int{{1, 4, 5}, {2, 3}},
		},
	}

	d := NewBalancedDrafter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams, err := d.Draft(context.Background(), DraftParams{
				Roster:    skillRoster(tt.skills...),
				TeamCount: tt.teamCount,
			})
			if err != nil {
				t.Fatalf("draft: %v", err)
			}
			if got := teamIDs(teams); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("teams = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestBalancedDrafterIsDeterministic(t *testing.T) {
	d := NewBalancedDrafter()
	params := DraftParams{
		Roster:    skillRoster(73, 12, 55, 91, 33, 68, 47, 80),
		TeamCount: 3,
	}

	first, err := d.Draft(context.Background(), params)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	for run := 0; run < 5; run++ {
		again, err := d.Draft(context.Background(), params)
		if err != nil {
			t.Fatalf("draft: %v", err)
		}
		if !reflect.DeepEqual(teamIDs(first), teamIDs(again)) {
			t.Fatalf("draft is not deterministic: %v vs %v", teamIDs(first), teamIDs(again))
		}
	}
}

func TestBalancedDrafterUsesDefaultSkill(t *testing.T) {
	// Игрок без рейтинга участвует с нейтральными 50, а не с нулём.
	roster := skillRoster(90, 10)
	unrated := &models.Player{ID: 3, Name: "Без рейтинга"}
	roster = append(roster, unrated)

	d := NewBalancedDrafter()
	teams, err := d.Draft(context.Background(), DraftParams{Roster: roster, TeamCount: 2})
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	// Порядок раздачи: 90 (ID 1), 50 (ID 3), 10 (ID 2).
	want := [][]int{{1}, {3, 2}}
	if got := teamIDs(teams); !reflect.DeepEqual(got, want) {
		t.Errorf("teams = %v, want %v", got, want)
	}
}

func TestBalancedDrafterTeamSizesDifferByAtMostOne(t *testing.T) {
	d := NewBalancedDrafter()
	for _, tc := range []struct{ players, teamCount int }{
		{6, 4}, {7, 3}, {11, 5}, {20, 6},
	} {
		// Нулевые рейтинги — худший случай для жадного выбора по сумме.
		skills := make([]int, tc.players)
		teams, err := d.Draft(context.Background(), DraftParams{
			Roster:    skillRoster(skills...),
			TeamCount: tc.teamCount,
		})
		if err != nil {
			t.Fatalf("draft %d/%d: %v", tc.players, tc.teamCount, err)
		}

		min, max := len(teams[0]), len(teams[0])
		for _, team := range teams {
			if len(team) < min {
				min = len(team)
			}
			if len(team) > max {
				max = len(team)
			}
		}
		if max-min > 1 {
			t.Errorf("%d players / %d teams: sizes differ by %d", tc.players, tc.teamCount, max-min)
		}
	}
}
