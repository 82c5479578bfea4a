package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/futdraft/futdraft-backend/draft"
	"github.com/futdraft/futdraft-backend/models"
	"github.com/futdraft/futdraft-backend/repositories"
)

// DraftService собирает команды из подтверждённого состава матча.
//
// Повторная жеребьёвка всегда целиком заменяет предыдущие команды; в режиме
// random результат между вызовами не совпадает, это свойство контракта, а не
// ошибка.
type DraftService interface {
	// DraftTeams доступен только организатору матча. teamCount == 0 означает
	// желаемое число команд, заданное при создании матча.
	DraftTeams(ctx context.Context, matchID int, mode draft.Mode, teamCount, currentUserID int) (*models.Match, error)
}

type draftService struct {
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	enrollmentRepo repositories.EnrollmentRepository
	locks          *MatchLockRegistry
	hub            *draft.Hub
}

func NewDraftService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	locks *MatchLockRegistry,
	hub *draft.Hub,
) DraftService {
	return &draftService{
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		enrollmentRepo: enrollmentRepo,
		locks:          locks,
		hub:            hub,
	}
}

func (s *draftService) DraftTeams(ctx context.Context, matchID int, mode draft.Mode, teamCount, currentUserID int) (*models.Match, error) {
	// Мьютекс матча держится на всё время: снимок состава, расчёт и запись.
	// Конкурентные enroll/unenroll не могут вклиниться, поэтому команды
	// всегда соответствуют составу в одной точке времени.
	mu := s.locks.Lock(matchID)
	defer mu.Unlock()

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, storeError(err)
	}
	if match.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	if teamCount == 0 {
		teamCount = match.TeamCount
	}
	if teamCount < 2 || teamCount > match.Slots {
		return nil, ErrInvalidCapacity
	}

	var drafter draft.Drafter
	switch mode {
	case draft.ModeRandom:
		drafter = draft.NewRandomDrafter()
	case draft.ModeBalanced:
		drafter = draft.NewBalancedDrafter()
	default:
		return nil, ErrInvalidDraftMode
	}

	confirmed := models.StatusConfirmed
	enrollments, err := s.enrollmentRepo.ListByMatch(ctx, matchID, &confirmed, true)
	if err != nil {
		return nil, storeError(err)
	}
	roster := make([]*models.Player, 0, len(enrollments))
	for _, e := range enrollments {
		roster = append(roster, e.Player)
	}
	if len(roster) < teamCount {
		return nil, ErrInsufficientPlayers
	}

	buckets, err := drafter.Draft(ctx, draft.DraftParams{Roster: roster, TeamCount: teamCount})
	if err != nil {
		return nil, fmt.Errorf("failed to draft teams for match %d: %w", matchID, err)
	}

	teams := make([]*models.Team, 0, len(buckets))
	for i, bucket := range buckets {
		team := &models.Team{
			MatchID:  matchID,
			Label:    fmt.Sprintf("Team %d", i+1),
			Position: i + 1,
			Players:  make([]models.Player, 0, len(bucket)),
		}
		for _, p := range bucket {
			team.Players = append(team.Players, *p)
		}
		teams = append(teams, team)
	}

	// Старые команды уходят целиком, слияния повторных жеребьёвок не бывает.
	if err := s.teamRepo.ReplaceForMatch(ctx, matchID, teams); err != nil {
		return nil, storeError(err)
	}

	saved, err := s.teamRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, storeError(err)
	}
	match.Teams = saved
	match.TakenSlots, err = s.enrollmentRepo.CountByMatch(ctx, matchID)
	if err != nil {
		return nil, storeError(err)
	}

	slog.Info("teams drafted",
		slog.Int("match_id", matchID),
		slog.String("drafter", drafter.GetName()),
		slog.Int("teams", len(saved)),
		slog.Int("players", len(roster)))

	s.notifyDrafted(matchID, saved)
	return match, nil
}

func (s *draftService) notifyDrafted(matchID int, teams []models.Team) {
	if s.hub == nil {
		return
	}
	roomID := draft.MatchRoomID(matchID)
	s.hub.BroadcastToRoom(roomID, draft.WebSocketMessage{
		Type:    draft.EventTeamsDrafted,
		Payload: teams,
		RoomID:  roomID,
	})
}
