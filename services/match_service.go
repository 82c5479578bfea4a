package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/futdraft/futdraft-backend/models"
	"github.com/futdraft/futdraft-backend/repositories"
	"golang.org/x/sync/errgroup"
)

// Окно для "ближайших" игр организатора: от трёх дней назад до недели вперёд.
const (
	upcomingWindowPast   = 3 * 24 * time.Hour
	upcomingWindowFuture = 7 * 24 * time.Hour
)

type CreateMatchInput struct {
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Slots     int       `json:"slots"`
	TeamCount int       `json:"team_count"`
	Fee       *float64  `json:"fee,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

type UpdateMatchInput struct {
	Date     *time.Time `json:"date,omitempty"`
	Location *string    `json:"location,omitempty"`
	Fee      *float64   `json:"fee,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

// MatchService — реестр матчей и фасад чтения (матчи с командами и занятыми
// слотами). Вместимость и число команд фиксируются при создании.
type MatchService interface {
	CreateMatch(ctx context.Context, ownerID int, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]*models.Match, error)
	ListMatchesByOwner(ctx context.Context, ownerID int) ([]*models.Match, error)
	ListUpcomingByOwner(ctx context.Context, ownerID int) ([]*models.Match, error)
	UpdateMatch(ctx context.Context, matchID, currentUserID int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, matchID, currentUserID int) error
	UpdateTeamGoals(ctx context.Context, teamID, currentUserID, goals int) (*models.Team, error)
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	enrollmentRepo repositories.EnrollmentRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	enrollmentRepo repositories.EnrollmentRepository,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, ownerID int, input CreateMatchInput) (*models.Match, error) {
	if input.Slots < 2 || input.TeamCount < 2 || input.TeamCount > input.Slots {
		return nil, ErrInvalidCapacity
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, ErrValidationFailed
	}

	match := &models.Match{
		OwnerID:   ownerID,
		Date:      input.Date,
		Location:  strings.TrimSpace(input.Location),
		Slots:     input.Slots,
		TeamCount: input.TeamCount,
		Fee:       input.Fee,
		Notes:     input.Notes,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchOwnerInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}
	match.Teams = []models.Team{}
	return match, nil
}

// GetMatch возвращает матч с командами и числом занятых слотов.
func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, storeError(err)
	}

	if err := s.attachDetails(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if err := s.attachDetailsAll(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *matchService) ListMatchesByOwner(ctx context.Context, ownerID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := s.attachDetailsAll(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *matchService) ListUpcomingByOwner(ctx context.Context, ownerID int) ([]*models.Match, error) {
	now := time.Now()
	matches, err := s.matchRepo.ListByOwnerAndDateRange(ctx, ownerID, now.Add(-upcomingWindowPast), now.Add(upcomingWindowFuture))
	if err != nil {
		return nil, storeError(err)
	}
	if err := s.attachDetailsAll(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, matchID, currentUserID int, input UpdateMatchInput) (*models.Match, error) {
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

	if input.Date != nil {
		match.Date = *input.Date
	}
	if input.Location != nil {
		if strings.TrimSpace(*input.Location) == "" {
			return nil, ErrValidationFailed
		}
		match.Location = strings.TrimSpace(*input.Location)
	}
	if input.Fee != nil {
		match.Fee = input.Fee
	}
	if input.Notes != nil {
		match.Notes = input.Notes
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, storeError(err)
	}

	if err := s.attachDetails(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, matchID, currentUserID int) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return storeError(err)
	}
	if match.OwnerID != currentUserID {
		return ErrForbiddenOperation
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return storeError(err)
	}
	return nil
}

// UpdateTeamGoals фиксирует счёт команды после игры. Доступно только
// организатору матча; к жеребьёвке отношения не имеет.
func (s *matchService) UpdateTeamGoals(ctx context.Context, teamID, currentUserID, goals int) (*models.Team, error) {
	if goals < 0 {
		return nil, ErrValidationFailed
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, storeError(err)
	}

	match, err := s.matchRepo.GetByID(ctx, team.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, storeError(err)
	}
	if match.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	if err := s.teamRepo.UpdateGoals(ctx, teamID, goals); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, storeError(err)
	}
	team.Goals = goals
	return team, nil
}

// attachDetails подгружает команды и число занятых слотов одного матча
// параллельно.
func (s *matchService) attachDetails(ctx context.Context, match *models.Match) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams, err := s.teamRepo.ListByMatch(gCtx, match.ID)
		if err != nil {
			return storeError(err)
		}
		match.Teams = teams
		return nil
	})
	g.Go(func() error {
		taken, err := s.enrollmentRepo.CountByMatch(gCtx, match.ID)
		if err != nil {
			return storeError(err)
		}
		match.TakenSlots = taken
		return nil
	})

	return g.Wait()
}

func (s *matchService) attachDetailsAll(ctx context.Context, matches []*models.Match) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, match := range matches {
		match := match
		g.Go(func() error {
			return s.attachDetails(gCtx, match)
		})
	}
	return g.Wait()
}
