package services

import (
	"context"
	"errors"

	"github.com/futdraft/futdraft-backend/draft"
	"github.com/futdraft/futdraft-backend/models"
	"github.com/futdraft/futdraft-backend/repositories"
)

// EnrollmentService владеет машиной состояний записи на матч:
// Absent → Enrolled → Confirmed, с обратными переходами Confirmed → Enrolled
// (отмена подтверждения) и Enrolled → Absent (выписка). Выписаться из
// состояния Confirmed нельзя — сначала отмена подтверждения. Это контракт
// продукта, а не случайность: подтверждённый игрок не освобождает слот молча.
//
// Подтверждение не меняет число занятых слотов: слот занимают оба статуса.
type EnrollmentService interface {
	Enroll(ctx context.Context, matchID, playerID int) (*models.Enrollment, error)
	Unenroll(ctx context.Context, matchID, playerID int) error
	ConfirmPresence(ctx context.Context, matchID, playerID int) (*models.Enrollment, error)
	UndoConfirm(ctx context.Context, matchID, playerID int) (*models.Enrollment, error)
	// ConfirmedRoster возвращает подтверждённых игроков матча; использует
	// движок жеребьёвки.
	ConfirmedRoster(ctx context.Context, matchID int) ([]*models.Player, error)
	ListRoster(ctx context.Context, matchID int) ([]*models.Enrollment, error)
}

type enrollmentService struct {
	enrollmentRepo repositories.EnrollmentRepository
	matchRepo      repositories.MatchRepository
	playerRepo     repositories.PlayerRepository
	locks          *MatchLockRegistry
	hub            *draft.Hub
}

// NewEnrollmentService создаёт сервис записи. locks разделяется с движком
// жеребьёвки, чтобы драфт и запись на один матч не пересекались; hub может
// быть nil (рассылка событий отключена).
func NewEnrollmentService(
	enrollmentRepo repositories.EnrollmentRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	locks *MatchLockRegistry,
	hub *draft.Hub,
) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		locks:          locks,
		hub:            hub,
	}
}

// Enroll записывает игрока на матч. Проверка вместимости и вставка записи
// выполняются под мьютексом матча: два конкурентных Enroll за последний слот
// не могут пройти оба.
func (s *enrollmentService) Enroll(ctx context.Context, matchID, playerID int) (*models.Enrollment, error) {
	mu := s.locks.Lock(matchID)
	defer mu.Unlock()

	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	_, err = s.enrollmentRepo.FindByMatchAndPlayer(ctx, matchID, playerID)
	if err == nil {
		return nil, ErrAlreadyEnrolled
	}
	if !errors.Is(err, repositories.ErrEnrollmentNotFound) {
		return nil, storeError(err)
	}

	taken, err := s.enrollmentRepo.CountByMatch(ctx, matchID)
	if err != nil {
		return nil, storeError(err)
	}
	if taken >= match.Slots {
		return nil, ErrMatchFull
	}

	enrollment := &models.Enrollment{
		MatchID:  matchID,
		PlayerID: playerID,
		Status:   models.StatusEnrolled,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEnrollmentConflict):
			return nil, ErrAlreadyEnrolled
		case errors.Is(err, repositories.ErrEnrollmentMatchInvalid):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrEnrollmentPlayerInvalid):
			return nil, ErrPlayerNotFound
		default:
			return nil, storeError(err)
		}
	}

	s.notify(matchID, enrollment)
	return enrollment, nil
}

// Unenroll убирает запись и освобождает слот. Разрешено только из состояния
// Enrolled; из Confirmed — сначала UndoConfirm.
func (s *enrollmentService) Unenroll(ctx context.Context, matchID, playerID int) error {
	mu := s.locks.Lock(matchID)
	defer mu.Unlock()

	if _, err := s.getMatch(ctx, matchID); err != nil {
		return err
	}

	enrollment, err := s.findEnrollment(ctx, matchID, playerID)
	if err != nil {
		return err
	}
	if enrollment.Status == models.StatusConfirmed {
		return ErrMustUnconfirmFirst
	}

	if err := s.enrollmentRepo.Delete(ctx, enrollment.ID); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return ErrNotEnrolled
		}
		return storeError(err)
	}

	s.notify(matchID, &models.Enrollment{MatchID: matchID, PlayerID: playerID})
	return nil
}

// ConfirmPresence переводит запись Enrolled → Confirmed, не меняя число
// занятых слотов.
func (s *enrollmentService) ConfirmPresence(ctx context.Context, matchID, playerID int) (*models.Enrollment, error) {
	mu := s.locks.Lock(matchID)
	defer mu.Unlock()

	if _, err := s.getMatch(ctx, matchID); err != nil {
		return nil, err
	}

	enrollment, err := s.findEnrollment(ctx, matchID, playerID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != models.StatusEnrolled {
		return nil, ErrNotEnrolled
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, enrollment.ID, models.StatusConfirmed); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, storeError(err)
	}
	enrollment.Status = models.StatusConfirmed

	s.notify(matchID, enrollment)
	return enrollment, nil
}

// UndoConfirm переводит запись Confirmed → Enrolled.
func (s *enrollmentService) UndoConfirm(ctx context.Context, matchID, playerID int) (*models.Enrollment, error) {
	mu := s.locks.Lock(matchID)
	defer mu.Unlock()

	if _, err := s.getMatch(ctx, matchID); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.FindByMatchAndPlayer(ctx, matchID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, ErrNotConfirmed
		}
		return nil, storeError(err)
	}
	if enrollment.Status != models.StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, enrollment.ID, models.StatusEnrolled); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, ErrNotConfirmed
		}
		return nil, storeError(err)
	}
	enrollment.Status = models.StatusEnrolled

	s.notify(matchID, enrollment)
	return enrollment, nil
}

func (s *enrollmentService) ConfirmedRoster(ctx context.Context, matchID int) ([]*models.Player, error) {
	if _, err := s.getMatch(ctx, matchID); err != nil {
		return nil, err
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
	return roster, nil
}

func (s *enrollmentService) ListRoster(ctx context.Context, matchID int) ([]*models.Enrollment, error) {
	if _, err := s.getMatch(ctx, matchID); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByMatch(ctx, matchID, nil, true)
	if err != nil {
		return nil, storeError(err)
	}
	return enrollments, nil
}

func (s *enrollmentService) getMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, storeError(err)
	}
	return match, nil
}

func (s *enrollmentService) getPlayer(ctx context.Context, playerID int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, storeError(err)
	}
	return player, nil
}

func (s *enrollmentService) findEnrollment(ctx context.Context, matchID, playerID int) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByMatchAndPlayer(ctx, matchID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, storeError(err)
	}
	return enrollment, nil
}

func (s *enrollmentService) notify(matchID int, enrollment *models.Enrollment) {
	if s.hub == nil {
		return
	}
	roomID := draft.MatchRoomID(matchID)
	s.hub.BroadcastToRoom(roomID, draft.WebSocketMessage{
		Type:    draft.EventEnrollmentUpdated,
		Payload: enrollment,
		RoomID:  roomID,
	})
}
