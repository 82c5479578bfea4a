package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/futdraft/futdraft-backend/models"
	"github.com/futdraft/futdraft-backend/repositories"
)

// In-memory репозитории для тестов сервисов. Повторяют контракт Postgres-
// реализаций: те же sentinel-ошибки, тот же порядок выдачи. Все операции
// защищены мьютексом, чтобы конкурентные тесты были честными.

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches map[int]models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]models.Match)}
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	match.ID = r.nextID
	match.CreatedAt = time.Now()
	r.matches[match.ID] = *match
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &match, nil
}

func (r *fakeMatchRepo) List(_ context.Context) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Match, 0, len(r.matches))
	for id := 1; id <= r.nextID; id++ {
		if match, ok := r.matches[id]; ok {
			m := match
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByOwner(ctx context.Context, ownerID int) ([]*models.Match, error) {
	all, _ := r.List(ctx)
	out := make([]*models.Match, 0)
	for _, m := range all {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByOwnerAndDateRange(ctx context.Context, ownerID int, from, to time.Time) ([]*models.Match, error) {
	owned, _ := r.ListByOwner(ctx, ownerID)
	out := make([]*models.Match, 0)
	for _, m := range owned {
		if !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.matches[match.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	stored.Date = match.Date
	stored.Location = match.Location
	stored.Fee = match.Fee
	stored.Notes = match.Notes
	r.matches[match.ID] = stored
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.users {
		if stored.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	nextID  int
	players map[int]models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]models.Player)}
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	player.ID = r.nextID
	player.CreatedAt = time.Now()
	r.players[player.ID] = *player
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &player, nil
}

func (r *fakePlayerRepo) GetByUserID(_ context.Context, userID int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := 1; id <= r.nextID; id++ {
		if p, ok := r.players[id]; ok && p.UserID != nil && *p.UserID == userID {
			player := p
			return &player, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) List(_ context.Context) ([]*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Player, 0, len(r.players))
	for id := 1; id <= r.nextID; id++ {
		if p, ok := r.players[id]; ok {
			player := p
			out = append(out, &player)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) UpdateAvatarKey(_ context.Context, id int, avatarKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.AvatarKey = avatarKey
	r.players[id] = player
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	nextID      int
	enrollments map[int]models.Enrollment
	players     *fakePlayerRepo
}

func newFakeEnrollmentRepo(players *fakePlayerRepo) *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		enrollments: make(map[int]models.Enrollment),
		players:     players,
	}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, e *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.enrollments {
		if stored.MatchID == e.MatchID && stored.PlayerID == e.PlayerID {
			return repositories.ErrEnrollmentConflict
		}
	}
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	r.enrollments[e.ID] = *e
	return nil
}

func (r *fakeEnrollmentRepo) UpdateStatus(_ context.Context, id int, status models.EnrollmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.enrollments[id]
	if !ok {
		return repositories.ErrEnrollmentNotFound
	}
	e.Status = status
	r.enrollments[id] = e
	return nil
}

func (r *fakeEnrollmentRepo) FindByMatchAndPlayer(_ context.Context, matchID, playerID int) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.MatchID == matchID && e.PlayerID == playerID {
			enrollment := e
			return &enrollment, nil
		}
	}
	return nil, repositories.ErrEnrollmentNotFound
}

func (r *fakeEnrollmentRepo) CountByMatch(_ context.Context, matchID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, e := range r.enrollments {
		if e.MatchID == matchID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEnrollmentRepo) ListByMatch(ctx context.Context, matchID int, statusFilter *models.EnrollmentStatus, includePlayers bool) ([]*models.Enrollment, error) {
	r.mu.Lock()
	out := make([]*models.Enrollment, 0)
	for _, e := range r.enrollments {
		if e.MatchID != matchID {
			continue
		}
		if statusFilter != nil && e.Status != *statusFilter {
			continue
		}
		enrollment := e
		out = append(out, &enrollment)
	}
	r.mu.Unlock()

	// Postgres-реализация сортирует по created_at, id; здесь id достаточно.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if includePlayers && r.players != nil {
		for _, e := range out {
			player, err := r.players.GetByID(ctx, e.PlayerID)
			if err != nil {
				return nil, err
			}
			e.Player = player
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enrollments[id]; !ok {
		return repositories.ErrEnrollmentNotFound
	}
	delete(r.enrollments, id)
	return nil
}

type fakeTeamRepo struct {
	mu      sync.Mutex
	nextID  int
	byMatch map[int][]models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{byMatch: make(map[int][]models.Team)}
}

func (r *fakeTeamRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, teams []*models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, team := range teams {
		r.nextID++
		team.ID = r.nextID
		team.CreatedAt = time.Now()
		r.byMatch[team.MatchID] = append(r.byMatch[team.MatchID], *team)
	}
	return nil
}

func (r *fakeTeamRepo) DeleteByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byMatch, matchID)
	return nil
}

func (r *fakeTeamRepo) ReplaceForMatch(ctx context.Context, matchID int, teams []*models.Team) error {
	if err := r.DeleteByMatch(ctx, nil, matchID); err != nil {
		return err
	}
	return r.CreateBatch(ctx, nil, teams)
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, teams := range r.byMatch {
		for _, team := range teams {
			if team.ID == id {
				t := team
				return &t, nil
			}
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) ListByMatch(_ context.Context, matchID int) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	teams := append([]models.Team(nil), r.byMatch[matchID]...)
	sort.Slice(teams, func(i, j int) bool { return teams[i].Position < teams[j].Position })
	return teams, nil
}

func (r *fakeTeamRepo) UpdateGoals(_ context.Context, id, goals int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for matchID, teams := range r.byMatch {
		for i, team := range teams {
			if team.ID == id {
				teams[i].Goals = goals
				r.byMatch[matchID] = teams
				return nil
			}
		}
	}
	return repositories.ErrTeamNotFound
}
