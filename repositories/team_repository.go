package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/futdraft/futdraft-backend/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	// CreateBatch inserts the teams with their members. Callers replacing a
	// draft pass the surrounding transaction as exec.
	CreateBatch(ctx context.Context, exec SQLExecutor, teams []*models.Team) error
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
	// ReplaceForMatch atomically swaps the match's teams: previous teams are
	// deleted and the new ones inserted in a single transaction.
	ReplaceForMatch(ctx context.Context, matchID int, teams []*models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByMatch(ctx context.Context, matchID int) ([]models.Team, error)
	UpdateGoals(ctx context.Context, id, goals int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) CreateBatch(ctx context.Context, exec SQLExecutor, teams []*models.Team) error {
	e := r.getExecutor(exec)

	teamQuery := `
		INSERT INTO teams (match_id, label, position, goals)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	memberQuery := `INSERT INTO team_players (team_id, player_id, slot) VALUES ($1, $2, $3)`

	for _, t := range teams {
		err := e.QueryRowContext(ctx, teamQuery, t.MatchID, t.Label, t.Position, t.Goals).
			Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create team %q: %w", t.Label, err)
		}
		for slot, p := range t.Players {
			if _, err := e.ExecContext(ctx, memberQuery, t.ID, p.ID, slot); err != nil {
				return fmt.Errorf("failed to add player %d to team %q: %w", p.ID, t.Label, err)
			}
		}
	}
	return nil
}

func (r *postgresTeamRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	e := r.getExecutor(exec)

	// team_players rows go away via ON DELETE CASCADE.
	if _, err := e.ExecContext(ctx, `DELETE FROM teams WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("failed to delete teams for match %d: %w", matchID, err)
	}
	return nil
}

func (r *postgresTeamRepository) ReplaceForMatch(ctx context.Context, matchID int, teams []*models.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			_ = tx.Rollback()
		}
	}()

	if txErr = r.DeleteByMatch(ctx, tx, matchID); txErr != nil {
		return txErr
	}
	if txErr = r.CreateBatch(ctx, tx, teams); txErr != nil {
		return txErr
	}
	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit transaction: %w", txErr)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, match_id, label, position, goals, created_at FROM teams WHERE id = $1`

	t := &models.Team{}
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(&t.ID, &t.MatchID, &t.Label, &t.Position, &t.Goals, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Team, error) {
	query := `
		SELECT
			t.id, t.match_id, t.label, t.position, t.goals, t.created_at,
			p.id, p.name, p.skill_rating, p.user_id, p.avatar_key, p.created_at
		FROM teams t
		LEFT JOIN team_players tp ON tp.team_id = t.id
		LEFT JOIN players p ON p.id = tp.player_id
		WHERE t.match_id = $1
		ORDER BY t.position ASC, tp.slot ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by match: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	byID := make(map[int]int) // team id -> index in teams

	for rows.Next() {
		var t models.Team
		var pID sql.NullInt64
		var pName sql.NullString
		var pSkill sql.NullInt64
		var pUserID sql.NullInt64
		var pAvatarKey sql.NullString
		var pCreatedAt sql.NullTime

		err := rows.Scan(
			&t.ID, &t.MatchID, &t.Label, &t.Position, &t.Goals, &t.CreatedAt,
			&pID, &pName, &pSkill, &pUserID, &pAvatarKey, &pCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}

		idx, ok := byID[t.ID]
		if !ok {
			t.Players = make([]models.Player, 0)
			teams = append(teams, t)
			idx = len(teams) - 1
			byID[t.ID] = idx
		}

		if pID.Valid {
			p := models.Player{
				ID:   int(pID.Int64),
				Name: pName.String,
			}
			if pSkill.Valid {
				skill := int(pSkill.Int64)
				p.SkillRating = &skill
			}
			if pUserID.Valid {
				userID := int(pUserID.Int64)
				p.UserID = &userID
			}
			if pAvatarKey.Valid {
				key := pAvatarKey.String
				p.AvatarKey = &key
			}
			if pCreatedAt.Valid {
				p.CreatedAt = pCreatedAt.Time
			}
			teams[idx].Players = append(teams[idx].Players, p)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateGoals(ctx context.Context, id, goals int) error {
	query := `UPDATE teams SET goals = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, goals, id)
	if err != nil {
		return fmt.Errorf("failed to update team goals: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
