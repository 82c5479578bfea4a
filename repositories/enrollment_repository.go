package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/futdraft/futdraft-backend/models"
	"github.com/lib/pq"
)

var (
	ErrEnrollmentNotFound      = errors.New("enrollment not found")
	ErrEnrollmentConflict      = errors.New("enrollment conflict: player already enrolled for this match")
	ErrEnrollmentMatchInvalid  = errors.New("enrollment match conflict or invalid")
	ErrEnrollmentPlayerInvalid = errors.New("enrollment player conflict or invalid")
)

type EnrollmentRepository interface {
	Create(ctx context.Context, e *models.Enrollment) error
	UpdateStatus(ctx context.Context, id int, status models.EnrollmentStatus) error
	FindByMatchAndPlayer(ctx context.Context, matchID, playerID int) (*models.Enrollment, error)
	// CountByMatch counts every enrollment of the match regardless of status;
	// both enrolled and confirmed occupy a slot.
	CountByMatch(ctx context.Context, matchID int) (int, error)
	ListByMatch(ctx context.Context, matchID int, statusFilter *models.EnrollmentStatus, includePlayers bool) ([]*models.Enrollment, error)
	Delete(ctx context.Context, id int) error
}

type postgresEnrollmentRepository struct {
	db *sql.DB
}

func NewPostgresEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &postgresEnrollmentRepository{db: db}
}

func (r *postgresEnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (match_id, player_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.MatchID,
		e.PlayerID,
		e.Status,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "enrollments_match_id_player_id_key" {
					return ErrEnrollmentConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "enrollments_match_id_fkey":
					return ErrEnrollmentMatchInvalid
				case "enrollments_player_id_fkey":
					return ErrEnrollmentPlayerInvalid
				}
			}
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

func (r *postgresEnrollmentRepository) UpdateStatus(ctx context.Context, id int, status models.EnrollmentStatus) error {
	query := `UPDATE enrollments SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update enrollment status: %w", err)
	}
	return checkAffectedRows(result, ErrEnrollmentNotFound)
}

func (r *postgresEnrollmentRepository) FindByMatchAndPlayer(ctx context.Context, matchID, playerID int) (*models.Enrollment, error) {
	query := `SELECT id, match_id, player_id, status, created_at FROM enrollments WHERE match_id = $1 AND player_id = $2`

	e := &models.Enrollment{}
	row := r.db.QueryRowContext(ctx, query, matchID, playerID)
	err := row.Scan(&e.ID, &e.MatchID, &e.PlayerID, &e.Status, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment: %w", err)
	}
	return e, nil
}

func (r *postgresEnrollmentRepository) CountByMatch(ctx context.Context, matchID int) (int, error) {
	query := `SELECT COUNT(*) FROM enrollments WHERE match_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, matchID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

func (r *postgresEnrollmentRepository) ListByMatch(ctx context.Context, matchID int, statusFilter *models.EnrollmentStatus, includePlayers bool) ([]*models.Enrollment, error) {
	var queryBuilder strings.Builder
	args := []interface{}{matchID}
	argCounter := 2

	queryBuilder.WriteString(`
		SELECT e.id, e.match_id, e.player_id, e.status, e.created_at`)
	if includePlayers {
		queryBuilder.WriteString(`,
			p.id, p.name, p.skill_rating, p.user_id, p.avatar_key, p.created_at`)
	}
	queryBuilder.WriteString(`
		FROM enrollments e`)
	if includePlayers {
		queryBuilder.WriteString(`
		JOIN players p ON e.player_id = p.id`)
	}
	queryBuilder.WriteString(` WHERE e.match_id = $1`)

	if statusFilter != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND e.status = $%d", argCounter))
		args = append(args, *statusFilter)
		argCounter++
	}
	queryBuilder.WriteString(" ORDER BY e.created_at ASC, e.id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments by match: %w", err)
	}
	defer rows.Close()

	enrollments := make([]*models.Enrollment, 0)
	for rows.Next() {
		var e models.Enrollment
		var p models.Player
		scanDest := []interface{}{&e.ID, &e.MatchID, &e.PlayerID, &e.Status, &e.CreatedAt}
		if includePlayers {
			scanDest = append(scanDest, &p.ID, &p.Name, &p.SkillRating, &p.UserID, &p.AvatarKey, &p.CreatedAt)
		}

		if err := rows.Scan(scanDest...); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		if includePlayers {
			e.Player = &p
		}
		enrollments = append(enrollments, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, nil
}

func (r *postgresEnrollmentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM enrollments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	return checkAffectedRows(result, ErrEnrollmentNotFound)
}
