package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/futdraft/futdraft-backend/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchOwnerInvalid = errors.New("match owner conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*models.Match, error)
	ListByOwnerAndDateRange(ctx context.Context, ownerID int, from, to time.Time) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, owner_id, date, location, slots, team_count, fee, notes, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (owner_id, date, location, slots, team_count, fee, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.OwnerID,
		m.Date,
		m.Location,
		m.Slots,
		m.TeamCount,
		m.Fee,
		m.Notes,
	).Scan(&m.ID, &m.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "matches_owner_id_fkey" {
				return ErrMatchOwnerInvalid
			}
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface {
	Scan(dest ...interface{}) error
}, m *models.Match) error {
	return rowScanner.Scan(
		&m.ID,
		&m.OwnerID,
		&m.Date,
		&m.Location,
		&m.Slots,
		&m.TeamCount,
		&m.Fee,
		&m.Notes,
		&m.CreatedAt,
	)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id = $1`, matchColumns)

	m := &models.Match{}
	row := r.db.QueryRowContext(ctx, query, id)
	if err := r.scanMatch(row, m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	return m, nil
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := r.scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

// List returns all matches in stable insertion order.
func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches ORDER BY created_at ASC, id ASC`, matchColumns)
	return r.list(ctx, query)
}

func (r *postgresMatchRepository) ListByOwner(ctx context.Context, ownerID int) ([]*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`, matchColumns)
	return r.list(ctx, query, ownerID)
}

func (r *postgresMatchRepository) ListByOwnerAndDateRange(ctx context.Context, ownerID int, from, to time.Time) ([]*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE owner_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date ASC, id ASC`, matchColumns)
	return r.list(ctx, query, ownerID, from, to)
}

// Update persists the mutable match fields. Slots and team_count are fixed at
// creation and deliberately excluded.
func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	query := `UPDATE matches SET date = $1, location = $2, fee = $3, notes = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, m.Date, m.Location, m.Fee, m.Notes, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
