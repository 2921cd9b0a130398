package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/suzanemu/pubg-point-bot/models"
)

var (
	ErrAccessCodeNotFound = errors.New("access code not found")
	ErrAccessCodeConflict = errors.New("access code conflict")
)

type AccessCodeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, code *models.AccessCode) error
	GetByCode(ctx context.Context, code string) (*models.AccessCode, error)
	GetByTeamID(ctx context.Context, teamID int) (*models.AccessCode, error)
}

type postgresAccessCodeRepository struct {
	db *sql.DB
}

func NewPostgresAccessCodeRepository(db *sql.DB) AccessCodeRepository {
	return &postgresAccessCodeRepository{db: db}
}

func (r *postgresAccessCodeRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresAccessCodeRepository) Create(ctx context.Context, exec SQLExecutor, code *models.AccessCode) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO access_codes (team_id, code)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, code.TeamID, code.Code).
		Scan(&code.ID, &code.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrAccessCodeConflict
		}
		return fmt.Errorf("failed to create access code: %w", err)
	}
	return nil
}

func (r *postgresAccessCodeRepository) GetByCode(ctx context.Context, code string) (*models.AccessCode, error) {
	query := `
		SELECT id, team_id, code, created_at
		FROM access_codes
		WHERE code = $1`

	var ac models.AccessCode
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&ac.ID, &ac.TeamID, &ac.Code, &ac.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccessCodeNotFound
		}
		return nil, fmt.Errorf("failed to get access code: %w", err)
	}
	return &ac, nil
}

func (r *postgresAccessCodeRepository) GetByTeamID(ctx context.Context, teamID int) (*models.AccessCode, error) {
	query := `
		SELECT id, team_id, code, created_at
		FROM access_codes
		WHERE team_id = $1`

	var ac models.AccessCode
	err := r.db.QueryRowContext(ctx, query, teamID).Scan(
		&ac.ID, &ac.TeamID, &ac.Code, &ac.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccessCodeNotFound
		}
		return nil, fmt.Errorf("failed to get access code for team %d: %w", teamID, err)
	}
	return &ac, nil
}
