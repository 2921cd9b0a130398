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
	ErrMatchResultNotFound    = errors.New("match result not found")
	ErrMatchResultTeamInvalid = errors.New("match result team conflict or invalid")
)

type MatchResultRepository interface {
	Create(ctx context.Context, exec SQLExecutor, result *models.MatchResult) error
	ListByTeam(ctx context.Context, teamID int) ([]models.MatchResult, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.MatchResult, error)
	CountByTeam(ctx context.Context, teamID int) (int, error)
}

type postgresMatchResultRepository struct {
	db *sql.DB
}

func NewPostgresMatchResultRepository(db *sql.DB) MatchResultRepository {
	return &postgresMatchResultRepository{db: db}
}

func (r *postgresMatchResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchResultRepository) Create(ctx context.Context, exec SQLExecutor, result *models.MatchResult) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_results
		    (team_id, player_id, match_number, placement, kills, placement_points, total_points, source, screenshot_url, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		result.TeamID, result.PlayerID, result.MatchNumber,
		result.Placement, result.Kills, result.PlacementPoints, result.TotalPoints,
		result.Source, result.ScreenshotURL, result.AnalyzedAt,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchResultTeamInvalid
		}
		return fmt.Errorf("failed to create match result: %w", err)
	}
	return nil
}

func (r *postgresMatchResultRepository) scanResult(rowScanner interface{ Scan(...interface{}) error }) (*models.MatchResult, error) {
	var m models.MatchResult
	err := rowScanner.Scan(
		&m.ID, &m.TeamID, &m.PlayerID, &m.MatchNumber,
		&m.Placement, &m.Kills, &m.PlacementPoints, &m.TotalPoints,
		&m.Source, &m.ScreenshotURL, &m.AnalyzedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchResultNotFound
		}
		return nil, err
	}
	return &m, nil
}

const matchResultColumns = `
	id, team_id, player_id, match_number, placement, kills,
	placement_points, total_points, source, screenshot_url, analyzed_at, created_at`

func (r *postgresMatchResultRepository) ListByTeam(ctx context.Context, teamID int) ([]models.MatchResult, error) {
	query := `
		SELECT ` + matchResultColumns + `
		FROM match_results
		WHERE team_id = $1
		ORDER BY match_number ASC`

	return r.list(ctx, query, teamID)
}

func (r *postgresMatchResultRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.MatchResult, error) {
	query := `
		SELECT mr.id, mr.team_id, mr.player_id, mr.match_number, mr.placement, mr.kills,
		       mr.placement_points, mr.total_points, mr.source, mr.screenshot_url, mr.analyzed_at, mr.created_at
		FROM match_results mr
		JOIN teams t ON mr.team_id = t.id
		WHERE t.tournament_id = $1
		ORDER BY mr.created_at ASC`

	return r.list(ctx, query, tournamentID)
}

func (r *postgresMatchResultRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.MatchResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	results := make([]models.MatchResult, 0)
	for rows.Next() {
		m, errScan := r.scanResult(rows)
		if errScan != nil {
			return nil, errScan
		}
		results = append(results, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *postgresMatchResultRepository) CountByTeam(ctx context.Context, teamID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_results WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count match results for team %d: %w", teamID, err)
	}
	return count, nil
}
