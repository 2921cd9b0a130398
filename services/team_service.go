package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/suzanemu/pubg-point-bot/models"
	"github.com/suzanemu/pubg-point-bot/repositories"
	"github.com/suzanemu/pubg-point-bot/utils"
)

type TeamService interface {
	// CreateTeam создаёт команду и её код доступа одной транзакцией.
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, tournamentID int, includeCodes bool) ([]models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
}

type CreateTeamInput struct {
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
}

type teamService struct {
	db             *sql.DB
	teamRepo       repositories.TeamRepository
	accessCodeRepo repositories.AccessCodeRepository
	tournamentRepo repositories.TournamentRepository
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	accessCodeRepo repositories.AccessCodeRepository,
	tournamentRepo repositories.TournamentRepository,
) TeamService {
	return &teamService{
		db:             db,
		teamRepo:       teamRepo,
		accessCodeRepo: accessCodeRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament %d: %w", input.TournamentID, err)
	}

	code, err := utils.GenerateAccessCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access code: %w", err)
	}

	team := &models.Team{
		TournamentID: input.TournamentID,
		Name:         name,
	}
	accessCode := &models.AccessCode{Code: code}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.teamRepo.Create(ctx, tx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	accessCode.TeamID = team.ID
	if err := s.accessCodeRepo.Create(ctx, tx, accessCode); err != nil {
		return nil, fmt.Errorf("failed to create access code: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit team creation: %w", err)
	}

	team.AccessCode = accessCode
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, tournamentID int, includeCodes bool) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	if includeCodes {
		for i := range teams {
			code, err := s.accessCodeRepo.GetByTeamID(ctx, teams[i].ID)
			if err != nil {
				if errors.Is(err, repositories.ErrAccessCodeNotFound) {
					continue
				}
				return nil, fmt.Errorf("failed to load access code for team %d: %w", teams[i].ID, err)
			}
			teams[i].AccessCode = code
		}
	}

	return teams, nil
}

// DeleteTeam удаляет команду; её код доступа и результаты матчей
// удаляются каскадно.
func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	err := s.teamRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return nil
}
