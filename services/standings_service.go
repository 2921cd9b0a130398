package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/suzanemu/pubg-point-bot/models"
	"github.com/suzanemu/pubg-point-bot/repositories"
	"github.com/suzanemu/pubg-point-bot/scoring"
)

// StandingsService пересчитывает турнирную таблицу по запросу из
// неизменяемого снапшота истории результатов. Никакого хранимого
// агрегированного состояния: только fold + сортировка.
type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID int) ([]*models.TeamStanding, error)
}

type standingsService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchResultRepository
}

func NewStandingsService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchResultRepository,
) StandingsService {
	return &standingsService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID int) ([]*models.TeamStanding, error) {
	var (
		teams   []models.Team
		results []models.MatchResult
	)

	// Команды и результаты читаются параллельно; агрегатор получает
	// единый снапшот и считает по нему атомарно.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.matchRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load standings snapshot for tournament %d: %w", tournamentID, err)
	}

	standings := scoring.Aggregate(teams, results)

	// Стабильный входной порядок для ранжирования — порядок создания команд.
	ordered := make([]*models.TeamStanding, 0, len(teams))
	for _, team := range teams {
		ordered = append(ordered, standings[team.ID])
	}

	return scoring.Rank(ordered), nil
}
