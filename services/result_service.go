package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suzanemu/pubg-point-bot/models"
	"github.com/suzanemu/pubg-point-bot/repositories"
	"github.com/suzanemu/pubg-point-bot/scoring"
	"github.com/suzanemu/pubg-point-bot/storage"
	"github.com/suzanemu/pubg-point-bot/vision"
)

// MaxScreenshotBatch — максимум скриншотов за одну загрузку.
const MaxScreenshotBatch = 4

type ResultService interface {
	// SubmitManualResult принимает результат, введённый в форму вручную.
	SubmitManualResult(ctx context.Context, input ManualResultInput) (*models.MatchResult, error)
	// SubmitScreenshots обрабатывает пакет скриншотов: каждый снимок
	// независимо загружается, распознаётся и валидируется; сбой одного
	// не прерывает остальные.
	SubmitScreenshots(ctx context.Context, input ScreenshotBatchInput) (*BatchReport, error)
	// ListTeamResults отдаёт принятые результаты команды.
	ListTeamResults(ctx context.Context, teamID int) ([]models.MatchResult, error)
}

type ManualResultInput struct {
	TeamID    int  `json:"team_id"`
	PlayerID  *int `json:"-"`
	Placement int  `json:"placement"`
	Kills     int  `json:"kills"`
}

type ScreenshotFile struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

type ScreenshotBatchInput struct {
	TeamID   int
	PlayerID *int
	Files    []ScreenshotFile
}

type ItemFailure struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BatchReport — итог пакетной загрузки: сколько снимков принято,
// сколько отклонено и почему.
type BatchReport struct {
	Accepted int           `json:"accepted"`
	Failed   int           `json:"failed"`
	Failures []ItemFailure `json:"failures,omitempty"`
}

// StandingsBroadcaster пушит свежую таблицу зрителям после принятого результата.
type StandingsBroadcaster interface {
	BroadcastStandings(tournamentID int, standings interface{})
}

type resultService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchResultRepository
	uploader       storage.FileUploader
	analyzer       vision.Analyzer
	validator      scoring.Validator
	standings      StandingsService
	broadcaster    StandingsBroadcaster
	logger         *slog.Logger
}

func NewResultService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchResultRepository,
	uploader storage.FileUploader,
	analyzer vision.Analyzer,
	validator scoring.Validator,
	standings StandingsService,
	broadcaster StandingsBroadcaster,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		analyzer:       analyzer,
		validator:      validator,
		standings:      standings,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// teamContext — снапшот состояния команды на момент начала приёма.
type teamContext struct {
	team       *models.Team
	tournament *models.Tournament
	played     int
}

func (s *resultService) loadTeamContext(ctx context.Context, teamID int) (*teamContext, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w: id %d", scoring.ErrUnknownTeam, teamID)
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, team.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %d: %w", team.TournamentID, err)
	}

	played, err := s.matchRepo.CountByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches for team %d: %w", teamID, err)
	}

	return &teamContext{team: team, tournament: tournament, played: played}, nil
}

func (s *resultService) SubmitManualResult(ctx context.Context, input ManualResultInput) (*models.MatchResult, error) {
	tc, err := s.loadTeamContext(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}

	result, err := s.validator.Validate(
		scoring.RawResult{
			TeamID:    input.TeamID,
			PlayerID:  input.PlayerID,
			Placement: input.Placement,
			Kills:     input.Kills,
			Source:    models.SourceManual,
		},
		scoring.TeamState{
			Team:          tc.team,
			MatchesPlayed: tc.played,
			TotalMatches:  tc.tournament.TotalMatches,
		},
	)
	if err != nil {
		return nil, err
	}

	if err := s.matchRepo.Create(ctx, nil, result); err != nil {
		return nil, fmt.Errorf("failed to persist match result: %w", err)
	}

	s.pushStandings(ctx, tc.team.TournamentID)
	return result, nil
}

func (s *resultService) SubmitScreenshots(ctx context.Context, input ScreenshotBatchInput) (*BatchReport, error) {
	if len(input.Files) == 0 {
		return &BatchReport{}, nil
	}
	if len(input.Files) > MaxScreenshotBatch {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrBatchTooLarge, len(input.Files), MaxScreenshotBatch)
	}

	tc, err := s.loadTeamContext(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}

	// Проверка остатка капа до начала обработки: пакет, который заведомо
	// не влезает, отклоняется целиком.
	if tc.tournament.TotalMatches > 0 {
		remaining := tc.tournament.TotalMatches - tc.played
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %d of %d matches already submitted",
				scoring.ErrMatchLimitReached, tc.played, tc.tournament.TotalMatches)
		}
		if len(input.Files) > remaining {
			return nil, fmt.Errorf("%w: %d screenshots, %d matches remaining",
				ErrBatchExceedsRemaining, len(input.Files), remaining)
		}
	}

	report := &BatchReport{}

	// Снимки обрабатываются строго последовательно: принятие каждого
	// зависит от текущего счётчика сыгранных матчей.
	for i, file := range input.Files {
		accepted, err := s.processScreenshot(ctx, tc, input.PlayerID, file)
		if err != nil {
			// Лимиты шлюза прерывают пакет: повторять остальные снимки
			// сейчас бессмысленно, пользователь должен увидеть причину.
			if errors.Is(err, ErrAnalyzerUnavailable) {
				report.Failed += len(input.Files) - i
				for j := i; j < len(input.Files); j++ {
					report.Failures = append(report.Failures, ItemFailure{
						Index: j, Name: input.Files[j].Name, Reason: err.Error(),
					})
				}
				return report, err
			}
			report.Failed++
			report.Failures = append(report.Failures, ItemFailure{
				Index: i, Name: file.Name, Reason: err.Error(),
			})
			continue
		}
		if accepted {
			report.Accepted++
			tc.played++
		}
	}

	if report.Accepted > 0 {
		s.pushStandings(ctx, tc.team.TournamentID)
	}
	return report, nil
}

func (s *resultService) processScreenshot(ctx context.Context, tc *teamContext, playerID *int, file ScreenshotFile) (bool, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return false, ErrNotAnImage
	}

	ext := strings.TrimPrefix(path.Ext(file.Name), ".")
	if ext == "" {
		ext = "png"
	}
	key := fmt.Sprintf("screenshots/%d/%s.%s", tc.team.ID, uuid.NewString(), ext)

	uploaded, err := s.uploader.Upload(ctx, key, file.ContentType, file.Reader)
	if err != nil {
		return false, fmt.Errorf("failed to store screenshot: %w", err)
	}

	extraction, err := s.analyzer.Analyze(ctx, uploaded.Location)
	if err != nil {
		if errors.Is(err, vision.ErrRateLimited) || errors.Is(err, vision.ErrPaymentRequired) {
			return false, fmt.Errorf("%w: %w", ErrAnalyzerUnavailable, err)
		}
		return false, fmt.Errorf("screenshot analysis failed: %w", err)
	}
	if !extraction.Complete() {
		return false, errors.New("could not extract placement and kills from screenshot")
	}

	analyzedAt := time.Now()
	result, err := s.validator.Validate(
		scoring.RawResult{
			TeamID:        tc.team.ID,
			PlayerID:      playerID,
			Placement:     *extraction.Placement,
			Kills:         *extraction.Kills,
			Source:        models.SourceScreenshot,
			ScreenshotURL: &uploaded.Location,
			AnalyzedAt:    &analyzedAt,
		},
		scoring.TeamState{
			Team:          tc.team,
			MatchesPlayed: tc.played,
			TotalMatches:  tc.tournament.TotalMatches,
		},
	)
	if err != nil {
		return false, err
	}

	if err := s.matchRepo.Create(ctx, nil, result); err != nil {
		return false, fmt.Errorf("failed to persist match result: %w", err)
	}
	return true, nil
}

func (s *resultService) ListTeamResults(ctx context.Context, teamID int) ([]models.MatchResult, error) {
	results, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for team %d: %w", teamID, err)
	}
	return results, nil
}

// pushStandings пересчитывает таблицу и рассылает её зрителям.
// Сбой рассылки не влияет на уже принятые результаты.
func (s *resultService) pushStandings(ctx context.Context, tournamentID int) {
	if s.broadcaster == nil {
		return
	}
	standings, err := s.standings.GetStandings(ctx, tournamentID)
	if err != nil {
		s.logger.Warn("failed to recompute standings for broadcast",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}
	s.broadcaster.BroadcastStandings(tournamentID, standings)
}
