package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/suzanemu/pubg-point-bot/models"
)

var (
	ErrUnknownTeam       = errors.New("team not found or deleted")
	ErrMatchLimitReached = errors.New("team has reached the tournament match limit")
)

// RawResult — нормализованный вход валидатора. Обе точки входа (ручная форма
// и AI-разбор скриншота) приводятся к этой форме до любых проверок.
type RawResult struct {
	TeamID        int
	PlayerID      *int
	Placement     int
	Kills         int
	Source        models.ResultSource
	ScreenshotURL *string
	AnalyzedAt    *time.Time
}

// TeamState is the snapshot of persisted state the validator checks against.
// The validator itself never mutates counters; TotalMatches == 0 means the
// tournament does not cap submissions.
type TeamState struct {
	Team          *models.Team
	MatchesPlayed int
	TotalMatches  int
}

type Validator struct {
	rules Rules
}

func NewValidator(rules Rules) Validator {
	return Validator{rules: rules}
}

func (v Validator) Rules() Rules {
	return v.rules
}

// Validate checks a raw result against the domain constraints and, on
// success, returns a MatchResult with derived points filled in, ready for
// persistence and aggregation. A result is rejected in full, never clamped.
func (v Validator) Validate(raw RawResult, state TeamState) (*models.MatchResult, error) {
	if state.Team == nil || state.Team.ID != raw.TeamID {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownTeam, raw.TeamID)
	}

	if state.TotalMatches > 0 && state.MatchesPlayed >= state.TotalMatches {
		return nil, fmt.Errorf("%w: %d of %d matches already submitted", ErrMatchLimitReached, state.MatchesPlayed, state.TotalMatches)
	}

	if raw.Kills < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKills, raw.Kills)
	}

	placementPoints, err := v.rules.PlacementPoints(raw.Placement)
	if err != nil {
		return nil, err
	}

	return &models.MatchResult{
		TeamID:          raw.TeamID,
		PlayerID:        raw.PlayerID,
		MatchNumber:     state.MatchesPlayed + 1,
		Placement:       raw.Placement,
		Kills:           raw.Kills,
		PlacementPoints: placementPoints,
		TotalPoints:     placementPoints + raw.Kills,
		Source:          raw.Source,
		ScreenshotURL:   raw.ScreenshotURL,
		AnalyzedAt:      raw.AnalyzedAt,
	}, nil
}
