package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzanemu/pubg-point-bot/models"
	"github.com/suzanemu/pubg-point-bot/scoring"
)

func TestGetStandingsRankedSnapshot(t *testing.T) {
	teamRepo := newFakeTeamRepo(
		models.Team{ID: 1, TournamentID: 1, Name: "Alpha"},
		models.Team{ID: 2, TournamentID: 1, Name: "Bravo"},
		models.Team{ID: 3, TournamentID: 1, Name: "Charlie"},
	)
	matchRepo := &fakeMatchRepo{}
	v := scoring.NewValidator(scoring.DefaultRules())
	ctx := context.Background()

	seed := []struct {
		teamID, placement, kills, played int
	}{
		{1, 1, 4, 0}, // Alpha: 10+4
		{1, 9, 2, 1}, // Alpha: +2 → 16 total, 6 kills
		{2, 2, 8, 0}, // Bravo: 6+8 = 14
		{3, 4, 10, 0}, // Charlie: 4+10 = 14, но больше киллов
	}
	for _, s := range seed {
		team, err := teamRepo.GetByID(ctx, s.teamID)
		require.NoError(t, err)
		result, err := v.Validate(
			scoring.RawResult{TeamID: s.teamID, Placement: s.placement, Kills: s.kills, Source: models.SourceManual},
			scoring.TeamState{Team: team, MatchesPlayed: s.played},
		)
		require.NoError(t, err)
		require.NoError(t, matchRepo.Create(ctx, nil, result))
	}

	service := NewStandingsService(teamRepo, matchRepo)
	standings, err := service.GetStandings(ctx, 1)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, "Alpha", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 16, standings[0].TotalPoints)

	// 14 очков у обоих, тай-брейк по киллам.
	assert.Equal(t, "Charlie", standings[1].TeamName)
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, "Bravo", standings[2].TeamName)
	assert.Equal(t, 3, standings[2].Rank)

	for _, s := range standings {
		assert.Equal(t, s.PlacementPoints+s.KillPoints, s.TotalPoints)
	}
}

func TestGetStandingsIncludesTeamsWithoutResults(t *testing.T) {
	teamRepo := newFakeTeamRepo(
		models.Team{ID: 1, TournamentID: 1, Name: "Alpha"},
		models.Team{ID: 2, TournamentID: 1, Name: "Bravo"},
	)
	service := NewStandingsService(teamRepo, &fakeMatchRepo{})

	standings, err := service.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	// Команды без матчей остаются в таблице с нулями и порядком создания.
	assert.Equal(t, "Alpha", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Zero(t, standings[0].MatchesPlayed)
	assert.Equal(t, 2, standings[1].Rank)
}

func TestGetStandingsIsRepeatable(t *testing.T) {
	teamRepo := newFakeTeamRepo(models.Team{ID: 1, TournamentID: 1, Name: "Alpha"})
	matchRepo := &fakeMatchRepo{}
	service := NewStandingsService(teamRepo, matchRepo)
	ctx := context.Background()

	first, err := service.GetStandings(ctx, 1)
	require.NoError(t, err)
	second, err := service.GetStandings(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first[0].TotalPoints, second[0].TotalPoints)
	assert.Equal(t, first[0].Rank, second[0].Rank)
}
