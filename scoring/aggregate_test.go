package scoring

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzanemu/pubg-point-bot/models"
)

func mustResult(t *testing.T, v Validator, teamID, placement, kills, played int) models.MatchResult {
	t.Helper()
	team := &models.Team{ID: teamID, Name: "team"}
	r, err := v.Validate(
		RawResult{TeamID: teamID, Placement: placement, Kills: kills, Source: models.SourceManual},
		TeamState{Team: team, MatchesPlayed: played},
	)
	require.NoError(t, err)
	return *r
}

func randomResults(t *testing.T, teams []models.Team, n int, rng *rand.Rand) []models.MatchResult {
	t.Helper()
	v := NewValidator(DefaultRules())
	results := make([]models.MatchResult, 0, n)
	for i := 0; i < n; i++ {
		team := teams[rng.Intn(len(teams))]
		results = append(results, mustResult(t, v, team.ID, 1+rng.Intn(16), rng.Intn(12), i))
	}
	return results
}

func TestAggregateSingleTeamTotals(t *testing.T) {
	// Команда Alpha: (place 1, 4 kills) и (place 9, 2 kills).
	v := NewValidator(DefaultRules())
	alpha := models.Team{ID: 1, Name: "Alpha"}

	results := []models.MatchResult{
		mustResult(t, v, 1, 1, 4, 0),
		mustResult(t, v, 1, 9, 2, 1),
	}

	standings := Aggregate([]models.Team{alpha}, results)
	s := standings[1]
	require.NotNil(t, s)

	assert.Equal(t, 2, s.MatchesPlayed)
	assert.Equal(t, 10, s.PlacementPoints)
	assert.Equal(t, 6, s.KillPoints)
	assert.Equal(t, 6, s.TotalKills)
	assert.Equal(t, 16, s.TotalPoints)
	assert.Equal(t, 1, s.FirstPlaceWins)
}

func TestAggregateZeroResultTeamVisible(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Bravo"}}

	standings := Aggregate(teams, nil)
	require.Len(t, standings, 2)

	bravo := standings[2]
	assert.Equal(t, "Bravo", bravo.TeamName)
	assert.Zero(t, bravo.MatchesPlayed)
	assert.Zero(t, bravo.TotalPoints)
}

func TestAggregatePointsDecomposition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	teams := []models.Team{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}
	results := randomResults(t, teams, 200, rng)

	for _, s := range Aggregate(teams, results) {
		assert.Equal(t, s.PlacementPoints+s.KillPoints, s.TotalPoints, "team %d", s.TeamID)
		assert.Equal(t, s.TotalKills, s.KillPoints, "1 point per kill")
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	teams := []models.Team{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}
	results := randomResults(t, teams, 50, rng)

	want := Aggregate(teams, results)

	for i := 0; i < 10; i++ {
		shuffled := make([]models.MatchResult, len(results))
		copy(shuffled, results)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(teams, shuffled)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("standings differ after permutation %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestAggregateIncrementalMatchesFull(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	teams := []models.Team{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	results := randomResults(t, teams, 80, rng)

	full := Aggregate(teams, results)

	incremental := make(map[int]*models.TeamStanding, len(teams))
	for _, team := range teams {
		incremental[team.ID] = NewStanding(team)
	}
	for _, r := range results {
		Apply(incremental[r.TeamID], r)
	}

	if diff := cmp.Diff(full, incremental); diff != "" {
		t.Fatalf("incremental and full aggregation diverge (-full +incremental):\n%s", diff)
	}
}
