package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzanemu/pubg-point-bot/models"
)

func TestRankTieBreakByKills(t *testing.T) {
	a := &models.TeamStanding{TeamID: 1, TeamName: "A", TotalPoints: 20, TotalKills: 5}
	b := &models.TeamStanding{TeamID: 2, TeamName: "B", TotalPoints: 20, TotalKills: 8}
	c := &models.TeamStanding{TeamID: 3, TeamName: "C", TotalPoints: 15, TotalKills: 20}

	ranked := Rank([]*models.TeamStanding{a, b, c})
	require.Len(t, ranked, 3)

	assert.Equal(t, "B", ranked[0].TeamName)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "A", ranked[1].TeamName)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "C", ranked[2].TeamName)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRankIdempotent(t *testing.T) {
	standings := []*models.TeamStanding{
		{TeamID: 1, TotalPoints: 10, TotalKills: 2},
		{TeamID: 2, TotalPoints: 30, TotalKills: 9},
		{TeamID: 3, TotalPoints: 10, TotalKills: 6},
	}

	first := Rank(standings)
	for i := 0; i < 5; i++ {
		again := Rank(standings)
		for j := range first {
			assert.Equal(t, first[j].TeamID, again[j].TeamID)
			assert.Equal(t, first[j].Rank, again[j].Rank)
		}
	}
}

func TestRankFullTiesAreStableWithDistinctRanks(t *testing.T) {
	// Полное равенство по обоим ключам: порядок входа сохраняется,
	// ранги остаются последовательными (1,2,3 — не 1,1,3).
	x := &models.TeamStanding{TeamID: 1, TeamName: "X", TotalPoints: 12, TotalKills: 4}
	y := &models.TeamStanding{TeamID: 2, TeamName: "Y", TotalPoints: 12, TotalKills: 4}
	z := &models.TeamStanding{TeamID: 3, TeamName: "Z", TotalPoints: 12, TotalKills: 4}

	ranked := Rank([]*models.TeamStanding{x, y, z})

	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
	assert.Equal(t, "X", ranked[0].TeamName)
	assert.Equal(t, "Y", ranked[1].TeamName)
	assert.Equal(t, "Z", ranked[2].TeamName)
}

func TestRankDoesNotReorderInput(t *testing.T) {
	a := &models.TeamStanding{TeamID: 1, TotalPoints: 1}
	b := &models.TeamStanding{TeamID: 2, TotalPoints: 2}
	input := []*models.TeamStanding{a, b}

	Rank(input)

	assert.Same(t, a, input[0])
	assert.Same(t, b, input[1])
}
