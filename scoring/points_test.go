package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacementPointsTable(t *testing.T) {
	rules := DefaultRules()

	expected := map[int]int{1: 10, 2: 6, 3: 5, 4: 4, 5: 3, 6: 2, 7: 1, 8: 1}
	for placement, want := range expected {
		got, err := rules.PlacementPoints(placement)
		require.NoError(t, err)
		assert.Equal(t, want, got, "placement %d", placement)
	}

	// 9-е и ниже до размера лобби — ноль очков, но не ошибка.
	for placement := 9; placement <= rules.MaxPlacement; placement++ {
		got, err := rules.PlacementPoints(placement)
		require.NoError(t, err)
		assert.Zero(t, got, "placement %d", placement)
	}
}

func TestPlacementPointsOutOfRange(t *testing.T) {
	rules := DefaultRules()

	for _, placement := range []int{0, -1, 17, 100} {
		_, err := rules.PlacementPoints(placement)
		assert.ErrorIs(t, err, ErrInvalidPlacement, "placement %d", placement)
	}

	// В solo-формате 17..32 валидны.
	solo, err := NewRules(SoloMaxPlacement)
	require.NoError(t, err)
	got, err := solo.PlacementPoints(17)
	require.NoError(t, err)
	assert.Zero(t, got)
	_, err = solo.PlacementPoints(33)
	assert.ErrorIs(t, err, ErrInvalidPlacement)
}

func TestMatchPoints(t *testing.T) {
	rules := DefaultRules()

	got, err := rules.MatchPoints(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 14, got)

	got, err = rules.MatchPoints(9, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	_, err = rules.MatchPoints(2, -1)
	assert.ErrorIs(t, err, ErrInvalidKills)

	_, err = rules.MatchPoints(0, 3)
	assert.ErrorIs(t, err, ErrInvalidPlacement)
}

func TestNewRulesRejectsUnsupportedLobby(t *testing.T) {
	_, err := NewRules(20)
	assert.Error(t, err)

	rules, err := NewRules(SoloMaxPlacement)
	require.NoError(t, err)
	assert.Equal(t, 32, rules.MaxPlacement)
}
