package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrInvalidKills     = errors.New("kills cannot be negative")
)

// Таблица очков за место по правилам PUBG Mobile.
// Места с 9-го и ниже очков за размещение не приносят.
var placementTable = map[int]int{
	1: 10,
	2: 6,
	3: 5,
	4: 4,
	5: 3,
	6: 2,
	7: 1,
	8: 1,
}

const (
	// DefaultMaxPlacement — лобби на 16 команд (squad-формат).
	DefaultMaxPlacement = 16
	// SoloMaxPlacement — лобби на 32 участника (solo/duo-формат).
	SoloMaxPlacement = 32
)

// Rules holds the format-dependent scoring parameters. The placement table
// itself is fixed; only the size of the lobby varies between formats.
type Rules struct {
	MaxPlacement int
}

func NewRules(maxPlacement int) (Rules, error) {
	if maxPlacement != DefaultMaxPlacement && maxPlacement != SoloMaxPlacement {
		return Rules{}, fmt.Errorf("%w: unsupported lobby size %d", ErrInvalidPlacement, maxPlacement)
	}
	return Rules{MaxPlacement: maxPlacement}, nil
}

func DefaultRules() Rules {
	return Rules{MaxPlacement: DefaultMaxPlacement}
}

// PlacementPoints maps a placement to its points. Placements from 9 up to the
// lobby size are the "unranked" bucket and score zero; anything outside
// [1, MaxPlacement] is rejected, never coerced.
func (r Rules) PlacementPoints(placement int) (int, error) {
	if placement < 1 || placement > r.MaxPlacement {
		return 0, fmt.Errorf("%w: placement must be between 1 and %d, got %d", ErrInvalidPlacement, r.MaxPlacement, placement)
	}
	return placementTable[placement], nil
}

// MatchPoints combines placement points with the flat one-point-per-kill rule.
func (r Rules) MatchPoints(placement, kills int) (int, error) {
	pp, err := r.PlacementPoints(placement)
	if err != nil {
		return 0, err
	}
	if kills < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidKills, kills)
	}
	return pp + kills, nil
}
