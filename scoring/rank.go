package scoring

import (
	"sort"

	"github.com/suzanemu/pubg-point-bot/models"
)

// Rank sorts standings by total points (desc), then total kills (desc), and
// assigns dense positional ranks 1..N. Teams tied on both keys keep their
// relative input order and still receive distinct sequential ranks. The input
// slice is not modified.
func Rank(standings []*models.TeamStanding) []*models.TeamStanding {
	ranked := make([]*models.TeamStanding, len(standings))
	copy(ranked, standings)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalPoints != ranked[j].TotalPoints {
			return ranked[i].TotalPoints > ranked[j].TotalPoints
		}
		return ranked[i].TotalKills > ranked[j].TotalKills
	})

	for i, s := range ranked {
		s.Rank = i + 1
	}

	return ranked
}
