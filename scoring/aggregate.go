package scoring

import "github.com/suzanemu/pubg-point-bot/models"

// NewStanding возвращает нулевую статистику для команды. Команда без единого
// результата всё равно присутствует в таблице.
func NewStanding(team models.Team) *models.TeamStanding {
	return &models.TeamStanding{
		TeamID:   team.ID,
		TeamName: team.Name,
	}
}

// Apply folds a single accepted result into a standing. The fold is
// commutative and associative over a result set, so incremental application
// and full recomputation converge to the same standing.
func Apply(s *models.TeamStanding, r models.MatchResult) {
	s.MatchesPlayed++
	s.PlacementPoints += r.PlacementPoints
	s.KillPoints += r.Kills
	s.TotalKills += r.Kills
	if r.Placement == 1 {
		s.FirstPlaceWins++
	}
	// Total is always rederived from the two sums, never accumulated on its
	// own, so it cannot drift from partial updates.
	s.TotalPoints = s.PlacementPoints + s.KillPoints
}

// Aggregate rebuilds standings for a snapshot of teams and results. Results
// referencing a team outside the snapshot are skipped: by construction only
// validated results reach this point, so a dangling team id means the team was
// deleted after the snapshot of its results was taken.
func Aggregate(teams []models.Team, results []models.MatchResult) map[int]*models.TeamStanding {
	standings := make(map[int]*models.TeamStanding, len(teams))
	for _, team := range teams {
		standings[team.ID] = NewStanding(team)
	}

	for _, r := range results {
		s, ok := standings[r.TeamID]
		if !ok {
			continue
		}
		Apply(s, r)
	}

	return standings
}
