package models

// TeamStanding — агрегированная статистика команды в турнирной таблице.
// Никогда не персистится, пересчитывается по запросу из истории результатов.
// Инвариант: TotalPoints == PlacementPoints + KillPoints.
type TeamStanding struct {
	TeamID          int    `json:"team_id"`
	TeamName        string `json:"team_name"`
	MatchesPlayed   int    `json:"matches_played"`
	PlacementPoints int    `json:"placement_points"`
	KillPoints      int    `json:"kill_points"`
	TotalKills      int    `json:"total_kills"`
	TotalPoints     int    `json:"total_points"`
	FirstPlaceWins  int    `json:"first_place_wins"`
	Rank            int    `json:"rank"`
}
