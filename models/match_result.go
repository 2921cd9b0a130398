package models

import "time"

type ResultSource string

const (
	SourceManual     ResultSource = "manual"
	SourceScreenshot ResultSource = "screenshot"
)

// MatchResult — принятый результат одного матча команды.
// Запись неизменяема: результат, не прошедший валидацию, никогда не сохраняется.
type MatchResult struct {
	ID              int          `json:"id" db:"id"`
	TeamID          int          `json:"team_id" db:"team_id"`
	PlayerID        *int         `json:"player_id,omitempty" db:"player_id"`
	MatchNumber     int          `json:"match_number" db:"match_number"`
	Placement       int          `json:"placement" db:"placement"`
	Kills           int          `json:"kills" db:"kills"`
	PlacementPoints int          `json:"placement_points" db:"placement_points"`
	TotalPoints     int          `json:"total_points" db:"total_points"`
	Source          ResultSource `json:"source" db:"source"`
	ScreenshotURL   *string      `json:"screenshot_url,omitempty" db:"screenshot_url"`
	AnalyzedAt      *time.Time   `json:"analyzed_at,omitempty" db:"analyzed_at"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
}
