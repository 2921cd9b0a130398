package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
	AccessCode *AccessCode `json:"access_code,omitempty" db:"-"`
}
