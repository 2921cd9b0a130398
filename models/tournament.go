package models

import "time"

// Tournament представляет турнир (ивент лиги).
// TotalMatches ограничивает, сколько результатов матчей может загрузить одна команда.
type Tournament struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	TotalMatches int       `json:"total_matches" db:"total_matches"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Teams []Team `json:"teams,omitempty" db:"-"`
}
