package models

import "time"

// AccessCode — код, по которому игроки присоединяются к своей команде.
// Генерируется админом вместе с командой, удаляется каскадно вместе с ней.
type AccessCode struct {
	ID        int       `json:"id" db:"id"`
	TeamID    int       `json:"team_id" db:"team_id"`
	Code      string    `json:"code" db:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
