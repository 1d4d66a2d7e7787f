package models

import "time"

// Team represents an NBA franchise. Teams are written once during the
// build-teams phase and referenced by every game record afterwards.
type Team struct {
	TeamID       int       `db:"team_id"`
	Abbreviation string    `db:"team_abbv"`
	CreatedAt    time.Time `db:"created_at"`
}
