package models

import (
	"fmt"
	"strings"
	"time"
)

// Player represents an NBA player as of ingestion time.
type Player struct {
	PlayerID  int       `db:"player_id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Position  string    `db:"position"`
	Age       int       `db:"age"`
	CreatedAt time.Time `db:"created_at"`
}

// DataIntegrityError reports a source value that cannot be normalized into
// the storage vocabulary. It is fatal for the affected entity only.
type DataIntegrityError struct {
	Entity string
	ID     int
	Detail string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: %s %d: %s", e.Entity, e.ID, e.Detail)
}

// positionCodes collapses the league's verbose position names into the
// two-letter vocabulary stored on the player row.
var positionCodes = map[string]string{
	"Point Guard":    "PG",
	"Shooting Guard": "SG",
	"Small Forward":  "SF",
	"Power Forward":  "PF",
	"Center":         "C",
	"None":           "N",
}

// CollapsePosition reduces a granular position string (possibly multi-word,
// e.g. "Point Guard" or "Shooting Guard Shooting Guard") into its code.
// An empty string maps to "N". Anything outside the vocabulary returns a
// DataIntegrityError for the given player.
func CollapsePosition(playerID int, granular string) (string, error) {
	position := granular
	if position == "" {
		position = "None"
	} else if strings.Contains(position, " ") {
		words := strings.Fields(position)
		switch {
		case len(words) > 3:
			position = words[0] + " " + words[1]
		case len(words) >= 2:
			if words[0] == words[1] {
				position = words[0]
			} else {
				position = words[0] + " " + words[1]
			}
		}
	}

	code, ok := positionCodes[position]
	if !ok {
		return "", &DataIntegrityError{
			Entity: "player",
			ID:     playerID,
			Detail: fmt.Sprintf("unrecognized position %q", granular),
		}
	}
	return code, nil
}
