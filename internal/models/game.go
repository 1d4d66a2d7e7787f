package models

import (
	"fmt"
	"strings"
	"time"
)

// Game represents a single NBA game. GameID is the natural ordering key:
// incremental updates ingest only games with an id greater than the maximum
// already stored.
type Game struct {
	GameID    int       `db:"game_id"`
	GameDate  time.Time `db:"game_date"`
	SeasonID  string    `db:"season_id"`
	CreatedAt time.Time `db:"created_at"`
}

// gameLogDateLayout matches the stats API's game-log date format.
const gameLogDateLayout = "Jan 2, 2006"

// ParseGameDate parses the API's game-log date string ("APR 12, 2016").
// The month abbreviation arrives upper-cased, so it is normalized first.
func ParseGameDate(s string) (time.Time, error) {
	fields := strings.SplitN(s, " ", 2)
	if len(fields) == 2 && len(fields[0]) > 0 {
		month := strings.ToUpper(fields[0][:1]) + strings.ToLower(fields[0][1:])
		s = month + " " + fields[1]
	}
	t, err := time.Parse(gameLogDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse game date %q: %w", s, err)
	}
	return t, nil
}
