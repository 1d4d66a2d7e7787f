package models

import "time"

// TeamGameRecord is one team's line for one game: raw box-score counts plus
// the derived possession/efficiency numbers and the advanced ratings taken
// from the advanced-stats table. Exactly two records exist per game, each
// naming the other team as Opponent. Records are insert-only; every numeric
// field is zero rather than NULL when the source value is absent.
type TeamGameRecord struct {
	TeamID        int     `db:"team_id"`
	GameID        int     `db:"game_id"`
	FGM           int     `db:"fgm"`
	FGA           int     `db:"fga"`
	FGPct         float64 `db:"fg_pct"`
	FG3M          int     `db:"fg3m"`
	FG3A          int     `db:"fg3a"`
	FG3Pct        float64 `db:"fg3_pct"`
	FTM           int     `db:"ftm"`
	FTA           int     `db:"fta"`
	FTPct         float64 `db:"ft_pct"`
	OReb          int     `db:"oreb"`
	DReb          int     `db:"dreb"`
	Reb           int     `db:"reb"`
	Ast           int     `db:"ast"`
	Stl           int     `db:"stl"`
	Blk           int     `db:"blk"`
	Tov           int     `db:"tov"`
	Pts           int     `db:"pts"`
	Possessions   float64 `db:"possessions"`
	OffEfficiency float64 `db:"off_efficiency"`
	OffRating     float64 `db:"off_rating"`
	DefRating     float64 `db:"def_rating"`
	ORebPct       float64 `db:"oreb_pct"`
	EFGPct        float64 `db:"efg_pct"`
	TSPct         float64 `db:"ts_pct"`
	Pace          float64 `db:"pace"`
	Opponent      int     `db:"opponent"`

	CreatedAt time.Time `db:"created_at"`
}

// PlayerGameRecord is one player's line for one game, including the two
// fantasy-point totals computed from the raw counts at ingestion time.
type PlayerGameRecord struct {
	PlayerID int     `db:"player_id"`
	GameID   int     `db:"game_id"`
	TeamID   int     `db:"team_id"`
	Minutes  int     `db:"minutes"`
	FGM      int     `db:"fgm"`
	FGA      int     `db:"fga"`
	FGPct    float64 `db:"fg_pct"`
	FG3M     int     `db:"fg3m"`
	FG3A     int     `db:"fg3a"`
	FG3Pct   float64 `db:"fg3_pct"`
	FTM      int     `db:"ftm"`
	FTA      int     `db:"fta"`
	FTPct    float64 `db:"ft_pct"`
	OReb     int     `db:"oreb"`
	DReb     int     `db:"dreb"`
	Reb      int     `db:"reb"`
	Ast      int     `db:"ast"`
	Stl      int     `db:"stl"`
	Blk      int     `db:"blk"`
	Tov      int     `db:"tov"`
	Pts      int     `db:"pts"`
	EFGPct   float64 `db:"efg_pct"`
	TSPct    float64 `db:"ts_pct"`
	UsgPct   float64 `db:"usg_pct"`
	Pace     float64 `db:"pace"`

	FanDuelPoints    float64 `db:"fd_fp"`
	DraftKingsPoints float64 `db:"dk_fp"`

	CreatedAt time.Time `db:"created_at"`
}
