// Package boxscore transforms one game's raw stats API response into
// normalized team and player statistical records, including the derived
// advanced metrics and fantasy-point totals.
package boxscore

import (
	"fmt"
	"strconv"
	"strings"

	"nbadb/ingestion/internal/client"
)

// Tables consumed from the box score response, by position.
const (
	gameSummaryTable    = 0
	playerBasicTable    = 4
	teamBasicTable      = 5
	playerAdvancedTable = 13
	teamAdvancedTable   = 14
)

// Game summary columns.
const (
	sumHomeTeamID = 6
	sumAwayTeamID = 7
)

// Team basic stats columns.
const (
	tbTeamID = 1
	tbFGM    = 6
	tbFGA    = 7
	tbFGPct  = 8
	tbFG3M   = 9
	tbFG3A   = 10
	tbFG3Pct = 11
	tbFTM    = 12
	tbFTA    = 13
	tbFTPct  = 14
	tbOReb   = 15
	tbDReb   = 16
	tbReb    = 17
	tbAst    = 18
	tbStl    = 19
	tbBlk    = 20
	tbTov    = 21
	tbPts    = 23
)

// Team advanced stats columns.
const (
	taTeamID    = 1
	taOffRating = 6
	taDefRating = 7
	taORebPct   = 12
	taEFGPct    = 16
	taTSPct     = 17
	taPace      = 19
)

// Player basic stats columns.
const (
	pbTeamID   = 1
	pbPlayerID = 4
	pbMinutes  = 8
	pbFGM      = 9
	pbFGA      = 10
	pbFGPct    = 11
	pbFG3M     = 12
	pbFG3A     = 13
	pbFG3Pct   = 14
	pbFTM      = 15
	pbFTA      = 16
	pbFTPct    = 17
	pbOReb     = 18
	pbDReb     = 19
	pbReb      = 20
	pbAst      = 21
	pbStl      = 22
	pbBlk      = 23
	pbTov      = 24
	pbPts      = 26
)

// Player advanced stats columns.
const (
	paPlayerID = 4
	paEFGPct   = 19
	paTSPct    = 20
	paUsgPct   = 21
	paPace     = 22
)

// MalformedResponseError reports a box score response missing an expected
// table or column. It is fatal for the single game being ingested.
type MalformedResponseError struct {
	Table  string
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed box score response: table %s: %s", e.Table, e.Detail)
}

// TeamRawStats holds one team's cleaned counting stats and advanced rates
// for a single game. Missing source cells are zero.
type TeamRawStats struct {
	TeamID int

	FGM    int
	FGA    int
	FGPct  float64
	FG3M   int
	FG3A   int
	FG3Pct float64
	FTM    int
	FTA    int
	FTPct  float64
	OReb   int
	DReb   int
	Reb    int
	Ast    int
	Stl    int
	Blk    int
	Tov    int
	Pts    int

	OffRating float64
	DefRating float64
	ORebPct   float64
	EFGPct    float64
	TSPct     float64
	Pace      float64
}

// PlayerRawStats holds one player's cleaned counting stats and advanced
// rates for a single game. A player absent from the advanced table keeps
// zeros for the rate fields.
type PlayerRawStats struct {
	PlayerID int
	TeamID   int
	Minutes  int

	FGM    int
	FGA    int
	FGPct  float64
	FG3M   int
	FG3A   int
	FG3Pct float64
	FTM    int
	FTA    int
	FTPct  float64
	OReb   int
	DReb   int
	Reb    int
	Ast    int
	Stl    int
	Blk    int
	Tov    int
	Pts    int

	EFGPct float64
	TSPct  float64
	UsgPct float64
	Pace   float64
}

// GameStats is the extraction output for one game: both teams and every
// player from the basic stats table, keyed by id. PlayerOrder preserves the
// basic table's row order so records assemble deterministically.
type GameStats struct {
	HomeTeamID  int
	AwayTeamID  int
	Teams       map[int]*TeamRawStats
	Players     map[int]*PlayerRawStats
	PlayerOrder []int
}

// Extract pulls the team and player stat tables out of a box score
// response and cleans them: missing or null cells become zero, clock
// minutes become whole minutes. It is a pure transform.
func Extract(resp *client.StatsResponse) (*GameStats, error) {
	if len(resp.ResultSets) <= teamAdvancedTable {
		return nil, &MalformedResponseError{
			Table:  "resultSets",
			Detail: fmt.Sprintf("expected at least %d tables, got %d", teamAdvancedTable+1, len(resp.ResultSets)),
		}
	}

	gs := &GameStats{
		Teams:   make(map[int]*TeamRawStats, 2),
		Players: make(map[int]*PlayerRawStats),
	}

	summary := resp.ResultSets[gameSummaryTable]
	if len(summary.RowSet) == 0 || len(summary.RowSet[0]) <= sumAwayTeamID {
		return nil, &MalformedResponseError{Table: "game summary", Detail: "missing home/away team columns"}
	}
	gs.HomeTeamID = cellInt(summary.RowSet[0], sumHomeTeamID)
	gs.AwayTeamID = cellInt(summary.RowSet[0], sumAwayTeamID)

	teamBasic := resp.ResultSets[teamBasicTable]
	if len(teamBasic.RowSet) != 2 {
		return nil, &MalformedResponseError{
			Table:  "team basic stats",
			Detail: fmt.Sprintf("expected 2 rows, got %d", len(teamBasic.RowSet)),
		}
	}
	for _, row := range teamBasic.RowSet {
		if len(row) <= tbPts {
			return nil, &MalformedResponseError{Table: "team basic stats", Detail: "row too short"}
		}
		t := &TeamRawStats{
			TeamID: cellInt(row, tbTeamID),
			FGM:    cellInt(row, tbFGM),
			FGA:    cellInt(row, tbFGA),
			FGPct:  cellFloat(row, tbFGPct),
			FG3M:   cellInt(row, tbFG3M),
			FG3A:   cellInt(row, tbFG3A),
			FG3Pct: cellFloat(row, tbFG3Pct),
			FTM:    cellInt(row, tbFTM),
			FTA:    cellInt(row, tbFTA),
			FTPct:  cellFloat(row, tbFTPct),
			OReb:   cellInt(row, tbOReb),
			DReb:   cellInt(row, tbDReb),
			Reb:    cellInt(row, tbReb),
			Ast:    cellInt(row, tbAst),
			Stl:    cellInt(row, tbStl),
			Blk:    cellInt(row, tbBlk),
			Tov:    cellInt(row, tbTov),
			Pts:    cellInt(row, tbPts),
		}
		gs.Teams[t.TeamID] = t
	}

	teamAdvanced := resp.ResultSets[teamAdvancedTable]
	for _, row := range teamAdvanced.RowSet {
		if len(row) <= taPace {
			return nil, &MalformedResponseError{Table: "team advanced stats", Detail: "row too short"}
		}
		t, ok := gs.Teams[cellInt(row, taTeamID)]
		if !ok {
			continue
		}
		t.OffRating = cellFloat(row, taOffRating)
		t.DefRating = cellFloat(row, taDefRating)
		t.ORebPct = cellFloat(row, taORebPct)
		t.EFGPct = cellFloat(row, taEFGPct)
		t.TSPct = cellFloat(row, taTSPct)
		t.Pace = cellFloat(row, taPace)
	}

	playerBasic := resp.ResultSets[playerBasicTable]
	for _, row := range playerBasic.RowSet {
		if len(row) <= pbPts {
			return nil, &MalformedResponseError{Table: "player basic stats", Detail: "row too short"}
		}
		p := &PlayerRawStats{
			PlayerID: cellInt(row, pbPlayerID),
			TeamID:   cellInt(row, pbTeamID),
			Minutes:  parseMinutes(row[pbMinutes]),
			FGM:      cellInt(row, pbFGM),
			FGA:      cellInt(row, pbFGA),
			FGPct:    cellFloat(row, pbFGPct),
			FG3M:     cellInt(row, pbFG3M),
			FG3A:     cellInt(row, pbFG3A),
			FG3Pct:   cellFloat(row, pbFG3Pct),
			FTM:      cellInt(row, pbFTM),
			FTA:      cellInt(row, pbFTA),
			FTPct:    cellFloat(row, pbFTPct),
			OReb:     cellInt(row, pbOReb),
			DReb:     cellInt(row, pbDReb),
			Reb:      cellInt(row, pbReb),
			Ast:      cellInt(row, pbAst),
			Stl:      cellInt(row, pbStl),
			Blk:      cellInt(row, pbBlk),
			Tov:      cellInt(row, pbTov),
			Pts:      cellInt(row, pbPts),
		}
		gs.Players[p.PlayerID] = p
		gs.PlayerOrder = append(gs.PlayerOrder, p.PlayerID)
	}

	// Players missing here (did not play) keep zero rates.
	playerAdvanced := resp.ResultSets[playerAdvancedTable]
	for _, row := range playerAdvanced.RowSet {
		if len(row) <= paPace {
			return nil, &MalformedResponseError{Table: "player advanced stats", Detail: "row too short"}
		}
		p, ok := gs.Players[cellInt(row, paPlayerID)]
		if !ok {
			continue
		}
		p.EFGPct = cellFloat(row, paEFGPct)
		p.TSPct = cellFloat(row, paTSPct)
		p.UsgPct = cellFloat(row, paUsgPct)
		p.Pace = cellFloat(row, paPace)
	}

	return gs, nil
}

// parseMinutes converts a raw minutes cell to whole minutes. The API sends
// a clock string ("34:12"), a bare number, or null for players who did not
// play.
func parseMinutes(v interface{}) int {
	switch m := v.(type) {
	case string:
		clock, _, _ := strings.Cut(m, ":")
		minutes, err := strconv.Atoi(clock)
		if err != nil {
			return 0
		}
		return minutes
	case float64:
		return int(m)
	default:
		return 0
	}
}

// cellFloat reads a numeric cell, treating missing or null values as zero.
func cellFloat(row []interface{}, idx int) float64 {
	if idx >= len(row) {
		return 0
	}
	if v, ok := row[idx].(float64); ok {
		return v
	}
	return 0
}

func cellInt(row []interface{}, idx int) int {
	return int(cellFloat(row, idx))
}
