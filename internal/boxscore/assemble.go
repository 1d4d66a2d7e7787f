package boxscore

import (
	"fmt"

	"nbadb/ingestion/internal/models"
)

// AssembleTeamRecords merges each team's raw counts with its derived
// metrics into storage-ordered records. Exactly two records come back, home
// first, each naming the other team as opponent.
func AssembleTeamRecords(gameID int, gs *GameStats) ([]models.TeamGameRecord, error) {
	home, ok := gs.Teams[gs.HomeTeamID]
	if !ok {
		return nil, &MalformedResponseError{
			Table:  "team basic stats",
			Detail: fmt.Sprintf("home team %d missing from stat rows", gs.HomeTeamID),
		}
	}
	away, ok := gs.Teams[gs.AwayTeamID]
	if !ok {
		return nil, &MalformedResponseError{
			Table:  "team basic stats",
			Detail: fmt.Sprintf("away team %d missing from stat rows", gs.AwayTeamID),
		}
	}

	return []models.TeamGameRecord{
		assembleTeamRecord(gameID, home, away.TeamID),
		assembleTeamRecord(gameID, away, home.TeamID),
	}, nil
}

func assembleTeamRecord(gameID int, t *TeamRawStats, opponent int) models.TeamGameRecord {
	possessions := Possessions(t.FGA, t.FTA, t.Tov, t.OReb)

	return models.TeamGameRecord{
		TeamID:        t.TeamID,
		GameID:        gameID,
		FGM:           t.FGM,
		FGA:           t.FGA,
		FGPct:         t.FGPct,
		FG3M:          t.FG3M,
		FG3A:          t.FG3A,
		FG3Pct:        t.FG3Pct,
		FTM:           t.FTM,
		FTA:           t.FTA,
		FTPct:         t.FTPct,
		OReb:          t.OReb,
		DReb:          t.DReb,
		Reb:           t.Reb,
		Ast:           t.Ast,
		Stl:           t.Stl,
		Blk:           t.Blk,
		Tov:           t.Tov,
		Pts:           t.Pts,
		Possessions:   possessions,
		OffEfficiency: OffensiveEfficiency(t.Pts, possessions),
		OffRating:     t.OffRating,
		DefRating:     t.DefRating,
		ORebPct:       t.ORebPct,
		EFGPct:        t.EFGPct,
		TSPct:         t.TSPct,
		Pace:          t.Pace,
		Opponent:      opponent,
	}
}

// AssemblePlayerRecords builds one storage-ordered record per player in the
// basic stats table, fantasy totals included, preserving row order.
func AssemblePlayerRecords(gameID int, gs *GameStats, fanduel, draftkings ScoringWeights) []models.PlayerGameRecord {
	records := make([]models.PlayerGameRecord, 0, len(gs.PlayerOrder))
	for _, playerID := range gs.PlayerOrder {
		p := gs.Players[playerID]
		records = append(records, models.PlayerGameRecord{
			PlayerID:         p.PlayerID,
			GameID:           gameID,
			TeamID:           p.TeamID,
			Minutes:          p.Minutes,
			FGM:              p.FGM,
			FGA:              p.FGA,
			FGPct:            p.FGPct,
			FG3M:             p.FG3M,
			FG3A:             p.FG3A,
			FG3Pct:           p.FG3Pct,
			FTM:              p.FTM,
			FTA:              p.FTA,
			FTPct:            p.FTPct,
			OReb:             p.OReb,
			DReb:             p.DReb,
			Reb:              p.Reb,
			Ast:              p.Ast,
			Stl:              p.Stl,
			Blk:              p.Blk,
			Tov:              p.Tov,
			Pts:              p.Pts,
			EFGPct:           p.EFGPct,
			TSPct:            p.TSPct,
			UsgPct:           p.UsgPct,
			Pace:             p.Pace,
			FanDuelPoints:    FantasyPoints(p, fanduel),
			DraftKingsPoints: FantasyPoints(p, draftkings),
		})
	}
	return records
}
