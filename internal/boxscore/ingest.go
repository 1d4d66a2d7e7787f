package boxscore

import (
	"nbadb/ingestion/internal/client"
	"nbadb/ingestion/internal/models"
)

// IngestGame runs the full transform for one game: extract the stat
// tables, derive the advanced metrics and fantasy totals, and assemble the
// storage-ordered records. It is pure; persistence and retries belong to
// the caller.
func IngestGame(gameID int, resp *client.StatsResponse, fanduel, draftkings ScoringWeights) ([]models.TeamGameRecord, []models.PlayerGameRecord, error) {
	gs, err := Extract(resp)
	if err != nil {
		return nil, nil, err
	}

	teamRecords, err := AssembleTeamRecords(gameID, gs)
	if err != nil {
		return nil, nil, err
	}
	playerRecords := AssemblePlayerRecords(gameID, gs, fanduel, draftkings)

	return teamRecords, playerRecords, nil
}
