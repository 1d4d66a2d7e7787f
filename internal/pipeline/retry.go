package pipeline

import (
	"context"

	"github.com/rs/zerolog/log"

	"nbadb/ingestion/internal/client"
)

// BatchResult summarizes one game-log batch run. Every failure is
// attributable to a specific game id.
type BatchResult struct {
	Ingested int
	Failed   map[int]error
}

// runBatch ingests each game once, then gives games that failed with a
// transient connectivity error a single retry at the end of the batch. A
// second transient failure, or any non-transient failure, is permanent for
// the run.
func runBatch(ctx context.Context, gameIDs []int, ingest func(context.Context, int) error) *BatchResult {
	result := &BatchResult{Failed: make(map[int]error)}

	var retry []int
	for _, gameID := range gameIDs {
		if err := ctx.Err(); err != nil {
			result.Failed[gameID] = err
			continue
		}

		err := ingest(ctx, gameID)
		switch {
		case err == nil:
			result.Ingested++
		case client.IsTransient(err):
			log.Warn().
				Int("game_id", gameID).
				Err(err).
				Msg("Transient failure, will retry at end of batch")
			retry = append(retry, gameID)
		default:
			log.Error().
				Int("game_id", gameID).
				Err(err).
				Msg("Game ingestion failed")
			result.Failed[gameID] = err
		}
	}

	for _, gameID := range retry {
		if err := ctx.Err(); err != nil {
			result.Failed[gameID] = err
			continue
		}

		if err := ingest(ctx, gameID); err != nil {
			log.Error().
				Int("game_id", gameID).
				Err(err).
				Msg("Game ingestion failed after retry")
			result.Failed[gameID] = err
			continue
		}
		result.Ingested++
	}

	return result
}
