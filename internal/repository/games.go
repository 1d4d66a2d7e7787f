package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nbadb/ingestion/internal/models"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

// Create inserts a new game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO game (game_id, game_date, season_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, game.GameID, game.GameDate, game.SeasonID).
		Scan(&game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game %d: %w", game.GameID, err)
	}

	log.Debug().
		Int("game_id", game.GameID).
		Time("game_date", game.GameDate).
		Str("season_id", game.SeasonID).
		Msg("Game created")

	return nil
}

// ListGameIDs retrieves all stored game ids in ascending order
func (r *GameRepository) ListGameIDs(ctx context.Context) ([]int, error) {
	return r.listGameIDs(ctx, `SELECT game_id FROM game ORDER BY game_id`)
}

// ListGameIDsAfter retrieves stored game ids strictly greater than minID,
// in ascending order
func (r *GameRepository) ListGameIDsAfter(ctx context.Context, minID int) ([]int, error) {
	return r.listGameIDs(ctx, `SELECT game_id FROM game WHERE game_id > $1 ORDER BY game_id`, minID)
}

func (r *GameRepository) listGameIDs(ctx context.Context, query string, args ...interface{}) ([]int, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list game ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game ids: %w", err)
	}

	return ids, nil
}

// MaxGameID returns the highest stored game id, or zero when no games are
// stored
func (r *GameRepository) MaxGameID(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(game_id), 0) FROM game`

	var maxID int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to get max game id: %w", err)
	}

	return maxID, nil
}
