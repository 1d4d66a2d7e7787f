package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nbadb/ingestion/internal/models"
)

// GameLogRepository handles team-game and player-game log database
// operations
type GameLogRepository struct {
	db *Database
}

// InsertTeamGame inserts one team's line for one game
func (r *GameLogRepository) InsertTeamGame(ctx context.Context, rec *models.TeamGameRecord) error {
	query := `
		INSERT INTO teams_games (
			team_id, game_id, fgm, fga, fg_pct, fg3m, fg3a, fg3_pct,
			ftm, fta, ft_pct, oreb, dreb, reb, ast, stl, blk, tov, pts,
			possessions, off_efficiency, off_rating, def_rating,
			oreb_pct, efg_pct, ts_pct, pace, opponent
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28
		)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		rec.TeamID, rec.GameID, rec.FGM, rec.FGA, rec.FGPct,
		rec.FG3M, rec.FG3A, rec.FG3Pct, rec.FTM, rec.FTA, rec.FTPct,
		rec.OReb, rec.DReb, rec.Reb, rec.Ast, rec.Stl, rec.Blk, rec.Tov, rec.Pts,
		rec.Possessions, rec.OffEfficiency, rec.OffRating, rec.DefRating,
		rec.ORebPct, rec.EFGPct, rec.TSPct, rec.Pace, rec.Opponent,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert team game log (team %d, game %d): %w", rec.TeamID, rec.GameID, err)
	}

	log.Debug().
		Int("team_id", rec.TeamID).
		Int("game_id", rec.GameID).
		Msg("Team game log inserted")

	return nil
}

// InsertPlayerGame inserts one player's line for one game
func (r *GameLogRepository) InsertPlayerGame(ctx context.Context, rec *models.PlayerGameRecord) error {
	query := `
		INSERT INTO players_games (
			player_id, game_id, team_id, minutes, fgm, fga, fg_pct,
			fg3m, fg3a, fg3_pct, ftm, fta, ft_pct, oreb, dreb, reb,
			ast, stl, blk, tov, pts, efg_pct, ts_pct, usg_pct, pace,
			fd_fp, dk_fp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		rec.PlayerID, rec.GameID, rec.TeamID, rec.Minutes,
		rec.FGM, rec.FGA, rec.FGPct, rec.FG3M, rec.FG3A, rec.FG3Pct,
		rec.FTM, rec.FTA, rec.FTPct, rec.OReb, rec.DReb, rec.Reb,
		rec.Ast, rec.Stl, rec.Blk, rec.Tov, rec.Pts,
		rec.EFGPct, rec.TSPct, rec.UsgPct, rec.Pace,
		rec.FanDuelPoints, rec.DraftKingsPoints,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert player game log (player %d, game %d): %w", rec.PlayerID, rec.GameID, err)
	}

	log.Debug().
		Int("player_id", rec.PlayerID).
		Int("game_id", rec.GameID).
		Msg("Player game log inserted")

	return nil
}

// MaxTeamGameID returns the highest game id present in the team game logs,
// or zero when no logs are stored. Update mode ingests only games above it.
func (r *GameLogRepository) MaxTeamGameID(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(game_id), 0) FROM teams_games`

	var maxID int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to get max team game id: %w", err)
	}

	return maxID, nil
}

// CountForGame returns how many team rows are stored for a game
func (r *GameLogRepository) CountForGame(ctx context.Context, gameID int) (int, error) {
	query := `SELECT COUNT(*) FROM teams_games WHERE game_id = $1`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, gameID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count team game logs for game %d: %w", gameID, err)
	}

	return count, nil
}
