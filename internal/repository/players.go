package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"nbadb/ingestion/internal/models"
)

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *Database
}

// Create inserts a new player
func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (player_id, first_name, last_name, position, age)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		player.PlayerID, player.FirstName, player.LastName,
		player.Position, player.Age,
	).Scan(&player.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create player %d: %w", player.PlayerID, err)
	}

	log.Debug().
		Int("player_id", player.PlayerID).
		Str("name", player.FirstName+" "+player.LastName).
		Str("position", player.Position).
		Msg("Player created")

	return nil
}

// GetByID retrieves a player by its id
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*models.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, position, age, created_at
		FROM players
		WHERE player_id = $1
	`

	var player models.Player
	err := r.db.Pool.QueryRow(ctx, query, playerID).Scan(
		&player.PlayerID, &player.FirstName, &player.LastName,
		&player.Position, &player.Age, &player.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}

	return &player, nil
}

// List retrieves all players ordered by id
func (r *PlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, position, age, created_at
		FROM players
		ORDER BY player_id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var player models.Player
		err := rows.Scan(
			&player.PlayerID, &player.FirstName, &player.LastName,
			&player.Position, &player.Age, &player.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}
