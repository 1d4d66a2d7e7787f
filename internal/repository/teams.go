package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"nbadb/ingestion/internal/models"
)

// TeamRepository handles team database operations
type TeamRepository struct {
	db *Database
}

// Create inserts a new team
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (team_id, team_abbv)
		VALUES ($1, $2)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, team.TeamID, team.Abbreviation).
		Scan(&team.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team %d: %w", team.TeamID, err)
	}

	log.Debug().
		Int("team_id", team.TeamID).
		Str("abbv", team.Abbreviation).
		Msg("Team created")

	return nil
}

// GetByID retrieves a team by its id
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*models.Team, error) {
	query := `
		SELECT team_id, team_abbv, created_at
		FROM teams
		WHERE team_id = $1
	`

	var team models.Team
	err := r.db.Pool.QueryRow(ctx, query, teamID).
		Scan(&team.TeamID, &team.Abbreviation, &team.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	return &team, nil
}

// List retrieves all teams ordered by id
func (r *TeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT team_id, team_abbv, created_at
		FROM teams
		ORDER BY team_id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.TeamID, &team.Abbreviation, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}

	return teams, nil
}
