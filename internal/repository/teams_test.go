//go:build integration

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbadb/ingestion/internal/models"
)

func TestTeamCreateAndGet(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	team := &models.Team{
		TeamID:       999000001,
		Abbreviation: "TST",
	}

	defer db.Pool.Exec(ctx, "DELETE FROM teams WHERE team_id = $1", team.TeamID)

	err := db.Teams.Create(ctx, team)
	require.NoError(t, err, "Should create team")
	assert.False(t, team.CreatedAt.IsZero(), "Should populate created_at")

	got, err := db.Teams.GetByID(ctx, team.TeamID)
	require.NoError(t, err)
	require.NotNil(t, got, "Created team should be found")
	assert.Equal(t, "TST", got.Abbreviation)
}

func TestTeamGetByIDNotFound(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	got, err := db.Teams.GetByID(ctx, 123456789)
	require.NoError(t, err)
	assert.Nil(t, got, "Missing team should return nil, not an error")
}

func TestTeamList(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	teams := []*models.Team{
		{TeamID: 999000011, Abbreviation: "AAA"},
		{TeamID: 999000012, Abbreviation: "BBB"},
	}
	defer db.Pool.Exec(ctx, "DELETE FROM teams WHERE team_id IN ($1, $2)", 999000011, 999000012)

	for _, team := range teams {
		require.NoError(t, db.Teams.Create(ctx, team))
	}

	got, err := db.Teams.List(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(got), 2, "Should list at least the created teams")
}

func TestPlayerCreateAndGet(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	player := &models.Player{
		PlayerID:  999000021,
		FirstName: "Test",
		LastName:  "Player",
		Position:  "PG",
		Age:       27,
	}
	defer db.Pool.Exec(ctx, "DELETE FROM players WHERE player_id = $1", player.PlayerID)

	err := db.Players.Create(ctx, player)
	require.NoError(t, err, "Should create player")

	got, err := db.Players.GetByID(ctx, player.PlayerID)
	require.NoError(t, err)
	require.NotNil(t, got, "Created player should be found")
	assert.Equal(t, "PG", got.Position)
	assert.Equal(t, 27, got.Age)
}
