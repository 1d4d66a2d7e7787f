package boxscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleTeamRecordsMissingHomeTeam(t *testing.T) {
	gs := &GameStats{
		HomeTeamID: 1,
		AwayTeamID: 2,
		Teams: map[int]*TeamRawStats{
			2: {TeamID: 2},
			3: {TeamID: 3},
		},
	}

	_, err := AssembleTeamRecords(21500001, gs)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Error(), "home team 1")
}

func TestAssemblePlayerRecordsPreservesRowOrder(t *testing.T) {
	gs := &GameStats{
		Players: map[int]*PlayerRawStats{
			10: {PlayerID: 10, TeamID: 1},
			20: {PlayerID: 20, TeamID: 2},
			30: {PlayerID: 30, TeamID: 1},
		},
		PlayerOrder: []int{30, 10, 20},
	}

	records := AssemblePlayerRecords(21500001, gs, ScoringWeights{}, ScoringWeights{})
	require.Len(t, records, 3)
	assert.Equal(t, 30, records[0].PlayerID)
	assert.Equal(t, 10, records[1].PlayerID)
	assert.Equal(t, 20, records[2].PlayerID)
}
