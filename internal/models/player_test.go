package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapsePosition(t *testing.T) {
	tests := []struct {
		name     string
		granular string
		want     string
	}{
		{"point guard", "Point Guard", "PG"},
		{"shooting guard", "Shooting Guard", "SG"},
		{"small forward", "Small Forward", "SF"},
		{"power forward", "Power Forward", "PF"},
		{"center", "Center", "C"},
		{"empty string means no position", "", "N"},
		{"doubled position collapses to first", "Shooting Guard Shooting Guard", "SG"},
		{"repeated word collapses to one", "Center Center", "C"},
		{"three words keep the first two", "Power Forward Center", "PF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CollapsePosition(101, tt.granular)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollapsePositionUnrecognized(t *testing.T) {
	_, err := CollapsePosition(203507, "Quarterback")
	require.Error(t, err)

	var integrityErr *DataIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, 203507, integrityErr.ID)
}
