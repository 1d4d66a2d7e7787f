package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameDate(t *testing.T) {
	got, err := ParseGameDate("APR 12, 2016")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.April, 12, 0, 0, 0, 0, time.UTC), got)
}

func TestParseGameDateMixedCase(t *testing.T) {
	got, err := ParseGameDate("Jan 3, 2015")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, time.January, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestParseGameDateInvalid(t *testing.T) {
	_, err := ParseGameDate("2016-04-12")
	assert.Error(t, err)
}
