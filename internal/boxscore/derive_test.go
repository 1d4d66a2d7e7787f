package boxscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fanduelWeights() ScoringWeights {
	return ScoringWeights{"pts": 1, "reb": 1.2, "ast": 1.5, "blk": 2, "stl": 2, "tov": -1}
}

func draftkingsWeights() ScoringWeights {
	return ScoringWeights{
		"pts": 1, "fg3m": 0.5, "reb": 1.25, "ast": 1.5,
		"stl": 2, "blk": 2, "tov": -0.5, "dd": 1.5, "td": 3,
	}
}

func TestPossessions(t *testing.T) {
	// 80 + 0.44*25 + 15 - 10 = 96
	assert.InDelta(t, 96.0, Possessions(80, 25, 15, 10), 1e-9)
}

func TestOffensiveEfficiency(t *testing.T) {
	assert.InDelta(t, 100.0*100/85, OffensiveEfficiency(100, 85), 1e-9)
}

func TestOffensiveEfficiencyZeroPossessions(t *testing.T) {
	assert.Zero(t, OffensiveEfficiency(100, 0))
}

func TestDoubleFlags(t *testing.T) {
	tests := []struct {
		name                    string
		pts, reb, ast, stl, tov int
		wantDD, wantTD          int
	}{
		{"no categories", 5, 4, 3, 1, 2, 0, 0},
		{"one category", 30, 4, 3, 1, 2, 0, 0},
		{"two categories", 22, 11, 3, 1, 2, 1, 0},
		{"three categories", 22, 11, 10, 1, 2, 1, 1},
		{"turnovers count toward the tally", 22, 11, 3, 1, 10, 1, 1},
		{"four categories set neither flag", 22, 11, 10, 10, 2, 0, 0},
		{"five categories set neither flag", 22, 11, 10, 10, 10, 0, 0},
		{"threshold is inclusive", 10, 10, 3, 1, 2, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dd, td := DoubleFlags(tt.pts, tt.reb, tt.ast, tt.stl, tt.tov)
			assert.Equal(t, tt.wantDD, dd)
			assert.Equal(t, tt.wantTD, td)
		})
	}
}

func TestFantasyPointsFanDuel(t *testing.T) {
	p := &PlayerRawStats{Pts: 22, Reb: 11, Ast: 10, Stl: 1, Blk: 0, Tov: 2}

	// 22 + 11*1.2 + 10*1.5 + 0*2 + 1*2 - 2 = 50.2
	assert.InDelta(t, 50.2, FantasyPoints(p, fanduelWeights()), 1e-9)
}

func TestFantasyPointsDraftKings(t *testing.T) {
	p := &PlayerRawStats{Pts: 22, FG3M: 2, Reb: 11, Ast: 10, Stl: 1, Blk: 0, Tov: 2}

	// Triple-double line: 22 + 2*0.5 + 11*1.25 + 10*1.5 + 1*2 + 0*2
	// - 2*0.5 + 1.5 + 3 = 57.25
	assert.InDelta(t, 57.25, FantasyPoints(p, draftkingsWeights()), 1e-9)
}

func TestFantasyPointsDeterministic(t *testing.T) {
	p := &PlayerRawStats{Pts: 17, FG3M: 3, Reb: 6, Ast: 4, Stl: 2, Blk: 1, Tov: 3}

	first := FantasyPoints(p, draftkingsWeights())
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, FantasyPoints(p, draftkingsWeights()))
	}
}

func TestFantasyPointsEmptyWeights(t *testing.T) {
	p := &PlayerRawStats{Pts: 30, Reb: 12, Ast: 9}
	assert.Zero(t, FantasyPoints(p, ScoringWeights{}))
}
