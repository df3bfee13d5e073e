package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaygolf/tourapi/models"
	"github.com/fairwaygolf/tourapi/scoring"
)

func intp(v int) *int { return &v }

func TestBuildRoundSnapshot(t *testing.T) {
	round := &models.Round{RoundID: 7, RoundNo: 2}
	pars := map[string][scoring.Holes]scoring.HolePar{"white": {}}
	participants := []models.RoundPlayer{
		{RoundID: 7, PlayerID: 1, Playing: true, PlayingHandicap: 12.4, Tee: "white"},
		{RoundID: 7, PlayerID: 2, Playing: false, Tee: "white"},
	}
	scores := []models.Score{
		{RoundID: 7, PlayerID: 1, HoleNumber: 1, Strokes: intp(5)},
		{RoundID: 7, PlayerID: 1, HoleNumber: 2, Pickup: true},
		// Hole number out of range, dropped.
		{RoundID: 7, PlayerID: 1, HoleNumber: 19, Strokes: intp(4)},
		// No strokes, no pickup: carries no information.
		{RoundID: 7, PlayerID: 1, HoleNumber: 3},
		// Score for a player with no participation row, dropped.
		{RoundID: 7, PlayerID: 9, HoleNumber: 1, Strokes: intp(4)},
	}

	snap := buildRoundSnapshot(round, pars, participants, scores)

	assert.Equal(t, 7, snap.RoundID)
	assert.Equal(t, 2, snap.RoundNo)
	require.Len(t, snap.Players, 2)

	p1 := snap.Players[1]
	require.NotNil(t, p1)
	assert.True(t, p1.Playing)
	assert.Equal(t, scoring.Tenths(124), p1.Handicap)
	assert.Equal(t, scoring.HoleScore{Strokes: 5, Entered: true}, p1.Scores[0])
	assert.Equal(t, scoring.HoleScore{Pickup: true, Entered: true}, p1.Scores[1])
	assert.False(t, p1.Scores[2].Entered)

	p2 := snap.Players[2]
	require.NotNil(t, p2)
	assert.False(t, p2.Playing)

	_, ok := snap.Players[9]
	assert.False(t, ok)
}

func TestBuildRoundSnapshotNilPars(t *testing.T) {
	round := &models.Round{RoundID: 1, RoundNo: 1}
	snap := buildRoundSnapshot(round, nil, nil, nil)
	require.NotNil(t, snap.Pars)
	assert.False(t, snap.Usable())
}
