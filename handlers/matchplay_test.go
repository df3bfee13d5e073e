package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairwaygolf/tourapi/scoring"
)

func testPars() [scoring.Holes]scoring.HolePar {
	var pars [scoring.Holes]scoring.HolePar
	for i := range pars {
		pars[i] = scoring.HolePar{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	return pars
}

func matchSnap() *scoring.RoundSnapshot {
	snap := &scoring.RoundSnapshot{
		RoundID: 1,
		RoundNo: 1,
		Pars:    map[string][scoring.Holes]scoring.HolePar{"white": testPars()},
		Players: map[int]*scoring.Participant{},
	}
	for id, strokes := range map[int]int{1: 4, 2: 5, 3: 3} {
		p := &scoring.Participant{PlayerID: id, Playing: true, Tee: "white"}
		for i := range p.Scores {
			p.Scores[i] = scoring.HoleScore{Strokes: strokes, Entered: true}
		}
		snap.Players[id] = p
	}
	// Player 4 has a row but is sitting the round out.
	snap.Players[4] = &scoring.Participant{PlayerID: 4, Playing: false, Tee: "white"}
	return snap
}

func TestSidePoints(t *testing.T) {
	snap := matchSnap()

	single := sidePoints(snap, 1, nil)
	for _, hp := range single {
		assert.True(t, hp.Known)
		assert.Equal(t, 2, hp.Points)
	}

	// Better ball: player 3's birdies beat player 2's bogeys everywhere.
	pb := 2
	pair := sidePoints(snap, 3, &pb)
	for _, hp := range pair {
		assert.Equal(t, 3, hp.Points)
	}
}

func TestSidePointsMissingPlayer(t *testing.T) {
	snap := matchSnap()

	for _, id := range []int{4, 99} {
		side := sidePoints(snap, id, nil)
		for _, hp := range side {
			assert.False(t, hp.Known)
		}
	}
}

func TestHoleLabels(t *testing.T) {
	var a, b [scoring.Holes]scoring.HolePoints
	for i := range a {
		a[i] = scoring.HolePoints{Points: 3, Known: true}
		b[i] = scoring.HolePoints{Points: 1, Known: true}
	}
	m := scoring.PlayMatch(a, b)
	labels := holeLabels(m)

	// A wins every hole until the clinch at 10; the rest are blanks.
	for i := 0; i < 10; i++ {
		assert.Equal(t, "A", labels[i])
	}
	for i := 10; i < scoring.Holes; i++ {
		assert.Equal(t, "-", labels[i])
	}
}
