package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointsTotaling(total int) [Holes]int {
	var out [Holes]int
	for i := 0; i < Holes && total > 0; i++ {
		p := total
		if p > 4 {
			p = 4
		}
		out[i] = p
		total -= p
	}
	return out
}

func playingWith(id int, scores [Holes]HoleScore) *Participant {
	return &Participant{PlayerID: id, Playing: true, Tee: "white", Scores: scores}
}

func testRoundSnap(id, no int, players ...*Participant) *RoundSnapshot {
	r := &RoundSnapshot{
		RoundID: id,
		RoundNo: no,
		Pars:    map[string][Holes]HolePar{"white": testPars()},
		Players: map[int]*Participant{},
	}
	for _, p := range players {
		r.Players[p.PlayerID] = p
	}
	return r
}

// threePlayerTour: starting handicaps of 10.0, round 1 scored 15/20/25 off a
// playing handicap of 10.
func threePlayerTour(extra ...*RoundSnapshot) *TourSnapshot {
	pars := testPars()
	r1 := testRoundSnap(1, 1,
		playingWith(1, scoresWorth(pars, 10, pointsTotaling(15))),
		playingWith(2, scoresWorth(pars, 10, pointsTotaling(20))),
		playingWith(3, scoresWorth(pars, 10, pointsTotaling(25))),
	)
	ts := &TourSnapshot{
		Rounds:     append([]*RoundSnapshot{r1}, extra...),
		Starting:   map[int]Tenths{1: 100, 2: 100, 3: 100},
		Rehandicap: true,
	}
	return ts
}

func TestRecalculate(t *testing.T) {
	t.Run("field average feeds the next round", func(t *testing.T) {
		r2 := testRoundSnap(2, 2, playingWith(1, [Holes]HoleScore{}))
		res := Recalculate(threePlayerTour(r2))
		require.Len(t, res.Rounds, 2)

		r1 := res.Rounds[0]
		assert.True(t, r1.Advanced)
		assert.Equal(t, 20, r1.FieldAverage)
		assert.Equal(t, map[int]int{1: 15, 2: 20, 3: 25}, r1.Totals)
		assert.Equal(t, 10, r1.PH[1])

		// roundHalfUp(10 + (20-15)/3) = 12, clamped to [5,13].
		assert.Equal(t, 12, res.Rounds[1].PH[1])
	})

	t.Run("adjustments clamp to half and plus three", func(t *testing.T) {
		pars := testPars()
		r1 := testRoundSnap(1, 1,
			playingWith(1, scoresWorth(pars, 10, pointsTotaling(10))),
			playingWith(2, scoresWorth(pars, 10, pointsTotaling(40))),
		)
		r2 := testRoundSnap(2, 2, playingWith(1, [Holes]HoleScore{}), playingWith(2, [Holes]HoleScore{}))
		ts := &TourSnapshot{
			Rounds:     []*RoundSnapshot{r1, r2},
			Starting:   map[int]Tenths{1: 100, 2: 100},
			Rehandicap: true,
		}
		res := Recalculate(ts)

		// Field average 25. Player 1 would go to 15, capped at start+3.
		assert.Equal(t, 13, res.Rounds[1].PH[1])
		// Player 2 lands exactly on the lower bound ceil(10/2).
		assert.Equal(t, 5, res.Rounds[1].PH[2])
	})

	t.Run("halts at first incomplete round", func(t *testing.T) {
		incomplete := testRoundSnap(2, 2, playingWith(1, [Holes]HoleScore{}))
		after := testRoundSnap(3, 3, &Participant{PlayerID: 1, Playing: true, Tee: "white", Handicap: 90})
		res := Recalculate(threePlayerTour(incomplete, after))

		assert.True(t, res.Rounds[1].Halted)
		// The incomplete round still gets the handicap derived from the
		// rounds before it.
		assert.Equal(t, 12, res.Rounds[1].PH[1])
		// Rounds past the halt keep their stored handicap.
		assert.Equal(t, 9, res.Rounds[2].PH[1])
		assert.False(t, res.Rounds[2].Advanced)
	})

	t.Run("round without pars is skipped not zeroed", func(t *testing.T) {
		pars := testPars()
		noPars := testRoundSnap(2, 2, playingWith(1, scoresWorth(pars, 10, pointsTotaling(20))))
		noPars.Pars = nil
		r3 := testRoundSnap(3, 3, playingWith(1, [Holes]HoleScore{}))
		res := Recalculate(threePlayerTour(noPars, r3))

		assert.False(t, res.Rounds[1].Advanced)
		assert.False(t, res.Rounds[1].Halted)
		// Handicaps carry straight through the unusable round.
		assert.Equal(t, 12, res.Rounds[1].PH[1])
		assert.Equal(t, 12, res.Rounds[2].PH[1])
	})

	t.Run("non-playing rows never block or move", func(t *testing.T) {
		ts := threePlayerTour(testRoundSnap(2, 2, playingWith(1, [Holes]HoleScore{})))
		ts.Rounds[0].Players[4] = &Participant{PlayerID: 4, Playing: false, Tee: "white"}
		ts.Starting[4] = 120
		res := Recalculate(ts)

		assert.True(t, res.Rounds[0].Advanced)
		assert.Equal(t, 20, res.Rounds[0].FieldAverage)
		assert.NotContains(t, res.Rounds[0].Totals, 4)
	})

	t.Run("disabled forces starting handicaps", func(t *testing.T) {
		ts := threePlayerTour(testRoundSnap(2, 2, playingWith(1, [Holes]HoleScore{})))
		ts.Rehandicap = false
		res := Recalculate(ts)

		assert.Equal(t, 10, res.Rounds[0].PH[1])
		assert.Equal(t, 10, res.Rounds[1].PH[1])
		assert.False(t, res.Rounds[0].Advanced)
	})

	t.Run("idempotent over unchanged input", func(t *testing.T) {
		ts := threePlayerTour(testRoundSnap(2, 2, playingWith(1, [Holes]HoleScore{})))
		assert.Equal(t, Recalculate(ts), Recalculate(ts))
	})
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{11.67, 12},
		{11.5, 12},
		{11.49, 11},
		{8.33, 8},
		{7.5, 8},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%v)", tt.in)
	}
}
