package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applebyTour builds a tour where six players start on 8.0 and score the
// given totals (off a playing handicap of 8) in round 1, with rounds on the
// round_no % 3 == 0 cycle reserved for another format.
func applebyTour(totals []int, extra ...*RoundSnapshot) *TourSnapshot {
	pars := testPars()
	r1 := testRoundSnap(1, 1)
	ts := &TourSnapshot{
		Starting:      map[int]Tenths{},
		ApplebyCycle:  3,
		ApplebyOffset: 0,
	}
	for i, total := range totals {
		id := i + 1
		ts.Starting[id] = 80
		r1.Players[id] = playingWith(id, scoresWorth(pars, 8, pointsTotaling(total)))
	}
	ts.Rounds = append([]*RoundSnapshot{r1}, extra...)
	return ts
}

func TestRecalculateAppleby(t *testing.T) {
	t.Run("cutoff is the sixth highest score", func(t *testing.T) {
		r2 := testRoundSnap(2, 2, playingWith(1, [Holes]HoleScore{}))
		res := RecalculateAppleby(applebyTour([]int{25, 24, 23, 22, 21, 20}, r2))
		require.Len(t, res.Rounds, 2)

		r1 := res.Rounds[0]
		assert.True(t, r1.Applied)
		require.True(t, r1.HasCutoff)
		assert.Equal(t, 20, r1.Cutoff)
		assert.Equal(t, 8, r1.PH[1])

		// Player 1 scored 25: raw step (20-25)*0.1 = -0.5, uncapped.
		adj := r1.Adjust[1]
		assert.Equal(t, Tenths(-5), adj.RawStep)
		assert.Equal(t, Tenths(-5), adj.Step)
		assert.Equal(t, Tenths(-5), adj.Cumulative)
		assert.False(t, adj.Capped)

		// Next applied round: roundHalfUp(8.0 - 0.5) = 8.
		assert.Equal(t, 8, res.Rounds[1].PH[1])
		// Player 6 scored the cutoff exactly, no movement.
		assert.Equal(t, Tenths(0), r1.Adjust[6].Cumulative)
	})

	t.Run("excluded cycle rounds inherit the prior handicap", func(t *testing.T) {
		r3 := testRoundSnap(3, 3, playingWith(2, [Holes]HoleScore{}))
		r4 := testRoundSnap(4, 4, playingWith(2, [Holes]HoleScore{}))
		res := RecalculateAppleby(applebyTour([]int{25, 24, 23, 22, 21, 20}, r3, r4))

		// round_no 3 sits on the reserved cycle.
		assert.False(t, res.Rounds[1].Applied)
		assert.Nil(t, res.Rounds[1].Adjust)
		// Player 2 scored 24 in round 1: cum -0.4, but the excluded round
		// keeps the round-1 handicap of 8.
		assert.Equal(t, 8, res.Rounds[1].PH[2])
		// The next applied round folds the trail in: roundHalfUp(8.0-0.4)=8.
		assert.True(t, res.Rounds[2].Applied)
		assert.Equal(t, 8, res.Rounds[2].PH[2])
	})

	t.Run("fewer than six eligible scores means no adjustment", func(t *testing.T) {
		res := RecalculateAppleby(applebyTour([]int{25, 24, 23, 22, 21}))
		r1 := res.Rounds[0]
		assert.True(t, r1.Applied)
		assert.False(t, r1.HasCutoff)
		assert.Nil(t, r1.Adjust)
		assert.Equal(t, Tenths(0), res.Cumulative[1])
	})

	t.Run("cumulative floor caps the applied step", func(t *testing.T) {
		// Sixth-highest of [45,20,19,18,17,16] is 16; player 1's raw step
		// would be -2.9, past the -2.0 floor.
		res := RecalculateAppleby(applebyTour([]int{45, 20, 19, 18, 17, 16}))
		adj := res.Rounds[0].Adjust[1]
		assert.Equal(t, Tenths(-29), adj.RawStep)
		assert.Equal(t, Tenths(-20), adj.Step)
		assert.Equal(t, Tenths(-20), adj.Cumulative)
		assert.True(t, adj.Capped)
	})

	t.Run("cumulative ceiling caps positive steps", func(t *testing.T) {
		// Seven players; the struggler on 0 sits 5.0 under the cutoff of 50.
		res := RecalculateAppleby(applebyTour([]int{0, 52, 51, 50, 50, 50, 50}))
		adj := res.Rounds[0].Adjust[1]
		assert.Equal(t, Tenths(50), adj.RawStep)
		assert.Equal(t, Tenths(40), adj.Step)
		assert.Equal(t, Tenths(40), adj.Cumulative)
		assert.True(t, adj.Capped)
	})

	t.Run("incomplete players sit out the cutoff", func(t *testing.T) {
		ts := applebyTour([]int{25, 24, 23, 22, 21, 20})
		ts.Rounds[0].Players[7] = playingWith(7, [Holes]HoleScore{})
		ts.Starting[7] = 80
		res := RecalculateAppleby(ts)

		require.True(t, res.Rounds[0].HasCutoff)
		assert.Equal(t, 20, res.Rounds[0].Cutoff)
		assert.NotContains(t, res.Rounds[0].Adjust, 7)
	})

	t.Run("idempotent over unchanged input", func(t *testing.T) {
		ts := applebyTour([]int{25, 24, 23, 22, 21, 20})
		assert.Equal(t, RecalculateAppleby(ts), RecalculateAppleby(ts))
	})
}

func TestTenths(t *testing.T) {
	assert.Equal(t, Tenths(83), TenthsOf(8.3))
	assert.Equal(t, Tenths(-5), TenthsOf(-0.5))
	assert.Equal(t, 8, Tenths(75).Round())
	assert.Equal(t, 8, Tenths(83).Round())
	assert.Equal(t, 0, Tenths(-5).Round())
	assert.InDelta(t, 8.3, Tenths(83).Float(), 1e-9)
}
