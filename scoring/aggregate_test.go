package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testPars is a flat par-4 card with stroke index matching hole number.
func testPars() [Holes]HolePar {
	var p [Holes]HolePar
	for i := range p {
		p[i] = HolePar{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	return p
}

// scoresWorth builds hole scores that net the given points per hole under
// the given handicap.
func scoresWorth(pars [Holes]HolePar, handicap int, points [Holes]int) [Holes]HoleScore {
	var out [Holes]HoleScore
	for i, want := range points {
		shots := StrokesReceived(handicap, pars[i].StrokeIndex)
		out[i] = entered(pars[i].Par + 2 + shots - want)
	}
	return out
}

func uniformPoints(p int) [Holes]int {
	var out [Holes]int
	for i := range out {
		out[i] = p
	}
	return out
}

func intp(v int) *int { return &v }

func TestRoundScore(t *testing.T) {
	pars := testPars()

	t.Run("complete round sums points", func(t *testing.T) {
		total := RoundScore(scoresWorth(pars, 10, uniformPoints(2)), pars, 10)
		assert.Equal(t, 36, total.Points)
		assert.True(t, total.Complete)
	})

	t.Run("missing holes mark the round incomplete", func(t *testing.T) {
		scores := scoresWorth(pars, 10, uniformPoints(2))
		scores[17] = HoleScore{}
		total := RoundScore(scores, pars, 10)
		assert.Equal(t, 34, total.Points)
		assert.False(t, total.Complete)
	})

	t.Run("pickup counts for completeness but not points", func(t *testing.T) {
		scores := scoresWorth(pars, 10, uniformPoints(2))
		scores[0] = HoleScore{Pickup: true, Entered: true}
		total := RoundScore(scores, pars, 10)
		assert.Equal(t, 34, total.Points)
		assert.True(t, total.Complete)
	})
}

func TestBestN(t *testing.T) {
	tests := []struct {
		name   string
		totals []*int
		n      int
		want   int
	}{
		{"best two of three", []*int{intp(10), intp(20), intp(30)}, 2, 50},
		{"nulls excluded not zero", []*int{intp(10), nil, intp(30)}, 2, 40},
		{"n larger than field", []*int{intp(10), intp(20)}, 5, 30},
		{"empty", nil, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BestN(tt.totals, tt.n))
		})
	}
}

func TestBestNWithFinal(t *testing.T) {
	tests := []struct {
		name   string
		totals []*int
		n      int
		want   int
	}{
		// Final forced in even though 20+30 would beat 50+30? No: forced
		// final means 50 plus best one of the rest.
		{"final present", []*int{intp(10), intp(20), intp(30), intp(50)}, 2, 80},
		// Unplayed final: best two of what was played, no penalty.
		{"final absent", []*int{intp(10), intp(20), intp(30), nil}, 2, 50},
		{"weak final still forced", []*int{intp(30), intp(20), intp(5)}, 2, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BestNWithFinal(tt.totals, tt.n))
		})
	}
}

func TestPairPoints(t *testing.T) {
	var a, b [Holes]HolePoints
	for i := 0; i < Holes; i++ {
		a[i] = HolePoints{Points: 2, Known: true}
		b[i] = HolePoints{Points: 1, Known: true}
	}
	b[0].Points = 4
	assert.Equal(t, 2*17+4, PairPoints(a, b))
}

func TestTeamHolePoints(t *testing.T) {
	known := func(p int) HolePoints { return HolePoints{Points: p, Known: true} }

	tests := []struct {
		name    string
		members []HolePoints
		m       int
		want    int
	}{
		{"best two minus one blank", []HolePoints{known(4), known(3), known(0), known(2)}, 2, 6},
		{"blank outside best m still penalizes", []HolePoints{known(4), known(4), known(0), known(0)}, 2, 6},
		{"no blanks", []HolePoints{known(2), known(3)}, 2, 5},
		{"missing score is not a blank", []HolePoints{known(4), known(3), {}}, 2, 7},
		{"m larger than field", []HolePoints{known(2)}, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TeamHolePoints(tt.members, tt.m))
		})
	}
}

func TestWinnersCutoff(t *testing.T) {
	t.Run("cutoff at middle of field", func(t *testing.T) {
		cutoff, ok := WinnersCutoff([]int{40, 38, 36, 30, 28})
		assert.True(t, ok)
		assert.Equal(t, 36, cutoff)
	})

	t.Run("ties at cutoff widen the winners", func(t *testing.T) {
		cutoff, _ := WinnersCutoff([]int{40, 36, 36, 36, 28, 20})
		// floor(6/2)=3 → fourth-highest; everyone on 36 qualifies.
		assert.Equal(t, 36, cutoff)
	})

	t.Run("empty field", func(t *testing.T) {
		_, ok := WinnersCutoff(nil)
		assert.False(t, ok)
	})
}
