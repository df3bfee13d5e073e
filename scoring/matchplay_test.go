package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allHoles(points int) [Holes]HolePoints {
	var out [Holes]HolePoints
	for i := range out {
		out[i] = HolePoints{Points: points, Known: true}
	}
	return out
}

func TestPlayMatchSweep(t *testing.T) {
	// A wins every hole: clinched at the 10th, 8 holes spare.
	m := PlayMatch(allHoles(3), allHoles(2))

	assert.Equal(t, 10, m.Decided)
	assert.Equal(t, 10, m.Thru)
	assert.Equal(t, 10, m.Diff)
	assert.Equal(t, "A def B 8 & 8", m.FinalText("A", "B"))

	for i := 10; i < Holes; i++ {
		assert.Equal(t, HoleBlank, m.Holes[i], "hole %d should be blank", i+1)
	}
}

func TestPlayMatchAllSquare(t *testing.T) {
	m := PlayMatch(allHoles(2), allHoles(2))

	assert.Equal(t, 0, m.Diff)
	assert.Equal(t, 0, m.Decided)
	assert.Equal(t, 18, m.Thru)
	assert.Equal(t, "All Square", m.FinalText("A", "B"))
}

func TestPlayMatchDecidedAtEighteen(t *testing.T) {
	a := allHoles(2)
	b := allHoles(2)
	// B edges the last two holes.
	b[16].Points = 3
	b[17].Points = 3
	m := PlayMatch(a, b)

	assert.Equal(t, -2, m.Diff)
	assert.Equal(t, 0, m.Decided)
	assert.Equal(t, "B def A 2 up", m.FinalText("A", "B"))
}

func TestPlayMatchNoDataHoles(t *testing.T) {
	a := allHoles(3)
	b := allHoles(2)
	// Hole 4 has no score for B; it must not move the difference.
	b[3].Known = false
	m := PlayMatch(a, b)

	assert.Equal(t, HoleNoData, m.Holes[3])
	// One fewer decisive hole pushes the clinch out to the 11th.
	assert.Equal(t, 11, m.Decided)
	assert.Equal(t, 10, m.Diff)
}

func TestLiveText(t *testing.T) {
	tests := []struct {
		name  string
		thru  int
		a, b  [Holes]HolePoints
		want  string
	}{
		{"not started", 0, [Holes]HolePoints{}, [Holes]HolePoints{}, "Not started"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := PlayMatch(tt.a, tt.b)
			assert.Equal(t, tt.want, m.LiveText("A", "B"))
		})
	}

	t.Run("leader up mid round", func(t *testing.T) {
		a := allHoles(3)
		b := allHoles(2)
		for i := 6; i < Holes; i++ {
			a[i].Known = false
			b[i].Known = false
		}
		m := PlayMatch(a, b)
		assert.Equal(t, "A is 6 up (after 6 holes)", m.LiveText("A", "B"))
	})

	t.Run("all square mid round", func(t *testing.T) {
		a := allHoles(2)
		b := allHoles(2)
		for i := 9; i < Holes; i++ {
			a[i].Known = false
			b[i].Known = false
		}
		m := PlayMatch(a, b)
		assert.Equal(t, "All Square (after 9 holes)", m.LiveText("A", "B"))
	})
}

func TestBestBall(t *testing.T) {
	var a, b [Holes]HolePoints
	a[0] = HolePoints{Points: 2, Known: true}
	b[0] = HolePoints{Points: 4, Known: true}
	a[1] = HolePoints{Points: 3, Known: true}
	// b has no score on hole 2, a alone carries the side.
	out := BestBall(a, b)

	assert.Equal(t, HolePoints{Points: 4, Known: true}, out[0])
	assert.Equal(t, HolePoints{Points: 3, Known: true}, out[1])
	assert.False(t, out[2].Known)
}
