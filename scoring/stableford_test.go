package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entered(strokes int) HoleScore { return HoleScore{Strokes: strokes, Entered: true} }

func TestStrokesReceived(t *testing.T) {
	tests := []struct {
		name        string
		handicap    int
		strokeIndex int
		want        int
	}{
		{"scratch gets nothing", 0, 1, 0},
		{"handicap covers index", 10, 5, 1},
		{"handicap misses index", 10, 11, 0},
		{"exact boundary", 10, 10, 1},
		{"full allocation", 18, 18, 1},
		{"second time round", 20, 2, 2},
		{"second time round uncovered", 20, 3, 1},
		{"negative clamps to zero", -4, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrokesReceived(tt.handicap, tt.strokeIndex))
		})
	}
}

func TestNetPoints(t *testing.T) {
	tests := []struct {
		name        string
		score       HoleScore
		par         int
		strokeIndex int
		handicap    int
		want        int
	}{
		{"gross par no strokes", entered(4), 4, 11, 10, 2},
		{"net birdie with stroke", entered(4), 4, 5, 10, 3},
		{"blob scores nothing", entered(9), 4, 11, 0, 0},
		{"pickup is zero", HoleScore{Pickup: true, Entered: true}, 4, 1, 36, 0},
		{"not entered is zero", HoleScore{}, 4, 1, 10, 0},
		{"nonsense strokes degrade to zero", entered(-3), 4, 1, 10, 0},
		{"hole in one capped at ten", entered(1), 5, 1, 54, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NetPoints(tt.score, tt.par, tt.strokeIndex, tt.handicap))
		})
	}
}

func TestNetPointsBounded(t *testing.T) {
	for par := 3; par <= 5; par++ {
		for si := 1; si <= 18; si++ {
			for h := 0; h <= 54; h += 3 {
				for strokes := 1; strokes <= 15; strokes++ {
					got := NetPoints(entered(strokes), par, si, h)
					assert.GreaterOrEqual(t, got, 0)
					assert.LessOrEqual(t, got, 10)
				}
			}
		}
	}
}

func TestStrokesReceivedMonotone(t *testing.T) {
	// Adding 18 to the handicap is worth exactly one more stroke on any hole.
	for si := 1; si <= 18; si++ {
		for h := 0; h <= 40; h++ {
			assert.Equal(t, StrokesReceived(h, si)+1, StrokesReceived(h+18, si),
				"handicap %d stroke index %d", h, si)
		}
	}
}
