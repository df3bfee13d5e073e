package scoring

import "fmt"

// HoleResult is the outcome of one hole in a match.
type HoleResult int

const (
	// HoleNoData means at least one side is missing a raw score.
	HoleNoData HoleResult = iota
	HoleSideA
	HoleSideB
	HoleHalved
	// HoleBlank marks holes after the match was clinched; they must not
	// leak into point or result tables.
	HoleBlank
)

// Match is the resolved state of an 18-hole match between side A and side B.
// Diff is positive when A leads and is frozen at the clinching hole.
type Match struct {
	Holes   [Holes]HoleResult
	Diff    int
	Thru    int
	// Decided is the hole at which the match was clinched, 0 if it was
	// live through the 18th.
	Decided int
}

// BestBall combines two teammates' per-hole points into a side's points,
// taking the better value on each hole. A hole is known if either teammate
// has a score.
func BestBall(a, b [Holes]HolePoints) [Holes]HolePoints {
	var out [Holes]HolePoints
	for i := range out {
		switch {
		case a[i].Known && b[i].Known:
			out[i] = a[i]
			if b[i].Points > a[i].Points {
				out[i] = b[i]
			}
		case a[i].Known:
			out[i] = a[i]
		case b[i].Known:
			out[i] = b[i]
		}
	}
	return out
}

// PlayMatch resolves a match hole by hole. Holes where either side has no
// data do not advance the running difference or Thru. Once the leader's
// margin exceeds the holes remaining the match is decided there and all
// later holes are blanked.
func PlayMatch(a, b [Holes]HolePoints) Match {
	var m Match
	for i := 0; i < Holes; i++ {
		hole := i + 1
		if m.Decided != 0 {
			m.Holes[i] = HoleBlank
			continue
		}
		if !a[i].Known || !b[i].Known {
			m.Holes[i] = HoleNoData
			continue
		}
		switch {
		case a[i].Points > b[i].Points:
			m.Holes[i] = HoleSideA
			m.Diff++
		case b[i].Points > a[i].Points:
			m.Holes[i] = HoleSideB
			m.Diff--
		default:
			m.Holes[i] = HoleHalved
		}
		m.Thru = hole
		if abs(m.Diff) > Holes-hole {
			m.Decided = hole
		}
	}
	return m
}

// FinalText renders the finished-match result line.
func (m Match) FinalText(sideA, sideB string) string {
	if m.Diff == 0 {
		return "All Square"
	}
	winner, loser := sideA, sideB
	if m.Diff < 0 {
		winner, loser = sideB, sideA
	}
	if m.Decided != 0 && m.Decided < Holes {
		remaining := Holes - m.Decided
		return fmt.Sprintf("%s def %s %d & %d", winner, loser, remaining, remaining)
	}
	return fmt.Sprintf("%s def %s %d up", winner, loser, abs(m.Diff))
}

// LiveText renders the in-progress state of a match.
func (m Match) LiveText(sideA, sideB string) string {
	if m.Thru == 0 {
		return "Not started"
	}
	if m.Diff == 0 {
		return fmt.Sprintf("All Square (after %d holes)", m.Thru)
	}
	leader := sideA
	if m.Diff < 0 {
		leader = sideB
	}
	return fmt.Sprintf("%s is %d up (after %d holes)", leader, abs(m.Diff), m.Thru)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
