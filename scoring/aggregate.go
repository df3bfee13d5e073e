package scoring

import "sort"

// RoundTotal is one player's Stableford result for a round. Complete is true
// only when all 18 holes have an entered score (pickups included).
type RoundTotal struct {
	Points   int
	Complete bool
}

// RoundScore sums net Stableford points over 18 holes.
func RoundScore(scores [Holes]HoleScore, pars [Holes]HolePar, handicap int) RoundTotal {
	t := RoundTotal{Complete: true}
	for i, s := range scores {
		if !s.Entered {
			t.Complete = false
			continue
		}
		t.Points += NetPoints(s, pars[i].Par, pars[i].StrokeIndex, handicap)
	}
	return t
}

// BestN sums the n largest of the available round totals. Nil entries are
// rounds the player did not play; they are excluded, not treated as zero.
func BestN(totals []*int, n int) int {
	avail := make([]int, 0, len(totals))
	for _, t := range totals {
		if t != nil {
			avail = append(avail, *t)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(avail)))
	if n > len(avail) {
		n = len(avail)
	}
	sum := 0
	for _, v := range avail[:n] {
		sum += v
	}
	return sum
}

// BestNWithFinal is the "must include final round" variant: when the last
// round's total is present it is force-included alongside the best n-1 of
// the rest. An unplayed final falls back to plain BestN over the remaining
// rounds, so nobody is penalized for missing it.
func BestNWithFinal(totals []*int, n int) int {
	if len(totals) == 0 || n <= 0 {
		return 0
	}
	final := totals[len(totals)-1]
	rest := totals[:len(totals)-1]
	if final == nil {
		return BestN(rest, n)
	}
	return *final + BestN(rest, n-1)
}

// PairPoints is pair best-ball over a round: each member's points are
// computed with their own handicap, the pair takes the better value per hole.
// Unknown holes contribute nothing.
func PairPoints(a, b [Holes]HolePoints) int {
	best := BestBall(a, b)
	sum := 0
	for _, h := range best {
		if h.Known {
			sum += h.Points
		}
	}
	return sum
}

// TeamHolePoints applies the best-m-minus-zeros rule to one hole: sum the m
// highest member point values, then subtract one per member who scored
// exactly zero. The zero penalty counts every blank, not just those inside
// the best m.
func TeamHolePoints(members []HolePoints, m int) int {
	if m < 1 {
		m = 1
	}
	vals := make([]int, 0, len(members))
	zeros := 0
	for _, h := range members {
		if !h.Known {
			continue
		}
		vals = append(vals, h.Points)
		if h.Points == 0 {
			zeros++
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(vals)))
	if m > len(vals) {
		m = len(vals)
	}
	sum := 0
	for _, v := range vals[:m] {
		sum += v
	}
	return sum - zeros
}

// TeamPoints sums TeamHolePoints over a round. members is one 18-hole point
// set per team member.
func TeamPoints(members [][Holes]HolePoints, m int) int {
	sum := 0
	for i := 0; i < Holes; i++ {
		hole := make([]HolePoints, len(members))
		for j := range members {
			hole[j] = members[j][i]
		}
		sum += TeamHolePoints(hole, m)
	}
	return sum
}

// WinnersCutoff returns the qualifying total for a competition round: the
// total of the player ranked at position floor(n/2) of the descending field.
// Every player at or above the cutoff wins, so ties can push the winner
// count past half the field.
func WinnersCutoff(totals []int) (int, bool) {
	if len(totals) == 0 {
		return 0, false
	}
	sorted := make([]int, len(totals))
	copy(sorted, totals)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return sorted[len(sorted)/2], true
}
