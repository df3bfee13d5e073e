package scoring

// StrokesReceived is the number of handicap strokes a player gets on a hole.
// A full stroke per 18 of handicap, plus one more on holes whose stroke index
// is covered by the remainder. Negative handicaps are clamped to zero.
func StrokesReceived(handicap, strokeIndex int) int {
	if handicap < 0 {
		handicap = 0
	}
	shots := handicap / 18
	if strokeIndex <= handicap%18 {
		shots++
	}
	return shots
}

// NetPoints converts one hole's raw score into net Stableford points in
// [0,10]. Missing scores and pickups are worth nothing; a pickup gets no
// strokes-received credit either. Total for any input, never panics.
func NetPoints(score HoleScore, par, strokeIndex, handicap int) int {
	if !score.Entered || score.Pickup || score.Strokes <= 0 {
		return 0
	}
	net := score.Strokes - StrokesReceived(handicap, strokeIndex)
	points := 2 + par - net
	if points < 0 {
		return 0
	}
	if points > 10 {
		return 10
	}
	return points
}

// HolePointsFor resolves a full 18 holes of Stableford points against a par
// table, marking unentered holes as unknown for matchplay purposes.
func HolePointsFor(scores [Holes]HoleScore, pars [Holes]HolePar, handicap int) [Holes]HolePoints {
	var out [Holes]HolePoints
	for i, s := range scores {
		if !s.Entered {
			continue
		}
		out[i] = HolePoints{
			Points: NetPoints(s, pars[i].Par, pars[i].StrokeIndex, handicap),
			Known:  true,
		}
	}
	return out
}
