package scoring

// SeqRound is one round's output from the sequential recalculator.
type SeqRound struct {
	RoundID int
	RoundNo int
	// PH is the playing handicap assigned to each participation row for
	// this round.
	PH map[int]int
	// Totals holds each playing player's Stableford total scored off PH,
	// only present when the round advanced.
	Totals       map[int]int
	FieldAverage int
	// Advanced is true when this round's results fed the next round's
	// handicaps.
	Advanced bool
	// Halted is true on the first incomplete round; no round after it
	// advances.
	Halted bool
}

// SeqResult is the full sequential recalculation for a tour.
type SeqResult struct {
	Rounds []SeqRound
}

// Recalculate walks the tour's rounds in order, deriving each player's
// playing handicap for round i+1 from round i's performance against the
// field. Round 1 starts from the starting handicap; after a complete round
// the next handicap is roundHalfUp(ph + (avg-score)/3), clamped to
// [ceil(start/2), start+3]. The walk halts at the first incomplete round —
// everything after keeps its stored handicap — and skips rounds with no
// usable par data. With rehandicapping disabled every handicap is forced
// back to the starting value.
func Recalculate(ts *TourSnapshot) SeqResult {
	start := make(map[int]int, len(ts.Starting))
	cur := make(map[int]int, len(ts.Starting))
	for p, h := range ts.Starting {
		s := h.Round()
		if s < 0 {
			s = 0
		}
		start[p] = s
		cur[p] = s
	}

	res := SeqResult{Rounds: make([]SeqRound, 0, len(ts.Rounds))}
	halted := false

	for _, r := range ts.Rounds {
		rr := SeqRound{RoundID: r.RoundID, RoundNo: r.RoundNo, PH: make(map[int]int, len(r.Players))}

		for id, p := range r.Players {
			switch {
			case !ts.Rehandicap:
				rr.PH[id] = start[id]
			case halted:
				// Past the halt point the stored value stands.
				rr.PH[id] = p.Handicap.Round()
			default:
				rr.PH[id] = cur[id]
			}
		}

		if !ts.Rehandicap || halted {
			res.Rounds = append(res.Rounds, rr)
			continue
		}

		if !r.Usable() {
			// No par data: unusable, skipped. Handicaps carry into the
			// next round unchanged.
			res.Rounds = append(res.Rounds, rr)
			continue
		}

		eligible := make([]*Participant, 0, len(r.Players))
		for _, p := range r.Players {
			if !p.Playing {
				continue
			}
			if !p.Complete() {
				halted = true
				rr.Halted = true
				break
			}
			eligible = append(eligible, p)
		}
		if halted || len(eligible) == 0 {
			res.Rounds = append(res.Rounds, rr)
			continue
		}

		rr.Totals = make(map[int]int, len(eligible))
		sum := 0
		for _, p := range eligible {
			pars, _ := r.ParsFor(p.Tee)
			total := RoundScore(p.Scores, pars, rr.PH[p.PlayerID]).Points
			rr.Totals[p.PlayerID] = total
			sum += total
		}
		avg := RoundHalfUp(float64(sum) / float64(len(eligible)))
		rr.FieldAverage = avg
		rr.Advanced = true

		for _, p := range eligible {
			ph := rr.PH[p.PlayerID]
			next := RoundHalfUp(float64(ph) + float64(avg-rr.Totals[p.PlayerID])/3)
			cur[p.PlayerID] = clampPH(next, start[p.PlayerID])
		}

		res.Rounds = append(res.Rounds, rr)
	}

	return res
}

// clampPH bounds a recalculated handicap to [ceil(start/2), start+3].
func clampPH(ph, start int) int {
	lo := (start + 1) / 2
	hi := start + 3
	if ph < lo {
		return lo
	}
	if ph > hi {
		return hi
	}
	return ph
}
