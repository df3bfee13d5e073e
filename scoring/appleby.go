package scoring

import "sort"

// Cumulative Appleby adjustments are clamped to [-2.0, +4.0].
const (
	applebyFloor = Tenths(-20)
	applebyCeil  = Tenths(40)
)

// applebyCutoffRank is the field position used as the adjustment reference:
// the 6th-highest eligible score.
const applebyCutoffRank = 6

// ApplebyAdjust is the audit record of one player's adjustment at one
// applied round. Step is what was actually added to the trail; it falls
// short of RawStep when the cumulative cap bit (Capped).
type ApplebyAdjust struct {
	Score      int
	RawStep    Tenths
	Step       Tenths
	Cumulative Tenths
	Capped     bool
}

// ApplebyRound is one round's output from the Appleby recalculator.
type ApplebyRound struct {
	RoundID int
	RoundNo int
	// Applied is false for rounds on the excluded cycle; they inherit the
	// prior applied round's handicaps and compute no adjustment.
	Applied   bool
	PH        map[int]int
	Cutoff    int
	HasCutoff bool
	Adjust    map[int]ApplebyAdjust
}

// ApplebyResult is the full Appleby recalculation for a tour.
type ApplebyResult struct {
	Rounds []ApplebyRound
	// Cumulative is each player's final adjustment trail value.
	Cumulative map[int]Tenths
}

// RecalculateAppleby runs the segmented handicap algorithm: at each applied
// round every eligible player's Stableford total is measured against the
// field's 6th-highest score, moving a one-decimal cumulative adjustment by
// (cutoff-score)*0.1, with the cumulative total clamped to [-2.0, +4.0].
// The handicap used at an applied round is roundHalfUp(start + cumulative)
// as of that round. Fewer than six eligible scores means no adjustment for
// that round. The whole trail is exact tenths arithmetic; no floats drift
// between rounds.
func RecalculateAppleby(ts *TourSnapshot) ApplebyResult {
	start := make(map[int]Tenths, len(ts.Starting))
	cum := make(map[int]Tenths, len(ts.Starting))
	for p, h := range ts.Starting {
		if h < 0 {
			h = 0
		}
		start[p] = h
		cum[p] = 0
	}

	// Seed handicaps before any adjustment exists.
	ph := make(map[int]int, len(start))
	for p, h := range start {
		ph[p] = h.Round()
	}

	res := ApplebyResult{Rounds: make([]ApplebyRound, 0, len(ts.Rounds))}

	for _, r := range ts.Rounds {
		rr := ApplebyRound{
			RoundID: r.RoundID,
			RoundNo: r.RoundNo,
			Applied: ts.ApplebyApplied(r.RoundNo),
			PH:      make(map[int]int, len(r.Players)),
		}

		if rr.Applied {
			// Fold the trail accrued so far into this round's handicaps.
			for p := range start {
				ph[p] = (start[p] + cum[p]).Round()
			}
		}
		for id := range r.Players {
			if v, ok := ph[id]; ok {
				rr.PH[id] = v
			}
		}

		if !rr.Applied || !r.Usable() {
			res.Rounds = append(res.Rounds, rr)
			continue
		}

		type entry struct {
			id    int
			total int
		}
		eligible := make([]entry, 0, len(r.Players))
		for id, p := range r.Players {
			if !p.Playing || !p.Complete() {
				continue
			}
			pars, _ := r.ParsFor(p.Tee)
			eligible = append(eligible, entry{id, RoundScore(p.Scores, pars, rr.PH[id]).Points})
		}
		if len(eligible) < applebyCutoffRank {
			res.Rounds = append(res.Rounds, rr)
			continue
		}

		totals := make([]int, len(eligible))
		for i, e := range eligible {
			totals[i] = e.total
		}
		sort.Sort(sort.Reverse(sort.IntSlice(totals)))
		rr.Cutoff = totals[applebyCutoffRank-1]
		rr.HasCutoff = true

		rr.Adjust = make(map[int]ApplebyAdjust, len(eligible))
		for _, e := range eligible {
			raw := Tenths(rr.Cutoff - e.total)
			next := clampTenths(cum[e.id]+raw, applebyFloor, applebyCeil)
			adj := ApplebyAdjust{
				Score:      e.total,
				RawStep:    raw,
				Step:       next - cum[e.id],
				Cumulative: next,
			}
			adj.Capped = adj.Step != adj.RawStep
			cum[e.id] = next
			rr.Adjust[e.id] = adj
		}

		res.Rounds = append(res.Rounds, rr)
	}

	res.Cumulative = cum
	return res
}

func clampTenths(t, lo, hi Tenths) Tenths {
	if t < lo {
		return lo
	}
	if t > hi {
		return hi
	}
	return t
}
