// Package scoring implements the tour's competition arithmetic: net
// Stableford hole scoring, matchplay resolution, round/tour aggregation and
// the two handicap recalculation algorithms. Everything here is pure and
// total — degenerate input degrades to a defined fallback value, never an
// error. Callers build snapshots from store rows first (see handlers) so the
// package only ever sees strict value types.
package scoring

import "math"

// Holes is the number of holes in a round. All per-hole arrays are indexed
// 0..17 for holes 1..18.
const Holes = 18

// HoleScore is one player's raw result on one hole. Entered distinguishes
// "not yet played" from a real score; a pickup is entered but scores nothing.
type HoleScore struct {
	Strokes int
	Pickup  bool
	Entered bool
}

// HolePar is the par and stroke index for one hole of a course/tee.
type HolePar struct {
	Number      int
	Par         int
	StrokeIndex int
}

// HolePoints is a resolved per-hole Stableford value for one side of a match.
// Known is false when the underlying raw score is missing.
type HolePoints struct {
	Points int
	Known  bool
}

// Tenths is an exact one-decimal value stored as tenths, e.g. 8.3 is
// Tenths(83). The Appleby trail uses it to keep cumulative adjustments free
// of float drift.
type Tenths int

// TenthsOf converts a float to the nearest tenth.
func TenthsOf(f float64) Tenths {
	return Tenths(math.Floor(f*10 + 0.5))
}

// Float returns the decimal value.
func (t Tenths) Float() float64 { return float64(t) / 10 }

// Round rounds half-up to the nearest whole number.
func (t Tenths) Round() int {
	return RoundHalfUp(t.Float())
}

// RoundHalfUp rounds to the nearest integer with .5 going up.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Participant is one player's participation record for a round.
type Participant struct {
	PlayerID int
	Playing  bool
	Tee      string
	// Handicap is the stored playing handicap for the round, kept at one
	// decimal so the Appleby trail survives a round trip through the store.
	Handicap Tenths
	Scores   [Holes]HoleScore
}

// Complete reports whether every hole has an entered score. Pickups count.
func (p *Participant) Complete() bool {
	for _, s := range p.Scores {
		if !s.Entered {
			return false
		}
	}
	return true
}

// RoundSnapshot is one round's fully materialized inputs. Players holds one
// entry per participation row; absence of a key is the "no row" lifecycle
// state, distinct from a row with Playing=false.
type RoundSnapshot struct {
	RoundID int
	RoundNo int
	// Pars is keyed by tee. An empty map means the round has no usable
	// par/stroke-index data and must not advance recalculation.
	Pars    map[string][Holes]HolePar
	Players map[int]*Participant
}

// ParsFor resolves the par table for a tee. When the round has pars for
// exactly one tee it serves every participant, matching how courses with a
// single published card behave.
func (r *RoundSnapshot) ParsFor(tee string) ([Holes]HolePar, bool) {
	if p, ok := r.Pars[tee]; ok {
		return p, true
	}
	if len(r.Pars) == 1 {
		for _, p := range r.Pars {
			return p, true
		}
	}
	return [Holes]HolePar{}, false
}

// Usable reports whether every playing participant has resolvable par data.
// An unusable round is skipped by the recalculators, never scored as zero.
func (r *RoundSnapshot) Usable() bool {
	if len(r.Pars) == 0 {
		return false
	}
	for _, p := range r.Players {
		if !p.Playing {
			continue
		}
		if _, ok := r.ParsFor(p.Tee); !ok {
			return false
		}
	}
	return true
}

// TourSnapshot is the globally ordered view of a tour that the recalculators
// require: Rounds is ordered by round_no, then play date, then creation time.
type TourSnapshot struct {
	Rounds []*RoundSnapshot
	// Starting is each player's exact starting handicap (tour override if
	// present, otherwise the global default).
	Starting map[int]Tenths
	// Rehandicap disabled forces every playing handicap back to the
	// starting handicap.
	Rehandicap bool
	// ApplebyCycle/ApplebyOffset describe the recurring cycle of rounds
	// reserved for other formats: round_no n is excluded from Appleby
	// adjustment when n % ApplebyCycle == ApplebyOffset % ApplebyCycle.
	ApplebyCycle  int
	ApplebyOffset int
}

// ApplebyApplied reports whether the Appleby adjustment runs at round n.
func (ts *TourSnapshot) ApplebyApplied(roundNo int) bool {
	if ts.ApplebyCycle <= 0 {
		return true
	}
	return roundNo%ts.ApplebyCycle != ts.ApplebyOffset%ts.ApplebyCycle
}
