package handlers

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/fairwaygolf/tourapi/models"
	"github.com/fairwaygolf/tourapi/scoring"
)

// This file is the only place store rows become scoring inputs. The core
// works on strict value types; every nullable column and join shape is
// normalized here, before any arithmetic runs, so the recalculators always
// see a fully materialized, globally ordered view of the tour.

// loadPars fetches and groups par cards for a set of courses. A tee card is
// only usable when all 18 holes are present exactly once; partial cards are
// dropped so downstream treats the tee as missing rather than zero-filled.
func (h *Handler) loadPars(ctx context.Context, courseIDs []int) (map[int]map[string][scoring.Holes]scoring.HolePar, error) {
	out := map[int]map[string][scoring.Holes]scoring.HolePar{}
	if len(courseIDs) == 0 {
		return out, nil
	}

	var rows []models.Par
	err := h.db.NewSelect().Model(&rows).
		Where("course_id IN (?)", bun.In(courseIDs)).
		OrderExpr("course_id ASC, tee ASC, hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pars: %w", err)
	}

	type teeKey struct {
		course int
		tee    string
	}
	cards := map[teeKey]*[scoring.Holes]scoring.HolePar{}
	counts := map[teeKey]int{}
	for _, p := range rows {
		if p.HoleNumber < 1 || p.HoleNumber > scoring.Holes {
			continue
		}
		k := teeKey{p.CourseID, p.Tee}
		card, ok := cards[k]
		if !ok {
			card = &[scoring.Holes]scoring.HolePar{}
			cards[k] = card
		}
		if card[p.HoleNumber-1].Number == 0 {
			counts[k]++
		}
		card[p.HoleNumber-1] = scoring.HolePar{
			Number:      p.HoleNumber,
			Par:         p.Par,
			StrokeIndex: p.StrokeIndex,
		}
	}
	for k, card := range cards {
		if counts[k] != scoring.Holes {
			continue
		}
		if out[k.course] == nil {
			out[k.course] = map[string][scoring.Holes]scoring.HolePar{}
		}
		out[k.course][k.tee] = *card
	}
	return out, nil
}

// loadStarting resolves every player's exact starting handicap for a tour:
// the tour_players override when present, otherwise the global default.
func (h *Handler) loadStarting(ctx context.Context, tourID int) (map[int]scoring.Tenths, error) {
	var players []models.Player
	if err := h.db.NewSelect().Model(&players).Scan(ctx); err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}

	var overrides []models.TourPlayer
	err := h.db.NewSelect().Model(&overrides).Where("tour_id = ?", tourID).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tour players: %w", err)
	}

	starting := make(map[int]scoring.Tenths, len(players))
	for _, p := range players {
		starting[p.PlayerID] = scoring.TenthsOf(p.Handicap)
	}
	for _, tp := range overrides {
		if tp.StartingHandicap != nil {
			starting[tp.PlayerID] = scoring.TenthsOf(*tp.StartingHandicap)
		}
	}
	return starting, nil
}

// buildRoundSnapshot assembles one round's core input from its rows.
func buildRoundSnapshot(
	round *models.Round,
	pars map[string][scoring.Holes]scoring.HolePar,
	participants []models.RoundPlayer,
	scores []models.Score,
) *scoring.RoundSnapshot {
	snap := &scoring.RoundSnapshot{
		RoundID: round.RoundID,
		RoundNo: round.RoundNo,
		Pars:    pars,
		Players: map[int]*scoring.Participant{},
	}
	if snap.Pars == nil {
		snap.Pars = map[string][scoring.Holes]scoring.HolePar{}
	}

	for _, rp := range participants {
		snap.Players[rp.PlayerID] = &scoring.Participant{
			PlayerID: rp.PlayerID,
			Playing:  rp.Playing,
			Tee:      rp.Tee,
			Handicap: scoring.TenthsOf(rp.PlayingHandicap),
		}
	}

	for _, s := range scores {
		p, ok := snap.Players[s.PlayerID]
		if !ok || s.HoleNumber < 1 || s.HoleNumber > scoring.Holes {
			continue
		}
		hs := scoring.HoleScore{Entered: true, Pickup: s.Pickup}
		if s.Strokes != nil {
			hs.Strokes = *s.Strokes
		}
		if !hs.Pickup && hs.Strokes < 1 {
			// A row with neither strokes nor pickup carries no information.
			continue
		}
		p.Scores[s.HoleNumber-1] = hs
	}

	return snap
}

// loadTourSnapshot materializes everything the recalculators need for a
// tour, with rounds in tour order.
func (h *Handler) loadTourSnapshot(ctx context.Context, tourID int) (*models.Tour, []models.Round, *scoring.TourSnapshot, error) {
	tour := &models.Tour{}
	if err := h.db.NewSelect().Model(tour).Where("tour_id = ?", tourID).Scan(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("loading tour %d: %w", tourID, err)
	}

	var rounds []models.Round
	err := h.db.NewSelect().Model(&rounds).
		Where("tour_id = ?", tourID).
		OrderExpr("round_no ASC, played_on ASC, created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading rounds: %w", err)
	}

	courseIDs := make([]int, 0, len(rounds))
	roundIDs := make([]int, 0, len(rounds))
	for _, r := range rounds {
		courseIDs = append(courseIDs, r.CourseID)
		roundIDs = append(roundIDs, r.RoundID)
	}

	pars, err := h.loadPars(ctx, courseIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	starting, err := h.loadStarting(ctx, tourID)
	if err != nil {
		return nil, nil, nil, err
	}

	byRound := map[int][]models.RoundPlayer{}
	scoresByRound := map[int][]models.Score{}
	if len(roundIDs) > 0 {
		var participants []models.RoundPlayer
		err = h.db.NewSelect().Model(&participants).
			Where("round_id IN (?)", bun.In(roundIDs)).
			Scan(ctx)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading participation: %w", err)
		}
		for _, rp := range participants {
			byRound[rp.RoundID] = append(byRound[rp.RoundID], rp)
		}

		var scores []models.Score
		err = h.db.NewSelect().Model(&scores).
			Where("round_id IN (?)", bun.In(roundIDs)).
			Scan(ctx)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading scores: %w", err)
		}
		for _, s := range scores {
			scoresByRound[s.RoundID] = append(scoresByRound[s.RoundID], s)
		}
	}

	snap := &scoring.TourSnapshot{
		Starting:      starting,
		Rehandicap:    tour.Rehandicap,
		ApplebyCycle:  tour.ApplebyCycle,
		ApplebyOffset: tour.ApplebyOffset,
	}
	for i := range rounds {
		r := &rounds[i]
		snap.Rounds = append(snap.Rounds,
			buildRoundSnapshot(r, pars[r.CourseID], byRound[r.RoundID], scoresByRound[r.RoundID]))
	}

	return tour, rounds, snap, nil
}

// loadRoundSnapshot materializes a single round.
func (h *Handler) loadRoundSnapshot(ctx context.Context, roundID int) (*models.Round, *scoring.RoundSnapshot, error) {
	round := &models.Round{}
	if err := h.db.NewSelect().Model(round).Where("round_id = ?", roundID).Scan(ctx); err != nil {
		return nil, nil, fmt.Errorf("loading round %d: %w", roundID, err)
	}

	pars, err := h.loadPars(ctx, []int{round.CourseID})
	if err != nil {
		return nil, nil, err
	}

	var participants []models.RoundPlayer
	err = h.db.NewSelect().Model(&participants).Where("round_id = ?", roundID).Scan(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading participation: %w", err)
	}

	var scores []models.Score
	err = h.db.NewSelect().Model(&scores).Where("round_id = ?", roundID).Scan(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading scores: %w", err)
	}

	return round, buildRoundSnapshot(round, pars[round.CourseID], participants, scores), nil
}

// LoadTourSnapshot exposes the snapshot adapter for the admin CLI, which
// recalculates without going through the HTTP surface.
func (h *Handler) LoadTourSnapshot(ctx context.Context, tourID int) (*models.Tour, []models.Round, *scoring.TourSnapshot, error) {
	return h.loadTourSnapshot(ctx, tourID)
}
