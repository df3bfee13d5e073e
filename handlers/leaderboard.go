package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fairwaygolf/tourapi/models"
	"github.com/fairwaygolf/tourapi/scoring"
)

func (h *Handler) playerNames(ctx context.Context) (map[int]string, error) {
	var players []models.Player
	if err := h.db.NewSelect().Model(&players).Scan(ctx); err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}
	names := make(map[int]string, len(players))
	for _, p := range players {
		names[p.PlayerID] = p.Name
	}
	return names, nil
}

type leaderboardRow struct {
	PlayerID int    `json:"playerID"`
	Name     string `json:"name"`
	Handicap int    `json:"handicap"`
	// Points per hole, null where the hole has not been entered.
	Holes    []*int `json:"holes"`
	Total    int    `json:"total"`
	Complete bool   `json:"complete"`
	Winner   bool   `json:"winner,omitempty"`
}

// RoundLeaderboard returns the individual Stableford table for a round,
// with competition winners marked: everyone scoring at least the total of
// the player ranked at the middle of the field.
func (h *Handler) RoundLeaderboard(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	ctx := c.Request().Context()
	_, snap, err := h.loadRoundSnapshot(ctx, roundID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	names, err := h.playerNames(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rows := make([]leaderboardRow, 0, len(snap.Players))
	completeTotals := []int{}
	for _, p := range snap.Players {
		if !p.Playing {
			continue
		}
		pars, ok := snap.ParsFor(p.Tee)
		if !ok {
			// No card for this tee: the player shows with no points
			// rather than a misleading zero-par score.
			rows = append(rows, leaderboardRow{
				PlayerID: p.PlayerID,
				Name:     names[p.PlayerID],
				Handicap: p.Handicap.Round(),
				Holes:    make([]*int, scoring.Holes),
			})
			continue
		}

		ph := p.Handicap.Round()
		points := scoring.HolePointsFor(p.Scores, pars, ph)
		row := leaderboardRow{
			PlayerID: p.PlayerID,
			Name:     names[p.PlayerID],
			Handicap: ph,
			Holes:    make([]*int, scoring.Holes),
		}
		for i, hp := range points {
			if hp.Known {
				v := hp.Points
				row.Holes[i] = &v
				row.Total += v
			}
		}
		row.Complete = p.Complete()
		if row.Complete {
			completeTotals = append(completeTotals, row.Total)
		}
		rows = append(rows, row)
	}

	if cutoff, ok := scoring.WinnersCutoff(completeTotals); ok {
		for i := range rows {
			if rows[i].Complete && rows[i].Total >= cutoff {
				rows[i].Winner = true
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total == rows[j].Total {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Total > rows[j].Total
	})

	return c.JSON(http.StatusOK, rows)
}

type standingsRow struct {
	PlayerID int    `json:"playerID"`
	Name     string `json:"name"`
	// Rounds holds one entry per tour round in order; null marks rounds
	// the player did not play — a gap, not a zero.
	Rounds []*int `json:"rounds"`
	Total  int    `json:"total"`
}

type standingsResponse struct {
	RoundNos []int          `json:"roundNos"`
	BestN    int            `json:"bestN,omitempty"`
	Players  []standingsRow `json:"players"`
}

// TourStandings returns the tour table: per-player round totals and the
// tour total under the tour's best-N rules.
func (h *Handler) TourStandings(c echo.Context) error {
	tourID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	ctx := c.Request().Context()
	tour, rounds, snap, err := h.loadTourSnapshot(ctx, tourID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	names, err := h.playerNames(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := standingsResponse{BestN: tour.BestN}
	for _, r := range rounds {
		resp.RoundNos = append(resp.RoundNos, r.RoundNo)
	}

	// Every player who appears in any round.
	playerSet := map[int]bool{}
	for _, rs := range snap.Rounds {
		for id := range rs.Players {
			playerSet[id] = true
		}
	}

	for id := range playerSet {
		row := standingsRow{PlayerID: id, Name: names[id]}
		for _, rs := range snap.Rounds {
			p, ok := rs.Players[id]
			if !ok || !p.Playing {
				row.Rounds = append(row.Rounds, nil)
				continue
			}
			pars, ok := rs.ParsFor(p.Tee)
			if !ok {
				row.Rounds = append(row.Rounds, nil)
				continue
			}
			total := scoring.RoundScore(p.Scores, pars, p.Handicap.Round()).Points
			row.Rounds = append(row.Rounds, &total)
		}

		switch {
		case tour.BestN <= 0:
			for _, t := range row.Rounds {
				if t != nil {
					row.Total += *t
				}
			}
		case tour.MustIncludeFinal:
			row.Total = scoring.BestNWithFinal(row.Rounds, tour.BestN)
		default:
			row.Total = scoring.BestN(row.Rounds, tour.BestN)
		}
		resp.Players = append(resp.Players, row)
	}

	sort.Slice(resp.Players, func(i, j int) bool {
		if resp.Players[i].Total == resp.Players[j].Total {
			return resp.Players[i].Name < resp.Players[j].Name
		}
		return resp.Players[i].Total > resp.Players[j].Total
	})

	return c.JSON(http.StatusOK, resp)
}

type teamRequest struct {
	Name    string `json:"name"`
	Members []int  `json:"members"`
}

type teamResult struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// TeamScores computes team best-M-minus-zeros totals for ad-hoc team
// selections within a round. M comes from the tour settings.
func (h *Handler) TeamScores(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var teams []teamRequest
	if err := c.Bind(&teams); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	round, snap, err := h.loadRoundSnapshot(ctx, roundID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	tour := &models.Tour{}
	if err := h.db.NewSelect().Model(tour).Where("tour_id = ?", round.TourID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]teamResult, 0, len(teams))
	for _, team := range teams {
		members := make([][scoring.Holes]scoring.HolePoints, 0, len(team.Members))
		for _, id := range team.Members {
			p, ok := snap.Players[id]
			if !ok || !p.Playing {
				continue
			}
			pars, ok := snap.ParsFor(p.Tee)
			if !ok {
				continue
			}
			members = append(members, scoring.HolePointsFor(p.Scores, pars, p.Handicap.Round()))
		}
		results = append(results, teamResult{
			Name:  team.Name,
			Total: scoring.TeamPoints(members, tour.TeamBestM),
		})
	}

	return c.JSON(http.StatusOK, results)
}

type pairRequest struct {
	Name    string `json:"name"`
	PlayerA int    `json:"playerA"`
	PlayerB int    `json:"playerB"`
}

type pairResult struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// PairScores computes better-ball totals for ad-hoc pair selections within
// a round. Each member's points are computed off their own handicap; the
// pair takes the better result per hole.
func (h *Handler) PairScores(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var pairs []pairRequest
	if err := c.Bind(&pairs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	_, snap, err := h.loadRoundSnapshot(ctx, roundID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	points := func(id int) [scoring.Holes]scoring.HolePoints {
		p, ok := snap.Players[id]
		if !ok || !p.Playing {
			return [scoring.Holes]scoring.HolePoints{}
		}
		pars, ok := snap.ParsFor(p.Tee)
		if !ok {
			return [scoring.Holes]scoring.HolePoints{}
		}
		return scoring.HolePointsFor(p.Scores, pars, p.Handicap.Round())
	}

	results := make([]pairResult, 0, len(pairs))
	for _, pair := range pairs {
		results = append(results, pairResult{
			Name:  pair.Name,
			Total: scoring.PairPoints(points(pair.PlayerA), points(pair.PlayerB)),
		})
	}

	return c.JSON(http.StatusOK, results)
}
