package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fairwaygolf/tourapi/models"
	"github.com/fairwaygolf/tourapi/scoring"
)

type matchRequest struct {
	SideA    string `json:"sideA"`
	SideB    string `json:"sideB"`
	PlayerA1 int    `json:"playerA1"`
	PlayerA2 *int   `json:"playerA2"`
	PlayerB1 int    `json:"playerB1"`
	PlayerB2 *int   `json:"playerB2"`
}

// RoundMatches returns the matchplay pairings for a round.
func (h *Handler) RoundMatches(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var matches []models.Match
	err = h.db.NewSelect().Model(&matches).
		Where("round_id = ?", roundID).
		OrderExpr("match_id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, matches)
}

// CreateMatch adds a matchplay pairing to a round.
func (h *Handler) CreateMatch(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var req matchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.SideA = strings.TrimSpace(req.SideA)
	req.SideB = strings.TrimSpace(req.SideB)
	if req.SideA == "" || req.SideB == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "both side names are required")
	}
	if req.PlayerA1 == 0 || req.PlayerB1 == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "each side needs at least one player")
	}

	match := &models.Match{
		RoundID:  roundID,
		SideA:    req.SideA,
		SideB:    req.SideB,
		PlayerA1: req.PlayerA1,
		PlayerA2: req.PlayerA2,
		PlayerB1: req.PlayerB1,
		PlayerB2: req.PlayerB2,
	}
	if _, err := h.db.NewInsert().Model(match).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, match)
}

type matchResultData struct {
	MatchID int    `json:"matchID"`
	SideA   string `json:"sideA"`
	SideB   string `json:"sideB"`
	// Holes is the per-hole outcome: "A", "B", "half", "" for no data and
	// "-" for holes after the match was decided.
	Holes   []string `json:"holes"`
	Thru    int      `json:"thru"`
	Diff    int      `json:"diff"`
	Decided int      `json:"decided,omitempty"`
	Final   string   `json:"final"`
	Live    string   `json:"live"`
}

// sidePoints resolves one side's per-hole points: better ball for a pair,
// the nominated player's points for a single. A missing participation row
// leaves every hole unknown.
func sidePoints(snap *scoring.RoundSnapshot, p1 int, p2 *int) [scoring.Holes]scoring.HolePoints {
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

	a := points(p1)
	if p2 == nil {
		return a
	}
	return scoring.BestBall(a, points(*p2))
}

func holeLabels(m scoring.Match) []string {
	labels := make([]string, scoring.Holes)
	for i, hr := range m.Holes {
		switch hr {
		case scoring.HoleSideA:
			labels[i] = "A"
		case scoring.HoleSideB:
			labels[i] = "B"
		case scoring.HoleHalved:
			labels[i] = "half"
		case scoring.HoleBlank:
			labels[i] = "-"
		}
	}
	return labels
}

// MatchResults resolves every match in a round from the entered scores.
func (h *Handler) MatchResults(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	ctx := c.Request().Context()
	var matches []models.Match
	err = h.db.NewSelect().Model(&matches).
		Where("round_id = ?", roundID).
		OrderExpr("match_id ASC").
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	_, snap, err := h.loadRoundSnapshot(ctx, roundID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]matchResultData, 0, len(matches))
	for _, match := range matches {
		m := scoring.PlayMatch(
			sidePoints(snap, match.PlayerA1, match.PlayerA2),
			sidePoints(snap, match.PlayerB1, match.PlayerB2),
		)
		results = append(results, matchResultData{
			MatchID: match.MatchID,
			SideA:   match.SideA,
			SideB:   match.SideB,
			Holes:   holeLabels(m),
			Thru:    m.Thru,
			Diff:    m.Diff,
			Decided: m.Decided,
			Final:   m.FinalText(match.SideA, match.SideB),
			Live:    m.LiveText(match.SideA, match.SideB),
		})
	}

	return c.JSON(http.StatusOK, results)
}
