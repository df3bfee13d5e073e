package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fairwaygolf/tourapi/models"
)

type roundRequest struct {
	RoundNo  int    `json:"roundNo"`
	PlayedOn string `json:"playedOn"`
	CourseID int    `json:"courseID"`
	Format   string `json:"format"`
}

func validFormat(f string) bool {
	switch f {
	case models.FormatStableford, models.FormatMatchplay, models.FormatBetterball:
		return true
	}
	return false
}

// TourRounds returns a tour's rounds in tour order: round_no, then play
// date, then creation time. Everything downstream of this ordering depends
// on it, so no handler ever selects rounds without it.
func (h *Handler) TourRounds(c echo.Context) error {
	tourID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	var rounds []models.Round
	err = h.db.NewSelect().Model(&rounds).
		Where("tour_id = ?", tourID).
		OrderExpr("round_no ASC, played_on ASC, created_at ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rounds)
}

// CreateRound inserts a new round into a tour.
func (h *Handler) CreateRound(c echo.Context) error {
	tourID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	var req roundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.RoundNo < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "roundNo must be positive")
	}
	if req.PlayedOn == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "playedOn is required")
	}
	if req.CourseID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "courseID is required")
	}
	if req.Format == "" {
		req.Format = models.FormatStableford
	}
	if !validFormat(req.Format) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown format")
	}

	round := &models.Round{
		TourID:   tourID,
		RoundNo:  req.RoundNo,
		PlayedOn: req.PlayedOn,
		CourseID: req.CourseID,
		Format:   req.Format,
	}
	if _, err := h.db.NewInsert().Model(round).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "round number already used in this tour")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, round)
}

// UpdateRound updates a round's date, course or format.
func (h *Handler) UpdateRound(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var req roundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	round := &models.Round{}
	if err := h.db.NewSelect().Model(round).Where("round_id = ?", roundID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "round not found")
	}

	if req.RoundNo >= 1 {
		round.RoundNo = req.RoundNo
	}
	if req.PlayedOn != "" {
		round.PlayedOn = req.PlayedOn
	}
	if req.CourseID != 0 {
		round.CourseID = req.CourseID
	}
	if req.Format != "" {
		if !validFormat(req.Format) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown format")
		}
		round.Format = req.Format
	}

	if _, err := h.db.NewUpdate().Model(round).WherePK().Exec(ctx); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "round number already used in this tour")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, round)
}

// RoundPlayers returns the round's participation rows.
func (h *Handler) RoundPlayers(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var rows []models.RoundPlayer
	err = h.db.NewSelect().Model(&rows).
		Where("round_id = ?", roundID).
		OrderExpr("player_id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

type roundPlayerRequest struct {
	PlayerID        int      `json:"playerID"`
	Playing         bool     `json:"playing"`
	Tee             string   `json:"tee"`
	PlayingHandicap *float64 `json:"playingHandicap"`
}

// SaveRoundPlayers bulk-upserts participation rows. The playing handicap is
// only written when the request carries one; recalculation owns it otherwise.
func (h *Handler) SaveRoundPlayers(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var rows []roundPlayerRequest
	if err := c.Bind(&rows); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	// Rows with no tee fall back to the tour's default.
	defaultTee := "white"
	err = h.db.NewRaw(`
		SELECT t.default_tee FROM rounds rd
		INNER JOIN tours t ON t.tour_id = rd.tour_id
		WHERE rd.round_id = ?`, roundID,
	).Scan(ctx, &defaultTee)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "round not found")
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, r := range rows {
		if r.PlayerID == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "playerID is required")
		}
		tee := strings.TrimSpace(r.Tee)
		if tee == "" {
			tee = defaultTee
		}
		if r.PlayingHandicap != nil {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO round_players (round_id, player_id, playing, playing_handicap, tee)
				 VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT (round_id, player_id)
				 DO UPDATE SET playing = EXCLUDED.playing, playing_handicap = EXCLUDED.playing_handicap, tee = EXCLUDED.tee`,
				roundID, r.PlayerID, r.Playing, *r.PlayingHandicap, tee,
			)
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO round_players (round_id, player_id, playing, playing_handicap, tee)
				 VALUES (?, ?, ?, 0, ?)
				 ON CONFLICT (round_id, player_id)
				 DO UPDATE SET playing = EXCLUDED.playing, tee = EXCLUDED.tee`,
				roundID, r.PlayerID, r.Playing, tee,
			)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if err = tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	return c.NoContent(http.StatusAccepted)
}
