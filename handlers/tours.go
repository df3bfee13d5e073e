package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fairwaygolf/tourapi/models"
)

type tourRequest struct {
	Name             string `json:"name"`
	BestN            int    `json:"bestN"`
	MustIncludeFinal bool   `json:"mustIncludeFinal"`
	TeamBestM        int    `json:"teamBestM"`
	Rehandicap       *bool  `json:"rehandicap"`
	ApplebyCycle     *int   `json:"applebyCycle"`
	ApplebyOffset    int    `json:"applebyOffset"`
	DefaultTee       string `json:"defaultTee"`
}

// Tours returns all tours.
func (h *Handler) Tours(c echo.Context) error {
	var tours []models.Tour
	err := h.db.NewSelect().Model(&tours).OrderExpr("t.tour_id ASC").Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, tours)
}

// CreateTour inserts a new tour.
func (h *Handler) CreateTour(c echo.Context) error {
	var req tourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.BestN < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "bestN must not be negative")
	}
	if req.TeamBestM < 1 {
		req.TeamBestM = 2
	}

	tour := &models.Tour{
		Name:             req.Name,
		BestN:            req.BestN,
		MustIncludeFinal: req.MustIncludeFinal,
		TeamBestM:        req.TeamBestM,
		Rehandicap:       true,
		ApplebyCycle:     3,
		ApplebyOffset:    req.ApplebyOffset,
		DefaultTee:       "white",
	}
	if req.Rehandicap != nil {
		tour.Rehandicap = *req.Rehandicap
	}
	if req.ApplebyCycle != nil {
		tour.ApplebyCycle = *req.ApplebyCycle
	}
	if t := strings.TrimSpace(req.DefaultTee); t != "" {
		tour.DefaultTee = t
	}

	if _, err := h.db.NewInsert().Model(tour).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "tour already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, tour)
}

// UpdateTour updates a tour's competition settings.
func (h *Handler) UpdateTour(c echo.Context) error {
	tourID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	var req tourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tour := &models.Tour{}
	ctx := c.Request().Context()
	if err := h.db.NewSelect().Model(tour).Where("tour_id = ?", tourID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "tour not found")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		tour.Name = name
	}
	if req.BestN >= 0 {
		tour.BestN = req.BestN
	}
	tour.MustIncludeFinal = req.MustIncludeFinal
	if req.TeamBestM >= 1 {
		tour.TeamBestM = req.TeamBestM
	}
	if req.Rehandicap != nil {
		tour.Rehandicap = *req.Rehandicap
	}
	if req.ApplebyCycle != nil {
		tour.ApplebyCycle = *req.ApplebyCycle
	}
	tour.ApplebyOffset = req.ApplebyOffset
	if t := strings.TrimSpace(req.DefaultTee); t != "" {
		tour.DefaultTee = t
	}

	if _, err := h.db.NewUpdate().Model(tour).WherePK().Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tour)
}

type tourPlayerData struct {
	PlayerID         int      `json:"playerID"`
	Name             string   `json:"name"`
	Handicap         float64  `json:"handicap"`
	StartingHandicap *float64 `json:"startingHandicap,omitempty"`
}

// TourPlayers returns the tour's members with their effective starting handicaps.
func (h *Handler) TourPlayers(c echo.Context) error {
	tourID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	type row struct {
		PlayerID         int      `bun:"player_id"`
		Name             string   `bun:"name"`
		Handicap         float64  `bun:"handicap"`
		StartingHandicap *float64 `bun:"starting_handicap"`
	}

	var rows []row
	err = h.db.NewRaw(`
		SELECT p.player_id, p.name, p.handicap, tp.starting_handicap
		FROM tour_players tp
		INNER JOIN players p ON p.player_id = tp.player_id
		WHERE tp.tour_id = ?
		ORDER BY p.name ASC`,
		tourID,
	).Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result := make([]tourPlayerData, len(rows))
	for i, r := range rows {
		result[i] = tourPlayerData{
			PlayerID:         r.PlayerID,
			Name:             r.Name,
			Handicap:         r.Handicap,
			StartingHandicap: r.StartingHandicap,
		}
	}
	return c.JSON(http.StatusOK, result)
}

type tourPlayerRequest struct {
	PlayerID         int      `json:"playerID"`
	StartingHandicap *float64 `json:"startingHandicap"`
}

// AddTourPlayer adds a player to the tour or updates their starting-handicap
// override.
func (h *Handler) AddTourPlayer(c echo.Context) error {
	tourID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	var req tourPlayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PlayerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "playerID is required")
	}

	_, err = h.db.ExecContext(c.Request().Context(),
		`INSERT INTO tour_players (tour_id, player_id, starting_handicap)
		 VALUES (?, ?, ?)
		 ON CONFLICT (tour_id, player_id)
		 DO UPDATE SET starting_handicap = EXCLUDED.starting_handicap`,
		tourID, req.PlayerID, req.StartingHandicap,
	)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusAccepted)
}
