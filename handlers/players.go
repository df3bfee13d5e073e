package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fairwaygolf/tourapi/models"
)

type playerRequest struct {
	Name     string   `json:"name"`
	Handicap *float64 `json:"handicap"`
}

// Players returns all players.
func (h *Handler) Players(c echo.Context) error {
	var players []models.Player
	err := h.db.NewSelect().Model(&players).OrderExpr("p.name ASC").Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, players)
}

// CreatePlayer inserts a new player with their global default handicap.
func (h *Handler) CreatePlayer(c echo.Context) error {
	var req playerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	player := &models.Player{Name: req.Name}
	if req.Handicap != nil {
		if *req.Handicap < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "handicap must not be negative")
		}
		player.Handicap = *req.Handicap
	}

	if _, err := h.db.NewInsert().Model(player).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "player already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, player)
}

// UpdatePlayer updates a player's name or global handicap.
func (h *Handler) UpdatePlayer(c echo.Context) error {
	playerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid player id")
	}

	var req playerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	player := &models.Player{}
	if err := h.db.NewSelect().Model(player).Where("player_id = ?", playerID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "player not found")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		player.Name = name
	}
	if req.Handicap != nil {
		if *req.Handicap < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "handicap must not be negative")
		}
		player.Handicap = *req.Handicap
	}

	if _, err := h.db.NewUpdate().Model(player).WherePK().Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, player)
}
