package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/fairwaygolf/tourapi/metrics"
	"github.com/fairwaygolf/tourapi/models"
	"github.com/fairwaygolf/tourapi/scoring"
)

// RoundScores returns all raw hole scores for a round.
func (h *Handler) RoundScores(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var scores []models.Score
	err = h.db.NewSelect().Model(&scores).
		Where("round_id = ?", roundID).
		OrderExpr("player_id ASC, hole_number ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, scores)
}

type scoreEntry struct {
	PlayerID   int  `json:"playerID"`
	HoleNumber int  `json:"holeNumber"`
	Strokes    *int `json:"strokes"`
	Pickup     bool `json:"pickup"`
	// Clear removes the stored row, returning the hole to "not entered".
	Clear bool `json:"clear,omitempty"`
}

// SaveScores bulk-upserts raw hole scores for a round. Entries are
// overwritten, never merged; a clear entry deletes the row outright so the
// hole reads as not-yet-played rather than zero.
func (h *Handler) SaveScores(c echo.Context) error {
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid round id")
	}

	var entries []scoreEntry
	if err := c.Bind(&entries); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	for _, e := range entries {
		if e.PlayerID == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "playerID is required")
		}
		if e.HoleNumber < 1 || e.HoleNumber > scoring.Holes {
			return echo.NewHTTPError(http.StatusBadRequest, "holeNumber out of range")
		}
		if e.Clear {
			continue
		}
		if e.Strokes == nil && !e.Pickup {
			return echo.NewHTTPError(http.StatusBadRequest, "entry needs strokes, pickup or clear")
		}
		if e.Strokes != nil && *e.Strokes < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "strokes must be positive")
		}
	}

	ctx := c.Request().Context()
	var lastErr error
	for attempt := 0; attempt < 5; attempt++ {
		lastErr = doScoresUpsert(ctx, h.db, roundID, entries)
		if lastErr == nil {
			break
		}
		zap.L().Warn("save scores retry", zap.Int("attempt", attempt+1), zap.Error(lastErr))
		time.Sleep(100 * time.Millisecond)
	}
	if lastErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, lastErr.Error())
	}

	metrics.ScoreUpserts.Add(float64(len(entries)))
	return c.NoContent(http.StatusAccepted)
}

func doScoresUpsert(ctx context.Context, db *bun.DB, roundID int, entries []scoreEntry) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, e := range entries {
		if e.Clear {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM scores WHERE round_id = ? AND player_id = ? AND hole_number = ?`,
				roundID, e.PlayerID, e.HoleNumber,
			)
		} else {
			// A pickup stores no stroke count.
			strokes := e.Strokes
			if e.Pickup {
				strokes = nil
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO scores (round_id, player_id, hole_number, strokes, pickup)
				 VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT (round_id, player_id, hole_number)
				 DO UPDATE SET strokes = EXCLUDED.strokes, pickup = EXCLUDED.pickup`,
				roundID, e.PlayerID, e.HoleNumber, strokes, e.Pickup,
			)
		}
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
