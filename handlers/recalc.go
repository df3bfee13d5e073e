package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/fairwaygolf/tourapi/metrics"
	"github.com/fairwaygolf/tourapi/models"
	"github.com/fairwaygolf/tourapi/scoring"
)

type recalcRoundData struct {
	RoundID      int         `json:"roundID"`
	RoundNo      int         `json:"roundNo"`
	Handicaps    map[int]int `json:"handicaps"`
	Totals       map[int]int `json:"totals,omitempty"`
	FieldAverage int         `json:"fieldAverage,omitempty"`
	Advanced     bool        `json:"advanced"`
	Halted       bool        `json:"halted,omitempty"`
}

type recalcResponse struct {
	Mode      string            `json:"mode"`
	Rounds    []recalcRoundData `json:"rounds"`
	Committed int               `json:"committed,omitempty"`
}

// recalcMode validates the ?mode query parameter; preview is the default.
func recalcMode(c echo.Context) (string, error) {
	mode := c.QueryParam("mode")
	switch mode {
	case "", "preview":
		return "preview", nil
	case "commit":
		return "commit", nil
	default:
		return "", echo.NewHTTPError(http.StatusBadRequest, "mode must be preview or commit")
	}
}

// commitHandicaps writes the computed playing handicaps back onto the
// participation rows in one transaction. Only players who already have a
// row for the round are touched; the upsert keeps their playing flag and
// tee as entered.
func (h *Handler) commitHandicaps(ctx context.Context, rounds []recalcRoundData) (int, error) {
	written := 0
	err := h.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, rd := range rounds {
			for playerID, ph := range rd.Handicaps {
				res, err := tx.NewUpdate().Model((*models.RoundPlayer)(nil)).
					Set("playing_handicap = ?", float64(ph)).
					Where("round_id = ? AND player_id = ?", rd.RoundID, playerID).
					Exec(ctx)
				if err != nil {
					return err
				}
				if n, err := res.RowsAffected(); err == nil {
					written += int(n)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// RecalcSequential recomputes the tour's playing handicaps round by round
// against the field average. Preview returns the computed values; commit
// writes them onto the participation rows.
func (h *Handler) RecalcSequential(c echo.Context) error {
	tourID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}
	mode, err := recalcMode(c)
	if err != nil {
		return err
	}

	// One recalculation at a time; two concurrent commits interleaving
	// their writes would leave the rows half from each run.
	h.recalcMu.Lock()
	defer h.recalcMu.Unlock()

	ctx := c.Request().Context()
	_, _, ts, err := h.loadTourSnapshot(ctx, tourID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	res := scoring.Recalculate(ts)
	resp := recalcResponse{Mode: mode, Rounds: make([]recalcRoundData, 0, len(res.Rounds))}
	for _, r := range res.Rounds {
		resp.Rounds = append(resp.Rounds, recalcRoundData{
			RoundID:      r.RoundID,
			RoundNo:      r.RoundNo,
			Handicaps:    r.PH,
			Totals:       r.Totals,
			FieldAverage: r.FieldAverage,
			Advanced:     r.Advanced,
			Halted:       r.Halted,
		})
	}

	if mode == "commit" {
		written, err := h.commitHandicaps(ctx, resp.Rounds)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		resp.Committed = written
		metrics.RecalcUpserts.Add(float64(written))
		zap.L().Info("sequential recalc committed",
			zap.Int("tour", tourID), zap.Int("rows", written))
	}

	metrics.RecalcRuns.WithLabelValues("sequential", mode).Inc()
	return c.JSON(http.StatusOK, resp)
}

type applebyAdjustData struct {
	Score      int     `json:"score"`
	Step       float64 `json:"step"`
	Cumulative float64 `json:"cumulative"`
	Capped     bool    `json:"capped,omitempty"`
}

type applebyRoundData struct {
	RoundID   int                       `json:"roundID"`
	RoundNo   int                       `json:"roundNo"`
	Applied   bool                      `json:"applied"`
	Handicaps map[int]int               `json:"handicaps"`
	Cutoff    int                       `json:"cutoff,omitempty"`
	HasCutoff bool                      `json:"hasCutoff"`
	Adjust    map[int]applebyAdjustData `json:"adjust,omitempty"`
}

type applebyResponse struct {
	Mode       string             `json:"mode"`
	Rounds     []applebyRoundData `json:"rounds"`
	Cumulative map[int]float64    `json:"cumulative"`
	Committed  int                `json:"committed,omitempty"`
}

// RecalcAppleby recomputes the tour's playing handicaps with the segmented
// cumulative-adjustment algorithm. Preview returns the full trail; commit
// writes the per-round handicaps onto the participation rows.
func (h *Handler) RecalcAppleby(c echo.Context) error {
	tourID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}
	mode, err := recalcMode(c)
	if err != nil {
		return err
	}

	h.recalcMu.Lock()
	defer h.recalcMu.Unlock()

	ctx := c.Request().Context()
	_, _, ts, err := h.loadTourSnapshot(ctx, tourID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	res := scoring.RecalculateAppleby(ts)
	resp := applebyResponse{
		Mode:       mode,
		Rounds:     make([]applebyRoundData, 0, len(res.Rounds)),
		Cumulative: make(map[int]float64, len(res.Cumulative)),
	}
	for p, t := range res.Cumulative {
		resp.Cumulative[p] = t.Float()
	}
	for _, r := range res.Rounds {
		rd := applebyRoundData{
			RoundID:   r.RoundID,
			RoundNo:   r.RoundNo,
			Applied:   r.Applied,
			Handicaps: r.PH,
			Cutoff:    r.Cutoff,
			HasCutoff: r.HasCutoff,
		}
		if len(r.Adjust) > 0 {
			rd.Adjust = make(map[int]applebyAdjustData, len(r.Adjust))
			for p, a := range r.Adjust {
				rd.Adjust[p] = applebyAdjustData{
					Score:      a.Score,
					Step:       a.Step.Float(),
					Cumulative: a.Cumulative.Float(),
					Capped:     a.Capped,
				}
			}
		}
		resp.Rounds = append(resp.Rounds, rd)
	}

	if mode == "commit" {
		rounds := make([]recalcRoundData, 0, len(resp.Rounds))
		for _, r := range resp.Rounds {
			rounds = append(rounds, recalcRoundData{RoundID: r.RoundID, Handicaps: r.Handicaps})
		}
		written, err := h.commitHandicaps(ctx, rounds)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		resp.Committed = written
		metrics.RecalcUpserts.Add(float64(written))
		zap.L().Info("appleby recalc committed",
			zap.Int("tour", tourID), zap.Int("rows", written))
	}

	metrics.RecalcRuns.WithLabelValues("appleby", mode).Inc()
	return c.JSON(http.StatusOK, resp)
}
