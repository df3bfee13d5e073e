// Package metrics exposes prometheus counters for the interesting write
// paths: score entry and handicap recalculation.
package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ScoreUpserts counts per-hole score rows written.
	ScoreUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourapi_score_upserts_total",
		Help: "Number of per-hole score rows upserted.",
	})

	// RecalcRuns counts recalculation invocations by algorithm and mode.
	RecalcRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourapi_recalc_runs_total",
		Help: "Number of handicap recalculation runs.",
	}, []string{"algorithm", "mode"})

	// RecalcUpserts counts playing-handicap rows written by commits.
	RecalcUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourapi_recalc_upserts_total",
		Help: "Number of playing-handicap rows upserted by recalculation commits.",
	})
)

// Handler serves the prometheus scrape endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
