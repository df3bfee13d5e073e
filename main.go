package main

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/fairwaygolf/tourapi/config"
	"github.com/fairwaygolf/tourapi/db"
	"github.com/fairwaygolf/tourapi/handlers"
	applog "github.com/fairwaygolf/tourapi/logger"
	"github.com/fairwaygolf/tourapi/metrics"
	mw "github.com/fairwaygolf/tourapi/middleware"
)

//go:embed all:build/*
var embeddedFiles embed.FS

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	h := handlers.New(bdb, cfg.JWTKey())

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/tour/signin", h.Signin)
	e.GET("/metrics", metrics.Handler())

	// Protected – require valid JWT in Authorization header
	tour := e.Group("/tour", mw.JWT(cfg.JWTKey()))

	tour.GET("/tours", h.Tours)
	tour.POST("/tours", h.CreateTour)
	tour.PUT("/tours/:id", h.UpdateTour)
	tour.GET("/tours/:id/players", h.TourPlayers)
	tour.POST("/tours/:id/players", h.AddTourPlayer)
	tour.GET("/tours/:id/rounds", h.TourRounds)
	tour.POST("/tours/:id/rounds", h.CreateRound)
	tour.GET("/tours/:id/standings", h.TourStandings)
	tour.POST("/tours/:id/recalc", h.RecalcSequential)
	tour.POST("/tours/:id/recalc/appleby", h.RecalcAppleby)

	tour.GET("/players", h.Players)
	tour.POST("/players", h.CreatePlayer)
	tour.PUT("/players/:id", h.UpdatePlayer)

	tour.GET("/courses", h.Courses)
	tour.POST("/courses", h.CreateCourse)
	tour.GET("/courses/:id/pars", h.CoursePars)
	tour.PUT("/courses/:id/pars", h.SaveCoursePars)

	tour.PUT("/rounds/:id", h.UpdateRound)
	tour.GET("/rounds/:id/players", h.RoundPlayers)
	tour.PUT("/rounds/:id/players", h.SaveRoundPlayers)
	tour.GET("/rounds/:id/scores", h.RoundScores)
	tour.POST("/rounds/:id/scores", h.SaveScores)
	tour.GET("/rounds/:id/leaderboard", h.RoundLeaderboard)
	tour.POST("/rounds/:id/pairs", h.PairScores)
	tour.POST("/rounds/:id/teams", h.TeamScores)
	tour.GET("/rounds/:id/matches", h.RoundMatches)
	tour.POST("/rounds/:id/matches", h.CreateMatch)
	tour.GET("/rounds/:id/matches/results", h.MatchResults)

	// Strip the "build/" prefix so URLs work correctly
	subFS, err := fs.Sub(embeddedFiles, "build")
	if err != nil {
		logger.Fatal("open embedded build fs failed", zap.Error(err))
	}
	fileServer := http.FileServer(http.FS(subFS))
	e.GET("/*", func(c echo.Context) error {
		path := c.Request().URL.Path

		// Static assets go straight from the embedded build
		if strings.Contains(path, ".") {
			http.StripPrefix("/", fileServer).ServeHTTP(c.Response(), c.Request())
			return nil
		}
		// Everything else falls back to index.html for client-side routing
		indexFile, err := subFS.Open("index.html")
		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}
		defer indexFile.Close()

		return c.Stream(http.StatusOK, "text/html", indexFile)
	})

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
