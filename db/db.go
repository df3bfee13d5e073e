package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/fairwaygolf/tourapi/config"
	"github.com/fairwaygolf/tourapi/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Tour)(nil),
		(*models.Player)(nil),
		(*models.TourPlayer)(nil),
		(*models.Course)(nil),
		(*models.Par)(nil),
		(*models.Round)(nil),
		(*models.RoundPlayer)(nil),
		(*models.Score)(nil),
		(*models.Match)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'tour_players_no_dupes') THEN ALTER TABLE tour_players ADD CONSTRAINT tour_players_no_dupes UNIQUE (tour_id, player_id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'pars_no_dupes') THEN ALTER TABLE pars ADD CONSTRAINT pars_no_dupes UNIQUE (course_id, tee, hole_number); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'rounds_no_dupes') THEN ALTER TABLE rounds ADD CONSTRAINT rounds_no_dupes UNIQUE (tour_id, round_no); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'round_players_no_dupes') THEN ALTER TABLE round_players ADD CONSTRAINT round_players_no_dupes UNIQUE (round_id, player_id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'scores_no_dupes') THEN ALTER TABLE scores ADD CONSTRAINT scores_no_dupes UNIQUE (round_id, player_id, hole_number); END IF; END $$`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}
