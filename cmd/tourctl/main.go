// cmd/tourctl is the admin CLI: organizer accounts, demo data and
// offline handicap recalculation.
//
// Usage:
//
//	go run ./cmd/tourctl adduser --username mike --password testing
//	go run ./cmd/tourctl seed
//	go run ./cmd/tourctl recalc --tour 1 --appleby
package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/fairwaygolf/tourapi/config"
	bundb "github.com/fairwaygolf/tourapi/db"
	"github.com/fairwaygolf/tourapi/handlers"
	"github.com/fairwaygolf/tourapi/models"
	"github.com/fairwaygolf/tourapi/scoring"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tourctl",
		Short: "Tour admin tooling",
	}

	var username, password string
	adduserCmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create or update an organizer account",
		Run: func(cmd *cobra.Command, args []string) {
			if username == "" || password == "" {
				log.Fatal("both --username and --password are required")
			}
			hash, err := handlers.HashPasswordForUser(username, password)
			if err != nil {
				log.Fatal("hash password:", err)
			}

			db := open()
			defer db.Close()

			user := &models.User{Username: username, Password: hash}
			_, err = db.NewInsert().Model(user).
				On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password").
				Exec(context.Background())
			if err != nil {
				log.Fatal("insert user:", err)
			}
			fmt.Printf("user %q saved\n", username)
		},
	}
	adduserCmd.Flags().StringVar(&username, "username", "", "username (required)")
	adduserCmd.Flags().StringVar(&password, "password", "", "plain-text password (required)")

	var seedValue int64
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a demo tour with players, rounds and scores",
		Run: func(cmd *cobra.Command, args []string) {
			db := open()
			defer db.Close()
			if err := seed(context.Background(), db, seedValue); err != nil {
				log.Fatal("seed:", err)
			}
		},
	}
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "faker seed (0 = random)")

	var tourID int
	var appleby, commit bool
	recalcCmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recalculate playing handicaps for a tour",
		Run: func(cmd *cobra.Command, args []string) {
			if tourID == 0 {
				log.Fatal("--tour is required")
			}
			db := open()
			defer db.Close()
			if err := recalc(context.Background(), db, tourID, appleby, commit); err != nil {
				log.Fatal("recalc:", err)
			}
		},
	}
	recalcCmd.Flags().IntVar(&tourID, "tour", 0, "tour id (required)")
	recalcCmd.Flags().BoolVar(&appleby, "appleby", false, "use the Appleby algorithm")
	recalcCmd.Flags().BoolVar(&commit, "commit", false, "write the computed handicaps back")

	rootCmd.AddCommand(adduserCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(recalcCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func open() *bun.DB {
	cfg := config.Load()
	db := bundb.Setup(cfg)
	if err := bundb.CreateTables(context.Background(), db); err != nil {
		log.Fatal("create tables:", err)
	}
	return db
}

// seed loads one demo tour: a course with two tee cards, a dozen players
// and four rounds of plausible scores. Safe to re-run; every insert is an
// upsert on the natural key.
func seed(ctx context.Context, db *bun.DB, seedValue int64) error {
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	faker := gofakeit.New(uint64(seedValue))

	course := &models.Course{Name: "Demo Links"}
	if _, err := db.NewInsert().Model(course).
		On("CONFLICT (name) DO UPDATE SET name = EXCLUDED.name").
		Returning("course_id").Exec(ctx); err != nil {
		return fmt.Errorf("course: %w", err)
	}

	// Two tee cards off the same pars, stroke indices a permutation of
	// 1..18 within each tee.
	indices := make([]int, scoring.Holes)
	for i := range indices {
		indices[i] = i + 1
	}
	for _, tee := range []string{"white", "yellow"} {
		faker.ShuffleInts(indices)
		for hole := 1; hole <= scoring.Holes; hole++ {
			par := &models.Par{
				CourseID:    course.CourseID,
				Tee:         tee,
				HoleNumber:  hole,
				Par:         faker.Number(3, 5),
				StrokeIndex: indices[hole-1],
			}
			if _, err := db.NewInsert().Model(par).
				On("CONFLICT (course_id, tee, hole_number) DO UPDATE SET par = EXCLUDED.par, stroke_index = EXCLUDED.stroke_index").
				Exec(ctx); err != nil {
				return fmt.Errorf("par: %w", err)
			}
		}
	}

	tour := &models.Tour{
		Name:       fmt.Sprintf("Demo Tour %d", faker.Year()),
		BestN:      3,
		TeamBestM:  2,
		Rehandicap: true,
		DefaultTee: "white",
	}
	if _, err := db.NewInsert().Model(tour).
		On("CONFLICT (name) DO UPDATE SET name = EXCLUDED.name").
		Returning("tour_id").Exec(ctx); err != nil {
		return fmt.Errorf("tour: %w", err)
	}

	players := make([]*models.Player, 0, 12)
	for i := 0; i < 12; i++ {
		p := &models.Player{
			Name:     faker.Name(),
			Handicap: float64(faker.Number(40, 280)) / 10,
		}
		if _, err := db.NewInsert().Model(p).
			On("CONFLICT (name) DO UPDATE SET handicap = EXCLUDED.handicap").
			Returning("player_id").Exec(ctx); err != nil {
			return fmt.Errorf("player: %w", err)
		}
		players = append(players, p)
		tp := &models.TourPlayer{TourID: tour.TourID, PlayerID: p.PlayerID}
		if _, err := db.NewInsert().Model(tp).
			On("CONFLICT (tour_id, player_id) DO NOTHING").
			Exec(ctx); err != nil {
			return fmt.Errorf("tour player: %w", err)
		}
	}

	for no := 1; no <= 4; no++ {
		round := &models.Round{
			TourID:   tour.TourID,
			RoundNo:  no,
			PlayedOn: time.Now().AddDate(0, 0, no-4).Format("2006-01-02"),
			CourseID: course.CourseID,
			Format:   models.FormatStableford,
		}
		if _, err := db.NewInsert().Model(round).
			On("CONFLICT (tour_id, round_no) DO UPDATE SET played_on = EXCLUDED.played_on").
			Returning("round_id").Exec(ctx); err != nil {
			return fmt.Errorf("round: %w", err)
		}

		for _, p := range players {
			rp := &models.RoundPlayer{
				RoundID:         round.RoundID,
				PlayerID:        p.PlayerID,
				Playing:         true,
				PlayingHandicap: float64(int(p.Handicap + 0.5)),
				Tee:             "white",
			}
			if _, err := db.NewInsert().Model(rp).
				On("CONFLICT (round_id, player_id) DO UPDATE SET playing = EXCLUDED.playing").
				Exec(ctx); err != nil {
				return fmt.Errorf("round player: %w", err)
			}

			// The last round stays half-entered so the sequential
			// recalculator's halt is visible in the demo data.
			holes := scoring.Holes
			if no == 4 && faker.Bool() {
				holes = faker.Number(6, 12)
			}
			for hole := 1; hole <= holes; hole++ {
				score := &models.Score{
					RoundID:    round.RoundID,
					PlayerID:   p.PlayerID,
					HoleNumber: hole,
				}
				if faker.Number(1, 20) == 1 {
					score.Pickup = true
				} else {
					s := faker.Number(3, 9)
					score.Strokes = &s
				}
				if _, err := db.NewInsert().Model(score).
					On("CONFLICT (round_id, player_id, hole_number) DO UPDATE SET strokes = EXCLUDED.strokes, pickup = EXCLUDED.pickup").
					Exec(ctx); err != nil {
					return fmt.Errorf("score: %w", err)
				}
			}
		}
	}

	fmt.Printf("seeded tour %d (%s) with %d players and 4 rounds\n", tour.TourID, tour.Name, len(players))
	return nil
}

func recalc(ctx context.Context, db *bun.DB, tourID int, appleby, commit bool) error {
	h := handlers.New(db, nil)
	_, _, ts, err := h.LoadTourSnapshot(ctx, tourID)
	if err != nil {
		return err
	}

	type roundPH struct {
		roundID int
		roundNo int
		ph      map[int]int
	}
	var rounds []roundPH
	if appleby {
		res := scoring.RecalculateAppleby(ts)
		for _, r := range res.Rounds {
			rounds = append(rounds, roundPH{r.RoundID, r.RoundNo, r.PH})
		}
	} else {
		res := scoring.Recalculate(ts)
		for _, r := range res.Rounds {
			rounds = append(rounds, roundPH{r.RoundID, r.RoundNo, r.PH})
		}
	}

	for _, r := range rounds {
		ids := make([]int, 0, len(r.ph))
		for id := range r.ph {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		fmt.Printf("round %d:", r.roundNo)
		for _, id := range ids {
			fmt.Printf(" %d=%d", id, r.ph[id])
		}
		fmt.Println()

		if !commit {
			continue
		}
		for playerID, ph := range r.ph {
			_, err := db.NewUpdate().Model((*models.RoundPlayer)(nil)).
				Set("playing_handicap = ?", float64(ph)).
				Where("round_id = ? AND player_id = ?", r.roundID, playerID).
				Exec(ctx)
			if err != nil {
				return err
			}
		}
	}

	if commit {
		fmt.Println("committed")
	}
	return nil
}
