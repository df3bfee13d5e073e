package models

import "github.com/uptrace/bun"

// Tour is one season/trip of rounds with its competition settings.
type Tour struct {
	bun.BaseModel `bun:"table:tours,alias:t"`

	TourID int    `bun:"tour_id,pk,autoincrement" json:"tourID"`
	Name   string `bun:"name,notnull,unique" json:"name"`
	// BestN is how many round totals count towards the tour standings;
	// 0 means every round counts.
	BestN int `bun:"best_n,notnull,default:0" json:"bestN"`
	// MustIncludeFinal forces the last round into the best-N selection.
	MustIncludeFinal bool `bun:"must_include_final,notnull,default:false" json:"mustIncludeFinal"`
	// TeamBestM is how many balls count per hole in team scoring.
	TeamBestM int `bun:"team_best_m,notnull,default:2" json:"teamBestM"`
	// Rehandicap turns the sequential recalculator on; off forces every
	// playing handicap back to the starting handicap.
	Rehandicap bool `bun:"rehandicap,notnull,default:true" json:"rehandicap"`
	// Appleby cycle settings: round numbers where
	// round_no % cycle == offset % cycle are reserved for another format
	// and take no Appleby adjustment.
	ApplebyCycle  int    `bun:"appleby_cycle,notnull,default:3" json:"applebyCycle"`
	ApplebyOffset int    `bun:"appleby_offset,notnull,default:0" json:"applebyOffset"`
	DefaultTee    string `bun:"default_tee,notnull,default:'white'" json:"defaultTee"`
}

// TourPlayer ties a player to a tour, optionally overriding their global
// starting handicap for recalculation.
type TourPlayer struct {
	bun.BaseModel `bun:"table:tour_players,alias:tp"`

	ID       int `bun:"id,pk,autoincrement" json:"id"`
	TourID   int `bun:"tour_id,notnull,unique:tour_players_no_dupes" json:"tourID"`
	PlayerID int `bun:"player_id,notnull,unique:tour_players_no_dupes" json:"playerID"`
	// StartingHandicap overrides the player's global handicap for this
	// tour; one decimal of precision, nil means use the global value.
	StartingHandicap *float64 `bun:"starting_handicap" json:"startingHandicap,omitempty"`

	Player *Player `bun:"rel:belongs-to,join:player_id=player_id" json:"-"`
}
