package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Round formats.
const (
	FormatStableford = "stableford"
	FormatMatchplay  = "matchplay"
	FormatBetterball = "betterball"
)

// Round is one day's play. Tour order is round_no, then played_on, then
// created_at — never insertion order; the recalculators depend on it.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:rd"`

	RoundID   int       `bun:"round_id,pk,autoincrement" json:"roundID"`
	TourID    int       `bun:"tour_id,notnull,unique:rounds_no_dupes" json:"tourID"`
	RoundNo   int       `bun:"round_no,notnull,unique:rounds_no_dupes" json:"roundNo"`
	PlayedOn  string    `bun:"played_on,notnull,type:date" json:"playedOn"`
	CourseID  int       `bun:"course_id,notnull" json:"courseID"`
	Format    string    `bun:"format,notnull,default:'stableford'" json:"format"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Course *Course `bun:"rel:belongs-to,join:course_id=course_id" json:"-"`
}

// RoundPlayer is a participation record: whether the player is in the round,
// the tee they play off and the playing handicap assigned for the round.
// Recalculation overwrites playing_handicap and nothing else; the row itself
// is never auto-deleted, so an absent row, playing=false and an incomplete
// playing row stay distinguishable.
type RoundPlayer struct {
	bun.BaseModel `bun:"table:round_players,alias:rp"`

	ID       int  `bun:"id,pk,autoincrement" json:"id"`
	RoundID  int  `bun:"round_id,notnull,unique:round_players_no_dupes" json:"roundID"`
	PlayerID int  `bun:"player_id,notnull,unique:round_players_no_dupes" json:"playerID"`
	Playing  bool `bun:"playing,notnull,default:true" json:"playing"`
	// PlayingHandicap keeps one decimal so the Appleby trail survives the
	// store round trip; the value used for scoring is always whole.
	PlayingHandicap float64 `bun:"playing_handicap,notnull,default:0" json:"playingHandicap"`
	Tee             string  `bun:"tee,notnull,default:'white'" json:"tee"`
}
