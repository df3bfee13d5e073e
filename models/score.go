package models

import "github.com/uptrace/bun"

// Score is one player's raw result on one hole of a round: a stroke count,
// or a pickup which scores nothing. A missing row means the hole has not
// been entered yet — not a zero. Rows are overwritten by score entry and
// never auto-deleted.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID         int  `bun:"id,pk,autoincrement" json:"id"`
	RoundID    int  `bun:"round_id,notnull,unique:scores_no_dupes" json:"roundID"`
	PlayerID   int  `bun:"player_id,notnull,unique:scores_no_dupes" json:"playerID"`
	HoleNumber int  `bun:"hole_number,notnull,unique:scores_no_dupes" json:"holeNumber"`
	Strokes    *int `bun:"strokes" json:"strokes,omitempty"`
	Pickup     bool `bun:"pickup,notnull,default:false" json:"pickup"`
}
