package models

import "github.com/uptrace/bun"

// Match is a matchplay pairing within a round: two named sides of one or
// two players each. Single-player sides leave the second member nil.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	MatchID  int    `bun:"match_id,pk,autoincrement" json:"matchID"`
	RoundID  int    `bun:"round_id,notnull" json:"roundID"`
	SideA    string `bun:"side_a,notnull" json:"sideA"`
	SideB    string `bun:"side_b,notnull" json:"sideB"`
	PlayerA1 int    `bun:"player_a1,notnull" json:"playerA1"`
	PlayerA2 *int   `bun:"player_a2" json:"playerA2,omitempty"`
	PlayerB1 int    `bun:"player_b1,notnull" json:"playerB1"`
	PlayerB2 *int   `bun:"player_b2" json:"playerB2,omitempty"`
}
