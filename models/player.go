package models

import "github.com/uptrace/bun"

// Player is a tour member. Handicap is the global default starting
// handicap, one decimal of precision; tours can override it per player.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	PlayerID int     `bun:"player_id,pk,autoincrement" json:"playerID"`
	Name     string  `bun:"name,notnull,unique" json:"name"`
	Handicap float64 `bun:"handicap,notnull,default:0" json:"handicap"`
}
