package models

import "github.com/uptrace/bun"

// User is a tour organizer account with a bcrypt-hashed password. Players
// are not users; score entry happens under an organizer login.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	Username string `bun:"username,notnull,unique" json:"username"`
	Password string `bun:"password,notnull" json:"-"`
}
