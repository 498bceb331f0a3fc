package models

import "github.com/uptrace/bun"

// Club is a cycling club riders belong to.
type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:cl"`

	ClubID int     `bun:"club_id,pk,autoincrement" json:"clubID"`
	Name   string  `bun:"name,notnull,unique" json:"name"`
	City   *string `bun:"city" json:"city,omitempty"`
}
