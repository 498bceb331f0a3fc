package models

import "github.com/uptrace/bun"

// PointScale is a named position→points mapping assignable to events.
// The first scale flagged as default is used for events without one.
type PointScale struct {
	bun.BaseModel `bun:"table:point_scales,alias:ps"`

	ScaleID   int    `bun:"scale_id,pk,autoincrement" json:"scaleID"`
	Name      string `bun:"name,notnull,unique" json:"name"`
	IsDefault bool   `bun:"is_default,notnull,default:false" json:"isDefault"`
}

// PointScaleValue is one position's point value within a scale.
type PointScaleValue struct {
	bun.BaseModel `bun:"table:point_scale_values,alias:psv"`

	ID       int     `bun:"id,pk,autoincrement" json:"id"`
	ScaleID  int     `bun:"scale_id,notnull,unique:scale_values_no_dupes" json:"scaleID"`
	Position int     `bun:"position,notnull,unique:scale_values_no_dupes" json:"position"`
	Points   float64 `bun:"points,notnull" json:"points"`
}
