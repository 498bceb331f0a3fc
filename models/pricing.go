package models

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// EventPricingRule is the configured registration base price for one
// class at one event.
type EventPricingRule struct {
	bun.BaseModel `bun:"table:event_pricing_rules,alias:epr"`

	ID        int             `bun:"id,pk,autoincrement" json:"id"`
	EventID   int             `bun:"event_id,notnull,unique:pricing_no_dupes" json:"eventID"`
	ClassID   int             `bun:"class_id,notnull,unique:pricing_no_dupes" json:"classID"`
	BasePrice decimal.Decimal `bun:"base_price,notnull,type:numeric(12,2)" json:"basePrice"`
}
