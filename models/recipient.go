package models

import "github.com/uptrace/bun"

// PaymentRecipient is the financial entity entitled to funds from an
// event's registrations, optionally linked to a promotor user.
type PaymentRecipient struct {
	bun.BaseModel `bun:"table:payment_recipients,alias:pr"`

	RecipientID int    `bun:"recipient_id,pk,autoincrement" json:"recipientID"`
	Name        string `bun:"name,notnull,unique" json:"name"`
	PromotorID  *int   `bun:"promotor_id" json:"promotorID,omitempty"`
}

// PromotorEvent links a promotor user to an event they own.
type PromotorEvent struct {
	bun.BaseModel `bun:"table:promotor_events,alias:pe"`

	ID         int `bun:"id,pk,autoincrement" json:"id"`
	PromotorID int `bun:"promotor_id,notnull,unique:promotor_events_no_dupes" json:"promotorID"`
	EventID    int `bun:"event_id,notnull,unique:promotor_events_no_dupes" json:"eventID"`
}

// PromotorSeries links a promotor user to a series they own.
type PromotorSeries struct {
	bun.BaseModel `bun:"table:promotor_series,alias:prs"`

	ID         int `bun:"id,pk,autoincrement" json:"id"`
	PromotorID int `bun:"promotor_id,notnull,unique:promotor_series_no_dupes" json:"promotorID"`
	SeriesID   int `bun:"series_id,notnull,unique:promotor_series_no_dupes" json:"seriesID"`
}
