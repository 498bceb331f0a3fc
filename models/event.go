package models

import "github.com/uptrace/bun"

// Event is a single race day.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	EventID     int     `bun:"event_id,pk,autoincrement" json:"eventID"`
	Name        string  `bun:"name,notnull" json:"name"`
	Date        string  `bun:"date,notnull,type:date" json:"date"`
	Location    *string `bun:"location" json:"location,omitempty"`
	SeriesID    *int    `bun:"series_id" json:"seriesID,omitempty"`
	ScaleID     *int    `bun:"scale_id" json:"scaleID,omitempty"`
	RecipientID *int    `bun:"recipient_id" json:"recipientID,omitempty"`

	Series *Series `bun:"rel:belongs-to,join:series_id=series_id" json:"-"`
}
