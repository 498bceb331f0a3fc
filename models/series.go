package models

import "github.com/uptrace/bun"

// Series is a named collection of events producing combined standings.
type Series struct {
	bun.BaseModel `bun:"table:series,alias:s"`

	SeriesID   int    `bun:"series_id,pk,autoincrement" json:"seriesID"`
	Name       string `bun:"name,notnull" json:"name"`
	Year       int    `bun:"year,notnull" json:"year"`
	TemplateID *int   `bun:"template_id" json:"templateID,omitempty"`
}

// SeriesEvent links an event into a series with an explicit sort order.
type SeriesEvent struct {
	bun.BaseModel `bun:"table:series_events,alias:se"`

	ID        int `bun:"id,pk,autoincrement" json:"id"`
	SeriesID  int `bun:"series_id,notnull,unique:series_events_no_dupes" json:"seriesID"`
	EventID   int `bun:"event_id,notnull,unique:series_events_no_dupes" json:"eventID"`
	SortOrder int `bun:"sort_order,notnull,default:0" json:"sortOrder"`
}
