package models

import "github.com/uptrace/bun"

// Result statuses. Points are only meaningful for finished results
// with position >= 1.
const (
	StatusFinished = "finished"
	StatusDNF      = "dnf"
	StatusDNS      = "dns"
	StatusDQ       = "dq"
)

// Result holds one rider's outcome in one event and class.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID       int     `bun:"id,pk,autoincrement" json:"id"`
	EventID  int     `bun:"event_id,notnull,unique:results_no_dupes" json:"eventID"`
	RiderID  int     `bun:"rider_id,notnull,unique:results_no_dupes" json:"riderID"`
	ClassID  int     `bun:"class_id,notnull,unique:results_no_dupes" json:"classID"`
	Position int     `bun:"position,notnull" json:"position"`
	Status   string  `bun:"status,notnull,default:'finished'" json:"status"`
	Points   float64 `bun:"points,notnull,default:0" json:"points"`
}
