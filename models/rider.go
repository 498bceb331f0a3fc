package models

import "github.com/uptrace/bun"

// Rider is a licensed rider, optionally linked to a club.
type Rider struct {
	bun.BaseModel `bun:"table:riders,alias:ri"`

	RiderID   int     `bun:"rider_id,pk,autoincrement" json:"riderID"`
	Name      string  `bun:"name,notnull" json:"name"`
	ClubID    *int    `bun:"club_id" json:"clubID,omitempty"`
	BirthYear *int    `bun:"birth_year" json:"birthYear,omitempty"`
	LicenseNo *string `bun:"license_no,unique" json:"licenseNo,omitempty"`

	Club *Club `bun:"rel:belongs-to,join:club_id=club_id" json:"-"`
}
