package models

import "github.com/uptrace/bun"

// Class is a rider category (age/skill bracket) results are scored in.
// Only series-eligible, points-awarding classes count toward club points.
type Class struct {
	bun.BaseModel `bun:"table:classes,alias:c"`

	ClassID        int    `bun:"class_id,pk,autoincrement" json:"classID"`
	Name           string `bun:"name,notnull,unique" json:"name"`
	SeriesEligible bool   `bun:"series_eligible,notnull,default:true" json:"seriesEligible"`
	AwardsPoints   bool   `bun:"awards_points,notnull,default:true" json:"awardsPoints"`
}
