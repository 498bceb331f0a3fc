package models

import "github.com/uptrace/bun"

// Derived tables are deterministic functions of the source result rows.
// Each is rebuilt wholesale per aggregation unit (event or series), never
// patched incrementally, so a recalculation run is always safe to repeat.

// ClubRiderPoints is the per-rider breakdown behind a club's event total.
type ClubRiderPoints struct {
	bun.BaseModel `bun:"table:club_rider_points,alias:crp"`

	ID                int     `bun:"id,pk,autoincrement" json:"id"`
	ClubID            int     `bun:"club_id,notnull" json:"clubID"`
	EventID           int     `bun:"event_id,notnull" json:"eventID"`
	SeriesID          int     `bun:"series_id,notnull" json:"seriesID"`
	RiderID           int     `bun:"rider_id,notnull" json:"riderID"`
	ClassID           int     `bun:"class_id,notnull" json:"classID"`
	OriginalPoints    float64 `bun:"original_points,notnull" json:"originalPoints"`
	ClubPoints        float64 `bun:"club_points,notnull" json:"clubPoints"`
	RankInClub        int     `bun:"rank_in_club,notnull" json:"rankInClub"`
	PercentageApplied float64 `bun:"percentage_applied,notnull" json:"percentageApplied"`
}

// ClubEventPoints is one club's aggregated total for one event in a series.
type ClubEventPoints struct {
	bun.BaseModel `bun:"table:club_event_points,alias:cep"`

	ID                int     `bun:"id,pk,autoincrement" json:"id"`
	ClubID            int     `bun:"club_id,notnull" json:"clubID"`
	EventID           int     `bun:"event_id,notnull" json:"eventID"`
	SeriesID          int     `bun:"series_id,notnull" json:"seriesID"`
	TotalPoints       float64 `bun:"total_points,notnull" json:"totalPoints"`
	ParticipantCount  int     `bun:"participant_count,notnull" json:"participantCount"`
	ScoringRiderCount int     `bun:"scoring_rider_count,notnull" json:"scoringRiderCount"`
}

// ClubStanding is one row of the per-series club standings cache.
// Ranking is dense competition ranking: tied totals share a rank and the
// next distinct total takes its 1-based position in the ordered list.
type ClubStanding struct {
	bun.BaseModel `bun:"table:club_standings_cache,alias:csc"`

	ID              int     `bun:"id,pk,autoincrement" json:"id"`
	ClubID          int     `bun:"club_id,notnull" json:"clubID"`
	SeriesID        int     `bun:"series_id,notnull" json:"seriesID"`
	TotalPoints     float64 `bun:"total_points,notnull" json:"totalPoints"`
	Participants    int     `bun:"participants,notnull" json:"participants"`
	EventsCount     int     `bun:"events_count,notnull" json:"eventsCount"`
	BestEventPoints float64 `bun:"best_event_points,notnull" json:"bestEventPoints"`
	Ranking         int     `bun:"ranking,notnull" json:"ranking"`
}

// SeriesResult is a rider's scored result within series standings,
// upserted against fresh computation and pruned of orphans.
type SeriesResult struct {
	bun.BaseModel `bun:"table:series_results,alias:sres"`

	ID         int     `bun:"id,pk,autoincrement" json:"id"`
	SeriesID   int     `bun:"series_id,notnull,unique:series_results_no_dupes" json:"seriesID"`
	EventID    int     `bun:"event_id,notnull,unique:series_results_no_dupes" json:"eventID"`
	RiderID    int     `bun:"rider_id,notnull,unique:series_results_no_dupes" json:"riderID"`
	ClassID    int     `bun:"class_id,notnull,unique:series_results_no_dupes" json:"classID"`
	Position   int     `bun:"position,notnull" json:"position"`
	Status     string  `bun:"status,notnull" json:"status"`
	Points     float64 `bun:"points,notnull" json:"points"`
	TemplateID *int    `bun:"template_id" json:"templateID,omitempty"`
}
