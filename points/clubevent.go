package points

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// Recalculator rebuilds the derived club point tables from source
// result rows.
type Recalculator struct {
	db  *bun.DB
	log *zap.Logger
}

// NewRecalculator creates a Recalculator bound to the given database.
func NewRecalculator(db *bun.DB, log *zap.Logger) *Recalculator {
	return &Recalculator{db: db, log: log}
}

const eventScoresSQL = `
SELECT r.rider_id, ri.club_id, r.class_id, r.points
FROM results r
INNER JOIN riders  ri ON ri.rider_id = r.rider_id
INNER JOIN classes c  ON c.class_id  = r.class_id
WHERE r.event_id = ?
  AND r.status = 'finished'
  AND c.series_eligible
  AND c.awards_points
  AND ri.club_id IS NOT NULL
  AND r.points > 0
ORDER BY r.points DESC, r.id ASC
`

// eventScores loads the tierable result rows for one event. A read
// error degrades to no data: the rebuild then clears the derived rows,
// which the next successful run repairs.
func (r *Recalculator) eventScores(ctx context.Context, eventID int) []RiderScore {
	var rows []struct {
		RiderID int     `bun:"rider_id"`
		ClubID  int     `bun:"club_id"`
		ClassID int     `bun:"class_id"`
		Points  float64 `bun:"points"`
	}
	if err := r.db.NewRaw(eventScoresSQL, eventID).Scan(ctx, &rows); err != nil {
		r.log.Warn("event scores read failed", zap.Int("event", eventID), zap.Error(err))
		return nil
	}

	scores := make([]RiderScore, len(rows))
	for i, row := range rows {
		scores[i] = RiderScore{
			RiderID: row.RiderID,
			ClubID:  row.ClubID,
			ClassID: row.ClassID,
			Points:  row.Points,
		}
	}
	return scores
}

// AggregateClubEvent sums tiered scores into per-club event totals.
// Totals follow the first-seen club order of the tiered input.
func AggregateClubEvent(eventID, seriesID int, tiered []TieredScore) []models.ClubEventPoints {
	totals := map[int]*models.ClubEventPoints{}
	order := []int{}
	for _, t := range tiered {
		agg, ok := totals[t.ClubID]
		if !ok {
			agg = &models.ClubEventPoints{
				ClubID:   t.ClubID,
				EventID:  eventID,
				SeriesID: seriesID,
			}
			totals[t.ClubID] = agg
			order = append(order, t.ClubID)
		}
		agg.TotalPoints += t.ClubPoints
		agg.ParticipantCount++
		if t.ClubPoints > 0 {
			agg.ScoringRiderCount++
		}
	}

	out := make([]models.ClubEventPoints, 0, len(order))
	for _, clubID := range order {
		out = append(out, *totals[clubID])
	}
	return out
}

// RecalculateEvent rebuilds ClubRiderPoints and ClubEventPoints for one
// (event, series) pair: delete the rows under that exact key, recompute
// from current results, insert. Safe to re-run any number of times.
func (r *Recalculator) RecalculateEvent(ctx context.Context, eventID, seriesID int) error {
	tiered := TierClubPoints(r.eventScores(ctx, eventID))

	riderRows := make([]models.ClubRiderPoints, len(tiered))
	for i, t := range tiered {
		riderRows[i] = models.ClubRiderPoints{
			ClubID:            t.ClubID,
			EventID:           eventID,
			SeriesID:          seriesID,
			RiderID:           t.RiderID,
			ClassID:           t.ClassID,
			OriginalPoints:    t.Points,
			ClubPoints:        t.ClubPoints,
			RankInClub:        t.Rank,
			PercentageApplied: t.Percentage,
		}
	}
	eventRows := AggregateClubEvent(eventID, seriesID, tiered)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.NewDelete().Model((*models.ClubRiderPoints)(nil)).
		Where("event_id = ? AND series_id = ?", eventID, seriesID).
		Exec(ctx); err != nil {
		return err
	}
	if _, err := tx.NewDelete().Model((*models.ClubEventPoints)(nil)).
		Where("event_id = ? AND series_id = ?", eventID, seriesID).
		Exec(ctx); err != nil {
		return err
	}

	if len(riderRows) > 0 {
		if _, err := tx.NewInsert().Model(&riderRows).Exec(ctx); err != nil {
			return err
		}
	}
	if len(eventRows) > 0 {
		if _, err := tx.NewInsert().Model(&eventRows).Exec(ctx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}
