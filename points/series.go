package points

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// seriesEventIDs returns the IDs of all events linked into a series via
// the junction table, ordered by explicit sort order then date.
func (r *Recalculator) seriesEventIDs(ctx context.Context, seriesID int) []int {
	var ids []int
	err := r.db.NewRaw(`
		SELECT se.event_id
		FROM series_events se
		INNER JOIN events e ON e.event_id = se.event_id
		WHERE se.series_id = ?
		ORDER BY se.sort_order ASC, e.date ASC`,
		seriesID,
	).Scan(ctx, &ids)
	if err != nil {
		r.log.Warn("series events read failed", zap.Int("series", seriesID), zap.Error(err))
		return nil
	}
	return ids
}

// BuildStandings aggregates club event totals into ranked series
// standings. Clubs with a zero sum are dropped. Ranking is dense
// competition ranking: tied totals share a rank and the next distinct
// total takes its 1-based position in the ordered list, so totals
// [100, 100, 80] rank [1, 1, 3].
func BuildStandings(seriesID int, eventPoints []models.ClubEventPoints, riderPoints []models.ClubRiderPoints) []models.ClubStanding {
	type clubAgg struct {
		total     float64
		events    int
		bestEvent float64
		riders    map[int]struct{}
	}

	aggs := map[int]*clubAgg{}
	for _, ep := range eventPoints {
		a, ok := aggs[ep.ClubID]
		if !ok {
			a = &clubAgg{riders: map[int]struct{}{}}
			aggs[ep.ClubID] = a
		}
		a.total += ep.TotalPoints
		a.events++
		if ep.TotalPoints > a.bestEvent {
			a.bestEvent = ep.TotalPoints
		}
	}
	for _, rp := range riderPoints {
		if a, ok := aggs[rp.ClubID]; ok {
			a.riders[rp.RiderID] = struct{}{}
		}
	}

	standings := make([]models.ClubStanding, 0, len(aggs))
	for clubID, a := range aggs {
		if a.total <= 0 {
			continue
		}
		standings = append(standings, models.ClubStanding{
			ClubID:          clubID,
			SeriesID:        seriesID,
			TotalPoints:     a.total,
			Participants:    len(a.riders),
			EventsCount:     a.events,
			BestEventPoints: a.bestEvent,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalPoints == standings[j].TotalPoints {
			return standings[i].ClubID < standings[j].ClubID
		}
		return standings[i].TotalPoints > standings[j].TotalPoints
	})

	for i := range standings {
		if i > 0 && standings[i].TotalPoints == standings[i-1].TotalPoints {
			standings[i].Ranking = standings[i-1].Ranking
			continue
		}
		standings[i].Ranking = i + 1
	}

	return standings
}

// RecalculateSeries reruns the per-event aggregation for every event in
// the series, then rebuilds the standings cache wholesale and syncs the
// per-rider series results. Idempotent: unchanged source rows produce
// identical cache contents on every run.
func (r *Recalculator) RecalculateSeries(ctx context.Context, seriesID int) error {
	for _, eventID := range r.seriesEventIDs(ctx, seriesID) {
		if err := r.RecalculateEvent(ctx, eventID, seriesID); err != nil {
			return err
		}
	}

	var eventPoints []models.ClubEventPoints
	if err := r.db.NewSelect().Model(&eventPoints).
		Where("cep.series_id = ?", seriesID).
		Order("cep.event_id ASC", "cep.club_id ASC").
		Scan(ctx); err != nil {
		r.log.Warn("club event points read failed", zap.Int("series", seriesID), zap.Error(err))
		eventPoints = nil
	}

	var riderPoints []models.ClubRiderPoints
	if err := r.db.NewSelect().Model(&riderPoints).
		Where("crp.series_id = ?", seriesID).
		Scan(ctx); err != nil {
		r.log.Warn("club rider points read failed", zap.Int("series", seriesID), zap.Error(err))
		riderPoints = nil
	}

	standings := BuildStandings(seriesID, eventPoints, riderPoints)

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

	if _, err := tx.NewDelete().Model((*models.ClubStanding)(nil)).
		Where("series_id = ?", seriesID).
		Exec(ctx); err != nil {
		return err
	}
	if len(standings) > 0 {
		if _, err := tx.NewInsert().Model(&standings).Exec(ctx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return r.SyncSeriesResults(ctx, seriesID)
}
