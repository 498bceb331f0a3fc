package points

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// seriesTemplate loads and parses the series' qualification template.
// A series without one, or with an unparsable mapping, returns nil and
// the result's own scale points are carried through instead.
func (r *Recalculator) seriesTemplate(ctx context.Context, seriesID int) *Template {
	series := &models.Series{}
	err := r.db.NewSelect().Model(series).
		Where("s.series_id = ?", seriesID).
		Scan(ctx)
	if err != nil {
		r.log.Warn("series read failed", zap.Int("series", seriesID), zap.Error(err))
		return nil
	}
	if series.TemplateID == nil {
		return nil
	}

	raw := &models.QualificationPointTemplate{}
	err = r.db.NewSelect().Model(raw).
		Where("qt.template_id = ?", *series.TemplateID).
		Scan(ctx)
	if err != nil {
		r.log.Warn("qualification template read failed",
			zap.Int("series", seriesID), zap.Int("template", *series.TemplateID), zap.Error(err))
		return nil
	}

	tmpl, err := ParseTemplate(raw)
	if err != nil {
		r.log.Warn("qualification template unparsable",
			zap.Int("series", seriesID), zap.Error(err))
		return nil
	}
	return tmpl
}

const seriesResultsSourceSQL = `
SELECT r.event_id, r.rider_id, r.class_id, r.position, r.status, r.points
FROM results r
INNER JOIN series_events se ON se.event_id = r.event_id
INNER JOIN classes c ON c.class_id = r.class_id
WHERE se.series_id = ?
  AND c.series_eligible
ORDER BY r.event_id ASC, r.class_id ASC, r.position ASC, r.id ASC
`

// SyncSeriesResults reconciles series_results against the current
// source results: fresh points per row come from the series'
// qualification template when one is configured, otherwise from the
// result's own points. Rows are inserted when missing, updated only
// when they differ, and deleted when no source result backs them.
func (r *Recalculator) SyncSeriesResults(ctx context.Context, seriesID int) error {
	tmpl := r.seriesTemplate(ctx, seriesID)

	var source []models.Result
	if err := r.db.NewRaw(seriesResultsSourceSQL, seriesID).Scan(ctx, &source); err != nil {
		r.log.Warn("series results source read failed", zap.Int("series", seriesID), zap.Error(err))
		source = nil
	}

	var templateID *int
	if tmpl != nil {
		id := tmpl.TemplateID
		templateID = &id
	}

	fresh := make(map[string]models.SeriesResult, len(source))
	for _, res := range source {
		points := res.Points
		if res.Status != models.StatusFinished {
			points = 0
		} else if tmpl != nil {
			points = tmpl.PointsFor(res.Position, res.Status)
		}
		key := seriesResultKey(res.EventID, res.RiderID, res.ClassID)
		fresh[key] = models.SeriesResult{
			SeriesID:   seriesID,
			EventID:    res.EventID,
			RiderID:    res.RiderID,
			ClassID:    res.ClassID,
			Position:   res.Position,
			Status:     res.Status,
			Points:     points,
			TemplateID: templateID,
		}
	}

	var existing []models.SeriesResult
	err := r.db.NewSelect().Model(&existing).
		Where("sres.series_id = ?", seriesID).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		r.log.Warn("series results read failed", zap.Int("series", seriesID), zap.Error(err))
		existing = nil
	}

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

	for _, old := range existing {
		key := seriesResultKey(old.EventID, old.RiderID, old.ClassID)
		want, ok := fresh[key]
		if !ok {
			// Orphan: no source result backs this row anymore.
			if _, err := tx.NewDelete().Model((*models.SeriesResult)(nil)).
				Where("id = ?", old.ID).
				Exec(ctx); err != nil {
				return err
			}
			continue
		}
		if seriesResultChanged(old, want) {
			if _, err := tx.NewUpdate().Model((*models.SeriesResult)(nil)).
				Set("position = ?", want.Position).
				Set("status = ?", want.Status).
				Set("points = ?", want.Points).
				Set("template_id = ?", want.TemplateID).
				Where("id = ?", old.ID).
				Exec(ctx); err != nil {
				return err
			}
		}
		delete(fresh, key)
	}

	for _, row := range fresh {
		row := row
		if _, err := tx.NewInsert().Model(&row).
			On("CONFLICT (series_id, event_id, rider_id, class_id) DO UPDATE").
			Set("position = EXCLUDED.position").
			Set("status = EXCLUDED.status").
			Set("points = EXCLUDED.points").
			Set("template_id = EXCLUDED.template_id").
			Exec(ctx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

func seriesResultKey(eventID, riderID, classID int) string {
	return fmt.Sprintf("%d/%d/%d", eventID, riderID, classID)
}

// seriesResultChanged reports whether a stored row differs from the
// freshly computed one in any field the update writes.
func seriesResultChanged(old, want models.SeriesResult) bool {
	return old.Points != want.Points ||
		old.Position != want.Position ||
		old.Status != want.Status ||
		!eqIntPtr(old.TemplateID, want.TemplateID)
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
