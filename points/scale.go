// Package points implements the club/series point aggregation engine:
// point scale resolution, per-club tiering, event aggregation, and
// series standings recomputation. Computation is pure (rows in, rows
// out); persistence is a full delete+reinsert per aggregation unit so
// every recalculation run is idempotent.
package points

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// ScaleTable is a parsed position→points mapping for one scale.
// Lookups beyond the highest configured position saturate to the value
// at that position.
type ScaleTable struct {
	points map[int]float64
	maxPos int
}

// NewScaleTable builds a ScaleTable from scale value rows.
func NewScaleTable(values []models.PointScaleValue) *ScaleTable {
	t := &ScaleTable{points: make(map[int]float64, len(values))}
	for _, v := range values {
		if v.Position < 1 {
			continue
		}
		t.points[v.Position] = v.Points
		if v.Position > t.maxPos {
			t.maxPos = v.Position
		}
	}
	return t
}

// Empty reports whether the scale has no configured positions.
func (t *ScaleTable) Empty() bool { return t == nil || t.maxPos == 0 }

// PointsFor returns the point value for a finishing position and status.
// Non-finishers and positions below 1 score zero. Any position without a
// configured value, interior gap or beyond the scale, takes the value at
// the highest configured position.
func (t *ScaleTable) PointsFor(position int, status string) float64 {
	if status != models.StatusFinished || position < 1 {
		return 0
	}
	if t.Empty() {
		return 0
	}
	if p, ok := t.points[position]; ok {
		return p
	}
	return t.points[t.maxPos]
}

// ScaleResolver loads scale tables for events, falling back to the
// system default scale when an event has none assigned.
type ScaleResolver struct {
	db  *bun.DB
	log *zap.Logger
}

// NewScaleResolver creates a resolver bound to the given database.
func NewScaleResolver(db *bun.DB, log *zap.Logger) *ScaleResolver {
	return &ScaleResolver{db: db, log: log}
}

// ScaleForEvent returns the scale table for an event. An event without
// an assigned scale falls back to the first scale flagged as default;
// with no default configured an empty table is returned and a warning
// logged. Read errors degrade to an empty table.
func (r *ScaleResolver) ScaleForEvent(ctx context.Context, eventID int) *ScaleTable {
	event := &models.Event{}
	err := r.db.NewSelect().Model(event).
		Column("e.scale_id").
		Where("e.event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		r.log.Warn("scale lookup: event read failed", zap.Int("event", eventID), zap.Error(err))
		return &ScaleTable{}
	}

	scaleID := 0
	if event.ScaleID != nil {
		scaleID = *event.ScaleID
	} else {
		scale := &models.PointScale{}
		err := r.db.NewSelect().Model(scale).
			Where("ps.is_default").
			Order("ps.scale_id ASC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			r.log.Warn("scale lookup: no default scale configured", zap.Int("event", eventID), zap.Error(err))
			return &ScaleTable{}
		}
		scaleID = scale.ScaleID
	}

	var values []models.PointScaleValue
	err = r.db.NewSelect().Model(&values).
		Where("psv.scale_id = ?", scaleID).
		Order("psv.position ASC").
		Scan(ctx)
	if err != nil {
		r.log.Warn("scale lookup: values read failed", zap.Int("scale", scaleID), zap.Error(err))
		return &ScaleTable{}
	}

	return NewScaleTable(values)
}

// Resolve returns the point value for one finishing position at an event.
func (r *ScaleResolver) Resolve(ctx context.Context, eventID, position int, status string) float64 {
	return r.ScaleForEvent(ctx, eventID).PointsFor(position, status)
}
