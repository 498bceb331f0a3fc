package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ECABBIKE/TheHUB-sub012/models"
	"github.com/ECABBIKE/TheHUB-sub012/points"
)

type importResultRow struct {
	RiderID  int    `json:"riderID"`
	ClassID  int    `json:"classID"`
	Position int    `json:"position"`
	Status   string `json:"status"`
}

// ImportResults bulk-upserts result rows for one event, scoring each
// row against the event's point scale, then synchronously recalculates
// every series the event belongs to.
func (h *Handler) ImportResults(c echo.Context) error {
	eventID, err := strconv.Atoi(c.QueryParam("event"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid event param")
	}

	var rows []importResultRow
	if err := c.Bind(&rows); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	scale := h.scales.ScaleForEvent(ctx, eventID)

	if err := doResultUpsert(ctx, h.db, eventID, rows, scale); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for _, seriesID := range h.eventSeries(ctx, eventID) {
		if err := h.recalc.RecalculateSeries(ctx, seriesID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.NoContent(http.StatusAccepted)
}

func doResultUpsert(ctx context.Context, db *bun.DB, eventID int, rows []importResultRow, scale *points.ScaleTable) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, row := range rows {
		status := row.Status
		if status == "" {
			status = models.StatusFinished
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO results (event_id, rider_id, class_id, position, status, points)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (event_id, rider_id, class_id)
			 DO UPDATE SET position = EXCLUDED.position, status = EXCLUDED.status, points = EXCLUDED.points`,
			eventID, row.RiderID, row.ClassID, row.Position, status,
			scale.PointsFor(row.Position, status),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

// eventSeries returns every series the event is linked into, via the
// junction table or a direct tag.
func (h *Handler) eventSeries(ctx context.Context, eventID int) []int {
	var ids []int
	err := h.db.NewRaw(`
		SELECT series_id FROM series_events WHERE event_id = ?
		UNION
		SELECT series_id FROM events WHERE event_id = ? AND series_id IS NOT NULL
		ORDER BY series_id`,
		eventID, eventID,
	).Scan(ctx, &ids)
	if err != nil {
		h.log.Warn("event series read failed", zap.Int("event", eventID), zap.Error(err))
		return nil
	}
	return ids
}

// resultRow is a flat scan target for the event results join.
type resultRow struct {
	ID        int     `bun:"id" json:"id"`
	RiderID   int     `bun:"rider_id" json:"riderID"`
	RiderName string  `bun:"rider_name" json:"rider"`
	ClubName  *string `bun:"club_name" json:"club,omitempty"`
	ClassID   int     `bun:"class_id" json:"classID"`
	ClassName string  `bun:"class_name" json:"class"`
	Position  int     `bun:"position" json:"position"`
	Status    string  `bun:"status" json:"status"`
	Points    float64 `bun:"points" json:"points"`
}

// Results returns all results for one event, ordered by class and position.
func (h *Handler) Results(c echo.Context) error {
	event := c.QueryParam("event")
	if event == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing event param")
	}

	var rows []resultRow
	err := h.db.NewRaw(`
		SELECT r.id, r.rider_id, ri.name AS rider_name, cl.name AS club_name,
		       r.class_id, c.name AS class_name, r.position, r.status, r.points
		FROM results r
		INNER JOIN riders ri ON ri.rider_id = r.rider_id
		INNER JOIN classes c ON c.class_id = r.class_id
		LEFT JOIN clubs cl ON cl.club_id = ri.club_id
		WHERE r.event_id = ?
		ORDER BY r.class_id ASC, r.position ASC, r.id ASC`,
		event,
	).Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, rows)
}
