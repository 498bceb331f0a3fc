package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// Events returns all events, optionally filtered to one series (junction
// links and directly tagged events).
func (h *Handler) Events(c echo.Context) error {
	series := c.QueryParam("series")

	var events []models.Event
	q := h.db.NewSelect().Model(&events).OrderExpr("e.date ASC, e.event_id ASC")
	if series != "" {
		q = q.Where(
			"e.event_id IN (SELECT event_id FROM series_events WHERE series_id = ?) OR e.series_id = ?",
			series, series,
		)
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, events)
}

// Series returns all series, newest year first.
func (h *Handler) Series(c echo.Context) error {
	var series []models.Series
	err := h.db.NewSelect().Model(&series).
		OrderExpr("s.year DESC, s.name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, series)
}

type createEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	SeriesID    *int   `json:"seriesID"`
	ScaleID     *int   `json:"scaleID"`
	RecipientID *int   `json:"recipientID"`
}

// CreateEvent inserts a new event.
func (h *Handler) CreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Date = strings.TrimSpace(req.Date)

	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	event := &models.Event{
		Name:        req.Name,
		Date:        req.Date,
		SeriesID:    req.SeriesID,
		ScaleID:     req.ScaleID,
		RecipientID: req.RecipientID,
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		event.Location = &loc
	}

	if _, err := h.db.NewInsert().Model(event).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, event)
}
