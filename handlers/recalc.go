package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ECABBIKE/TheHUB-sub012/economy"
)

// RecalculateSeries rebuilds every derived table for one series:
// per-event club points, the standings cache, and the series results.
// The request blocks until all events are processed.
func (h *Handler) RecalculateSeries(c echo.Context) error {
	seriesID, err := strconv.Atoi(c.QueryParam("series"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid series param")
	}

	if err := h.recalc.RecalculateSeries(c.Request().Context(), seriesID); err != nil {
		return c.JSON(http.StatusOK, economy.Result{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, economy.Result{Success: true, Message: "series recalculated"})
}

// RecalculateEvent rebuilds the club point tables for one (event, series) pair.
func (h *Handler) RecalculateEvent(c echo.Context) error {
	eventID, err := strconv.Atoi(c.QueryParam("event"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid event param")
	}
	seriesID, err := strconv.Atoi(c.QueryParam("series"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid series param")
	}

	if err := h.recalc.RecalculateEvent(c.Request().Context(), eventID, seriesID); err != nil {
		return c.JSON(http.StatusOK, economy.Result{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, economy.Result{Success: true, Message: "event recalculated"})
}
