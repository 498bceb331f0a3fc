package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ECABBIKE/TheHUB-sub012/economy"
	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// RecipientOrders explodes all orders into per-event shares and returns
// only the rows belonging to the given payment recipient.
func (h *Handler) RecipientOrders(c echo.Context) error {
	recipientID, err := strconv.Atoi(c.QueryParam("recipient"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid recipient param")
	}

	ctx := c.Request().Context()

	var orders []models.Order
	if err := h.db.NewSelect().Model(&orders).
		Order("o.order_id ASC").
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rows := h.splitter.Explode(ctx, orders)
	events := h.splitter.RecipientEvents(ctx, recipientID)

	return c.JSON(http.StatusOK, economy.FilterForRecipient(rows, recipientID, events))
}

// GenerateReceipt creates a receipt for one order, splitting the gross
// amount into net and VAT. The response always carries a
// success/message pair; failures roll back.
func (h *Handler) GenerateReceipt(c echo.Context) error {
	orderID, err := strconv.Atoi(c.QueryParam("order"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid order param")
	}

	return c.JSON(http.StatusOK, h.splitter.GenerateReceipt(c.Request().Context(), orderID, h.vatRate))
}
