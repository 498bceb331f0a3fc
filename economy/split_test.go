package economy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sumAmounts(rows []EventShare) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Amount)
	}
	return sum
}

func sumFees(rows []EventShare) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Fee)
	}
	return sum
}

func seriesOrder(id int, total, fee string) models.Order {
	seriesID := 5
	return models.Order{
		OrderID:     id,
		SeriesID:    &seriesID,
		TotalAmount: dec(total),
		Fee:         dec(fee),
	}
}

func threeEvents() []EventInfo {
	return []EventInfo{
		{EventID: 1, Date: "2026-04-12"},
		{EventID: 2, Date: "2026-05-03"},
		{EventID: 3, Date: "2026-06-21"},
	}
}

func TestSplitOrderNoEventsPassesThrough(t *testing.T) {
	eventID := 42
	order := models.Order{OrderID: 1, EventID: &eventID, TotalAmount: dec("250.00")}

	rows := SplitOrder(order, nil, nil, nil, SplitPolicy{})
	require.Len(t, rows, 1)
	assert.Equal(t, 42, rows[0].EventID)
	assert.True(t, rows[0].Amount.Equal(dec("250.00")))
	assert.True(t, rows[0].Fraction.Equal(decimal.NewFromInt(1)))
}

func TestSplitOrderEvenFallback(t *testing.T) {
	order := seriesOrder(1, "100.00", "0")

	rows := SplitOrder(order, threeEvents(), nil, nil, SplitPolicy{})
	require.Len(t, rows, 3)

	// 100/3 rounds to 33.33; the first event by date absorbs the cent.
	assert.True(t, rows[0].Amount.Equal(dec("33.34")), "got %s", rows[0].Amount)
	assert.True(t, rows[1].Amount.Equal(dec("33.33")))
	assert.True(t, rows[2].Amount.Equal(dec("33.33")))
	assert.True(t, sumAmounts(rows).Equal(dec("100.00")))
}

func TestSplitOrderPricedPath(t *testing.T) {
	order := seriesOrder(1, "200.00", "0")
	events := []EventInfo{
		{EventID: 1, Date: "2026-04-12"},
		{EventID: 2, Date: "2026-05-03"},
	}
	regs := []Registration{{ClassID: 9, FinalPrice: dec("200.00")}}
	prices := PriceIndex{9: {1: dec("120.00"), 2: dec("80.00")}}

	rows := SplitOrder(order, events, regs, prices, SplitPolicy{})
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Amount.Equal(dec("120.00")), "got %s", rows[0].Amount)
	assert.True(t, rows[1].Amount.Equal(dec("80.00")), "got %s", rows[1].Amount)
	assert.True(t, rows[0].Fraction.Equal(dec("0.6")))
	assert.True(t, rows[1].Fraction.Equal(dec("0.4")))
	assert.False(t, rows[0].Flagged)
}

func TestSplitOrderAppliesDiscount(t *testing.T) {
	order := seriesOrder(1, "150.00", "0")
	events := []EventInfo{
		{EventID: 1, Date: "2026-04-12"},
		{EventID: 2, Date: "2026-05-03"},
	}
	// 25% off both configured prices: 75 + 75 = 150, matching the total.
	regs := []Registration{{ClassID: 9, DiscountPercent: 25, FinalPrice: dec("150.00")}}
	prices := PriceIndex{9: {1: dec("100.00"), 2: dec("100.00")}}

	rows := SplitOrder(order, events, regs, prices, SplitPolicy{})
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Amount.Equal(dec("75.00")), "got %s", rows[0].Amount)
	assert.True(t, rows[1].Amount.Equal(dec("75.00")))
}

func TestSplitOrderRescalesToPaidTotal(t *testing.T) {
	// Configured prices sum to 350 but only 300 was paid (historical
	// price change). Shares rescale and still conserve the total.
	order := seriesOrder(1, "300.00", "0")
	regs := []Registration{{ClassID: 9, FinalPrice: dec("300.00")}}
	prices := PriceIndex{9: {1: dec("100.00"), 2: dec("100.00"), 3: dec("150.00")}}

	rows := SplitOrder(order, threeEvents(), regs, prices, SplitPolicy{})
	require.Len(t, rows, 3)
	assert.True(t, sumAmounts(rows).Equal(dec("300.00")), "got %s", sumAmounts(rows))
	assert.False(t, rows[0].Flagged)
}

func TestSplitOrderStrictPolicyFlagsMismatch(t *testing.T) {
	order := seriesOrder(1, "300.00", "0")
	regs := []Registration{{ClassID: 9, FinalPrice: dec("300.00")}}
	prices := PriceIndex{9: {1: dec("100.00"), 2: dec("100.00"), 3: dec("150.00")}}
	policy := SplitPolicy{Strict: true, Tolerance: dec("1.00")}

	rows := SplitOrder(order, threeEvents(), regs, prices, policy)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.True(t, row.Flagged)
	}
	// Conservation holds even when flagged.
	assert.True(t, sumAmounts(rows).Equal(dec("300.00")))
}

func TestSplitOrderStrictPolicyWithinTolerance(t *testing.T) {
	order := seriesOrder(1, "200.50", "0")
	regs := []Registration{{ClassID: 9, FinalPrice: dec("200.50")}}
	prices := PriceIndex{9: {1: dec("100.00"), 2: dec("100.00")}}
	policy := SplitPolicy{Strict: true, Tolerance: dec("1.00")}

	rows := SplitOrder(order, threeEvents()[:2], regs, prices, policy)
	for _, row := range rows {
		assert.False(t, row.Flagged)
	}
	assert.True(t, sumAmounts(rows).Equal(dec("200.50")))
}

func TestSplitOrderUnpricedClassSplitsEvenly(t *testing.T) {
	order := seriesOrder(1, "210.00", "0")
	events := []EventInfo{
		{EventID: 1, Date: "2026-04-12"},
		{EventID: 2, Date: "2026-05-03"},
	}
	regs := []Registration{
		{ClassID: 9, FinalPrice: dec("150.00")},
		{ClassID: 4, FinalPrice: dec("60.00")}, // no pricing rules
	}
	prices := PriceIndex{9: {1: dec("100.00"), 2: dec("50.00")}}

	rows := SplitOrder(order, events, regs, prices, SplitPolicy{})
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Amount.Equal(dec("130.00")), "got %s", rows[0].Amount)
	assert.True(t, rows[1].Amount.Equal(dec("80.00")), "got %s", rows[1].Amount)
	assert.True(t, sumAmounts(rows).Equal(dec("210.00")))
}

func TestSplitOrderFeeFollowsFractions(t *testing.T) {
	order := seriesOrder(1, "100.00", "3.50")

	rows := SplitOrder(order, threeEvents(), nil, nil, SplitPolicy{})
	require.Len(t, rows, 3)
	assert.True(t, sumFees(rows).Equal(dec("3.50")), "got %s", sumFees(rows))
}

func TestSplitOrderRecipientMarkers(t *testing.T) {
	rcp := 77
	order := seriesOrder(1, "100.00", "0")
	events := []EventInfo{
		{EventID: 1, Date: "2026-04-12", RecipientID: &rcp},
		{EventID: 2, Date: "2026-05-03"},
	}

	rows := SplitOrder(order, events, nil, nil, SplitPolicy{})
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].RecipientID)
	assert.Equal(t, 77, *rows[0].RecipientID)
	assert.Nil(t, rows[1].RecipientID)
}
