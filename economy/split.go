// Package economy implements order-to-event splitting, payment
// recipient resolution, and receipt generation. Monetary amounts are
// decimals rounded to 2 places; every split conserves the original
// order total to the cent.
package economy

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// SplitPolicy controls how a mismatch between configured prices and the
// actually paid total is handled. Rescaling always happens so sums stay
// conserved; strict mode additionally flags the exploded rows for
// manual review when the deviation exceeds Tolerance.
type SplitPolicy struct {
	Strict    bool
	Tolerance decimal.Decimal
}

// EventShare is one exploded per-event share of an order.
type EventShare struct {
	OrderID     int             `json:"orderID"`
	EventID     int             `json:"eventID"`
	SeriesID    *int            `json:"seriesID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Fraction    decimal.Decimal `json:"fraction"`
	RecipientID *int            `json:"recipientID,omitempty"`
	Flagged     bool            `json:"flagged,omitempty"`
}

// EventInfo is the event data the splitter needs: identity, date order,
// and the configured payment recipient.
type EventInfo struct {
	EventID     int
	Date        string
	RecipientID *int
}

// Registration is one registration detail on an order.
type Registration struct {
	ClassID         int
	DiscountPercent float64
	FinalPrice      decimal.Decimal
}

// PriceIndex maps class → event → configured base price.
type PriceIndex map[int]map[int]decimal.Decimal

var hundred = decimal.NewFromInt(100)

// SplitOrder explodes one order across the given events. Events must
// already be in date order; the first event absorbs every rounding
// residual so that the share sum equals the order total exactly.
// With no events the order passes through as a single row.
func SplitOrder(order models.Order, events []EventInfo, regs []Registration, prices PriceIndex, policy SplitPolicy) []EventShare {
	if len(events) == 0 {
		eventID := 0
		if order.EventID != nil {
			eventID = *order.EventID
		}
		return []EventShare{{
			OrderID:  order.OrderID,
			EventID:  eventID,
			SeriesID: order.SeriesID,
			Amount:   order.TotalAmount,
			Fee:      order.Fee,
			Fraction: decimal.NewFromInt(1),
		}}
	}

	shares, priced := rawShares(order, events, regs, prices)

	total := order.TotalAmount
	rawSum := decimal.Zero
	for _, ev := range events {
		rawSum = rawSum.Add(shares[ev.EventID])
	}

	flagged := false
	if priced && !rawSum.IsZero() {
		if policy.Strict && rawSum.Sub(total).Abs().GreaterThan(policy.Tolerance) {
			flagged = true
		}
		// Configured prices may not match what was actually paid
		// (historical price changes, manual discounts); rescale so the
		// shares sum to the paid total.
		scale := total.Div(rawSum)
		for id, share := range shares {
			shares[id] = share.Mul(scale)
		}
	}

	// Round every share and push the residual onto the first event.
	roundedSum := decimal.Zero
	for id, share := range shares {
		shares[id] = share.Round(2)
		roundedSum = roundedSum.Add(shares[id])
	}
	first := events[0].EventID
	shares[first] = shares[first].Add(total.Sub(roundedSum))

	n := decimal.NewFromInt(int64(len(events)))
	out := make([]EventShare, 0, len(events))
	feeSum := decimal.Zero
	for _, ev := range events {
		amount := shares[ev.EventID]
		fraction := decimal.NewFromInt(1).Div(n).Round(6)
		if !total.IsZero() {
			fraction = amount.Div(total).Round(6)
		}
		fee := order.Fee.Mul(fraction).Round(2)
		feeSum = feeSum.Add(fee)
		out = append(out, EventShare{
			OrderID:     order.OrderID,
			EventID:     ev.EventID,
			SeriesID:    order.SeriesID,
			Amount:      amount,
			Fee:         fee,
			Fraction:    fraction,
			RecipientID: ev.RecipientID,
			Flagged:     flagged,
		})
	}

	// Fee residual follows the amount residual onto the first event.
	if diff := order.Fee.Sub(feeSum); !diff.IsZero() {
		out[0].Fee = out[0].Fee.Add(diff)
	}

	return out
}

// rawShares accumulates unnormalized per-event shares. The second
// return reports whether the priced path was taken (registrations with
// usable pricing); a false value means the even-split fallback was used
// and the shares already sum to the total up to rounding.
func rawShares(order models.Order, events []EventInfo, regs []Registration, prices PriceIndex) (map[int]decimal.Decimal, bool) {
	shares := make(map[int]decimal.Decimal, len(events))
	for _, ev := range events {
		shares[ev.EventID] = decimal.Zero
	}

	if len(regs) == 0 {
		evenSplit(shares, events, order.TotalAmount)
		return shares, false
	}

	n := decimal.NewFromInt(int64(len(events)))
	for _, reg := range regs {
		classPrices := prices[reg.ClassID]
		if len(classPrices) == 0 {
			// No per-event pricing configured for this class: spread the
			// registration's final price evenly instead.
			per := reg.FinalPrice.Div(n).Round(2)
			for _, ev := range events {
				shares[ev.EventID] = shares[ev.EventID].Add(per)
			}
			continue
		}
		discount := decimal.NewFromFloat(reg.DiscountPercent).Div(hundred)
		keep := decimal.NewFromInt(1).Sub(discount)
		for _, ev := range events {
			base, ok := classPrices[ev.EventID]
			if !ok {
				continue
			}
			shares[ev.EventID] = shares[ev.EventID].Add(base.Mul(keep).Round(2))
		}
	}

	return shares, true
}

// evenSplit divides the total across events in equal 2-decimal shares,
// leaving the remainder for the caller's first-event correction.
func evenSplit(shares map[int]decimal.Decimal, events []EventInfo, total decimal.Decimal) {
	per := total.Div(decimal.NewFromInt(int64(len(events)))).Round(2)
	for _, ev := range events {
		shares[ev.EventID] = per
	}
}

// Splitter loads order context from the database and explodes orders
// into per-event shares.
type Splitter struct {
	db     *bun.DB
	log    *zap.Logger
	policy SplitPolicy
}

// NewSplitter creates a Splitter with the given mismatch policy.
func NewSplitter(db *bun.DB, log *zap.Logger, policy SplitPolicy) *Splitter {
	return &Splitter{db: db, log: log, policy: policy}
}

// seriesMembershipSQL is the single definition of which events belong
// to a series: junction links unioned with direct events.series_id
// tags. Every consumer of series membership builds on this fragment so
// the answer cannot drift between code paths.
const seriesMembershipSQL = `SELECT se.event_id, se.series_id FROM series_events se
UNION
SELECT e.event_id, e.series_id FROM events e WHERE e.series_id IS NOT NULL`

var seriesEventsSQL = fmt.Sprintf(`
SELECT e.event_id, e.date::text AS date, e.recipient_id
FROM events e
WHERE e.event_id IN (SELECT sm.event_id FROM (%s) sm WHERE sm.series_id = ?)
ORDER BY e.date ASC, e.event_id ASC
`, seriesMembershipSQL)

// seriesEvents resolves a series' event list: the union of junction
// links and directly tagged events, deduplicated, in date order. Read
// errors degrade to an empty list (the order then passes through).
func (s *Splitter) seriesEvents(ctx context.Context, seriesID int) []EventInfo {
	var rows []struct {
		EventID     int    `bun:"event_id"`
		Date        string `bun:"date"`
		RecipientID *int   `bun:"recipient_id"`
	}
	if err := s.db.NewRaw(seriesEventsSQL, seriesID).Scan(ctx, &rows); err != nil {
		s.log.Warn("series events read failed", zap.Int("series", seriesID), zap.Error(err))
		return nil
	}

	out := make([]EventInfo, len(rows))
	for i, row := range rows {
		out[i] = EventInfo{EventID: row.EventID, Date: row.Date, RecipientID: row.RecipientID}
	}
	return out
}

// orderRegistrations loads an order's registration details. Read errors
// degrade to none, which sends the order down the even-split path.
func (s *Splitter) orderRegistrations(ctx context.Context, orderID int) []Registration {
	var rows []models.SeriesRegistration
	err := s.db.NewSelect().Model(&rows).
		Where("sr.order_id = ?", orderID).
		Order("sr.id ASC").
		Scan(ctx)
	if err != nil {
		s.log.Warn("order registrations read failed", zap.Int("order", orderID), zap.Error(err))
		return nil
	}

	out := make([]Registration, len(rows))
	for i, row := range rows {
		out[i] = Registration{
			ClassID:         row.ClassID,
			DiscountPercent: row.DiscountPercent,
			FinalPrice:      row.FinalPrice,
		}
	}
	return out
}

// eventPrices loads the configured base prices for the given events,
// indexed by class then event.
func (s *Splitter) eventPrices(ctx context.Context, events []EventInfo) PriceIndex {
	if len(events) == 0 {
		return PriceIndex{}
	}
	ids := make([]int, len(events))
	for i, ev := range events {
		ids[i] = ev.EventID
	}

	var rows []models.EventPricingRule
	err := s.db.NewSelect().Model(&rows).
		Where("epr.event_id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		s.log.Warn("event pricing read failed", zap.Error(err))
		return PriceIndex{}
	}

	index := PriceIndex{}
	for _, row := range rows {
		if index[row.ClassID] == nil {
			index[row.ClassID] = map[int]decimal.Decimal{}
		}
		index[row.ClassID][row.EventID] = row.BasePrice
	}
	return index
}

// Explode expands the given orders into per-event shares. Orders with a
// series reference always explode across that series' events, even when
// they also carry a legacy direct event reference; all others pass
// through as single rows.
func (s *Splitter) Explode(ctx context.Context, orders []models.Order) []EventShare {
	var out []EventShare
	for _, order := range orders {
		if order.SeriesID == nil {
			out = append(out, SplitOrder(order, nil, nil, nil, s.policy)...)
			continue
		}
		events := s.seriesEvents(ctx, *order.SeriesID)
		regs := s.orderRegistrations(ctx, order.OrderID)
		prices := s.eventPrices(ctx, events)
		out = append(out, SplitOrder(order, events, regs, prices, s.policy)...)
	}
	return out
}
