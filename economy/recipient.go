package economy

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// promotorSeriesEventsSQL resolves the events of every series owned by
// a recipient's promotor, using the shared series membership fragment.
var promotorSeriesEventsSQL = fmt.Sprintf(`
			SELECT sm.event_id
			FROM (%s) sm
			INNER JOIN promotor_series prs ON prs.series_id = sm.series_id
			INNER JOIN payment_recipients pr ON pr.promotor_id = prs.promotor_id
			WHERE pr.recipient_id = ?`, seriesMembershipSQL)

// RecipientEvents collects every event ID reachable from a payment
// recipient through three independent paths: events tagged with the
// recipient, events owned by the recipient's promotor, and events in
// series owned by that promotor. Read errors on any path degrade to an
// empty contribution from that path.
func (s *Splitter) RecipientEvents(ctx context.Context, recipientID int) map[int]struct{} {
	queries := []struct {
		name string
		sql  string
	}{
		{"tagged", `SELECT e.event_id FROM events e WHERE e.recipient_id = ?`},
		{"promotor-events", `
			SELECT pe.event_id
			FROM promotor_events pe
			INNER JOIN payment_recipients pr ON pr.promotor_id = pe.promotor_id
			WHERE pr.recipient_id = ?`},
		{"promotor-series", promotorSeriesEventsSQL},
	}

	events := map[int]struct{}{}
	for _, q := range queries {
		var ids []int
		if err := s.db.NewRaw(q.sql, recipientID).Scan(ctx, &ids); err != nil {
			s.log.Warn("recipient event path read failed",
				zap.String("path", q.name), zap.Int("recipient", recipientID), zap.Error(err))
			continue
		}
		for _, id := range ids {
			events[id] = struct{}{}
		}
	}
	return events
}

// FilterForRecipient keeps the exploded rows belonging to one payment
// recipient: rows carrying the recipient tag, or, when untagged, rows
// whose event is in the recipient's event set.
func FilterForRecipient(rows []EventShare, recipientID int, events map[int]struct{}) []EventShare {
	out := make([]EventShare, 0, len(rows))
	for _, row := range rows {
		if row.RecipientID != nil {
			if *row.RecipientID == recipientID {
				out = append(out, row)
			}
			continue
		}
		if _, ok := events[row.EventID]; ok {
			out = append(out, row)
		}
	}
	return out
}
