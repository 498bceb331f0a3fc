package economy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotorSeriesPathUsesFullSeriesMembership(t *testing.T) {
	// The promotor-series path and the splitter's event list must agree
	// on what belongs to a series: junction links plus events tagged
	// directly via events.series_id. Otherwise a directly tagged event
	// gets exploded rows that never reach its promotor's recipient.
	assert.True(t, strings.Contains(seriesMembershipSQL, "series_events"))
	assert.True(t, strings.Contains(seriesMembershipSQL, "e.series_id IS NOT NULL"))
	assert.True(t, strings.Contains(promotorSeriesEventsSQL, seriesMembershipSQL))
	assert.True(t, strings.Contains(seriesEventsSQL, seriesMembershipSQL))
}

func TestFilterForRecipientByTag(t *testing.T) {
	mine, other := 7, 8
	rows := []EventShare{
		{OrderID: 1, EventID: 1, RecipientID: &mine},
		{OrderID: 1, EventID: 2, RecipientID: &other},
		{OrderID: 2, EventID: 3, RecipientID: &mine},
	}

	got := FilterForRecipient(rows, 7, nil)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].EventID)
	assert.Equal(t, 3, got[1].EventID)
}

func TestFilterForRecipientEventSetFallback(t *testing.T) {
	// Rows without a recipient tag fall back to event-set membership,
	// covering recipients reachable only through the promotor-series path.
	rows := []EventShare{
		{OrderID: 1, EventID: 10},
		{OrderID: 1, EventID: 11},
		{OrderID: 2, EventID: 12},
	}
	events := map[int]struct{}{10: {}, 12: {}}

	got := FilterForRecipient(rows, 7, events)
	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].EventID)
	assert.Equal(t, 12, got[1].EventID)
}

func TestFilterForRecipientTagBeatsEventSet(t *testing.T) {
	// A row tagged for another recipient is excluded even when its
	// event is in this recipient's event set.
	other := 8
	rows := []EventShare{
		{OrderID: 1, EventID: 10, RecipientID: &other},
	}
	events := map[int]struct{}{10: {}}

	got := FilterForRecipient(rows, 7, events)
	assert.Empty(t, got)
}
