package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// clubStandingRow is a flat scan target for the standings cache join.
type clubStandingRow struct {
	ClubID          int     `bun:"club_id"`
	ClubName        string  `bun:"club_name"`
	TotalPoints     float64 `bun:"total_points"`
	Participants    int     `bun:"participants"`
	EventsCount     int     `bun:"events_count"`
	BestEventPoints float64 `bun:"best_event_points"`
	Ranking         int     `bun:"ranking"`
}

type clubStandingJSON struct {
	ClubID          int     `json:"clubID"`
	Club            string  `json:"club"`
	TotalPoints     float64 `json:"totalPoints"`
	Participants    int     `json:"participants"`
	EventsCount     int     `json:"eventsCount"`
	BestEventPoints float64 `json:"bestEventPoints"`
	Ranking         int     `json:"ranking"`
}

// ClubStandings returns the cached club standings for a series.
func (h *Handler) ClubStandings(c echo.Context) error {
	series := c.QueryParam("series")
	if series == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing series param")
	}

	var rows []clubStandingRow
	err := h.db.NewRaw(`
		SELECT csc.club_id, cl.name AS club_name, csc.total_points, csc.participants,
		       csc.events_count, csc.best_event_points, csc.ranking
		FROM club_standings_cache csc
		INNER JOIN clubs cl ON cl.club_id = csc.club_id
		WHERE csc.series_id = ?
		ORDER BY csc.ranking ASC, cl.name ASC`,
		series,
	).Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]clubStandingJSON, len(rows))
	for i, row := range rows {
		out[i] = clubStandingJSON{
			ClubID:          row.ClubID,
			Club:            row.ClubName,
			TotalPoints:     row.TotalPoints,
			Participants:    row.Participants,
			EventsCount:     row.EventsCount,
			BestEventPoints: row.BestEventPoints,
			Ranking:         row.Ranking,
		}
	}

	return c.JSON(http.StatusOK, out)
}

// clubDetailRow is a flat scan target for the per-event breakdown join.
type clubDetailRow struct {
	EventID           int     `bun:"event_id"`
	EventName         string  `bun:"event_name"`
	EventDate         string  `bun:"event_date"`
	TotalPoints       float64 `bun:"total_points"`
	ParticipantCount  int     `bun:"participant_count"`
	ScoringRiderCount int     `bun:"scoring_rider_count"`
	RiderID           int     `bun:"rider_id"`
	RiderName         string  `bun:"rider_name"`
	ClassID           int     `bun:"class_id"`
	OriginalPoints    float64 `bun:"original_points"`
	ClubPoints        float64 `bun:"club_points"`
	RankInClub        int     `bun:"rank_in_club"`
	PercentageApplied float64 `bun:"percentage_applied"`
}

type clubDetailRider struct {
	RiderID           int     `json:"riderID"`
	Rider             string  `json:"rider"`
	ClassID           int     `json:"classID"`
	OriginalPoints    float64 `json:"originalPoints"`
	ClubPoints        float64 `json:"clubPoints"`
	RankInClub        int     `json:"rankInClub"`
	PercentageApplied float64 `json:"percentageApplied"`
}

type clubDetailEvent struct {
	EventID           int               `json:"eventID"`
	Event             string            `json:"event"`
	Date              string            `json:"date"`
	TotalPoints       float64           `json:"totalPoints"`
	ParticipantCount  int               `json:"participantCount"`
	ScoringRiderCount int               `json:"scoringRiderCount"`
	Riders            []clubDetailRider `json:"riders"`
}

// ClubStandingsDetail returns one club's per-event point breakdown for
// a series, grouped by event.
func (h *Handler) ClubStandingsDetail(c echo.Context) error {
	series, club := c.QueryParam("series"), c.QueryParam("club")
	if series == "" || club == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing series or club param")
	}

	var rows []clubDetailRow
	err := h.db.NewRaw(`
		SELECT e.event_id, e.name AS event_name, e.date::text AS event_date,
		       cep.total_points, cep.participant_count, cep.scoring_rider_count,
		       crp.rider_id, ri.name AS rider_name, crp.class_id,
		       crp.original_points, crp.club_points, crp.rank_in_club, crp.percentage_applied
		FROM club_event_points cep
		INNER JOIN events e ON e.event_id = cep.event_id
		INNER JOIN club_rider_points crp
		        ON crp.club_id = cep.club_id AND crp.event_id = cep.event_id AND crp.series_id = cep.series_id
		INNER JOIN riders ri ON ri.rider_id = crp.rider_id
		WHERE cep.series_id = ? AND cep.club_id = ?
		ORDER BY e.date ASC, e.event_id ASC, crp.class_id ASC, crp.rank_in_club ASC`,
		series, club,
	).Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, groupDetailByEvent(rows))
}

// groupDetailByEvent converts flat rows into event-grouped slices.
func groupDetailByEvent(rows []clubDetailRow) []clubDetailEvent {
	order := []string{}
	events := map[string]*clubDetailEvent{}

	for _, row := range rows {
		key := fmt.Sprintf("%d", row.EventID)
		rider := clubDetailRider{
			RiderID:           row.RiderID,
			Rider:             row.RiderName,
			ClassID:           row.ClassID,
			OriginalPoints:    row.OriginalPoints,
			ClubPoints:        row.ClubPoints,
			RankInClub:        row.RankInClub,
			PercentageApplied: row.PercentageApplied,
		}

		if _, ok := events[key]; !ok {
			order = append(order, key)
			events[key] = &clubDetailEvent{
				EventID:           row.EventID,
				Event:             row.EventName,
				Date:              row.EventDate,
				TotalPoints:       row.TotalPoints,
				ParticipantCount:  row.ParticipantCount,
				ScoringRiderCount: row.ScoringRiderCount,
				Riders:            []clubDetailRider{},
			}
		}
		events[key].Riders = append(events[key].Riders, rider)
	}

	out := make([]clubDetailEvent, 0, len(order))
	for _, k := range order {
		out = append(out, *events[k])
	}
	return out
}

// seriesStandingRow is a flat scan target for the rider totals query.
type seriesStandingRow struct {
	RiderID     int     `bun:"rider_id"`
	RiderName   string  `bun:"rider_name"`
	ClubName    *string `bun:"club_name"`
	TotalPoints float64 `bun:"total_points"`
	EventsCount int     `bun:"events_count"`
}

type seriesStandingJSON struct {
	RiderID     int     `json:"riderID"`
	Rider       string  `json:"rider"`
	Club        *string `json:"club,omitempty"`
	TotalPoints float64 `json:"totalPoints"`
	EventsCount int     `json:"eventsCount"`
	Ranking     int     `json:"ranking"`
}

// SeriesStandings returns per-rider series totals for one class,
// ranked the same way club standings are: ties share a rank, the next
// distinct total takes its list position.
func (h *Handler) SeriesStandings(c echo.Context) error {
	series, class := c.QueryParam("series"), c.QueryParam("class")
	if series == "" || class == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing series or class param")
	}

	var rows []seriesStandingRow
	err := h.db.NewRaw(`
		SELECT sres.rider_id, ri.name AS rider_name, cl.name AS club_name,
		       SUM(sres.points) AS total_points, COUNT(*) AS events_count
		FROM series_results sres
		INNER JOIN riders ri ON ri.rider_id = sres.rider_id
		LEFT JOIN clubs cl ON cl.club_id = ri.club_id
		WHERE sres.series_id = ? AND sres.class_id = ?
		GROUP BY sres.rider_id, ri.name, cl.name
		ORDER BY total_points DESC, ri.name ASC`,
		series, class,
	).Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]seriesStandingJSON, len(rows))
	for i, row := range rows {
		out[i] = seriesStandingJSON{
			RiderID:     row.RiderID,
			Rider:       row.RiderName,
			Club:        row.ClubName,
			TotalPoints: row.TotalPoints,
			EventsCount: row.EventsCount,
			Ranking:     i + 1,
		}
		if i > 0 && row.TotalPoints == rows[i-1].TotalPoints {
			out[i].Ranking = out[i-1].Ranking
		}
	}

	return c.JSON(http.StatusOK, out)
}
