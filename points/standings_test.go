package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

func TestBuildStandingsTiesShareRank(t *testing.T) {
	eventPoints := []models.ClubEventPoints{
		{ClubID: 1, EventID: 10, SeriesID: 5, TotalPoints: 100},
		{ClubID: 2, EventID: 10, SeriesID: 5, TotalPoints: 100},
		{ClubID: 3, EventID: 10, SeriesID: 5, TotalPoints: 80},
	}

	standings := BuildStandings(5, eventPoints, nil)
	require.Len(t, standings, 3)

	assert.Equal(t, 1, standings[0].Ranking)
	assert.Equal(t, 1, standings[1].Ranking)
	// Dense competition ranking: third club takes its list position.
	assert.Equal(t, 3, standings[2].Ranking)
	assert.Equal(t, 80.0, standings[2].TotalPoints)
}

func TestBuildStandingsThreeWayTie(t *testing.T) {
	eventPoints := []models.ClubEventPoints{
		{ClubID: 1, TotalPoints: 60},
		{ClubID: 2, TotalPoints: 60},
		{ClubID: 3, TotalPoints: 60},
		{ClubID: 4, TotalPoints: 10},
	}

	standings := BuildStandings(1, eventPoints, nil)
	require.Len(t, standings, 4)
	assert.Equal(t, []int{1, 1, 1, 4}, []int{
		standings[0].Ranking, standings[1].Ranking, standings[2].Ranking, standings[3].Ranking,
	})
}

func TestBuildStandingsAggregation(t *testing.T) {
	eventPoints := []models.ClubEventPoints{
		{ClubID: 1, EventID: 10, SeriesID: 5, TotalPoints: 40},
		{ClubID: 1, EventID: 11, SeriesID: 5, TotalPoints: 65},
		{ClubID: 2, EventID: 10, SeriesID: 5, TotalPoints: 30},
	}
	riderPoints := []models.ClubRiderPoints{
		{ClubID: 1, EventID: 10, RiderID: 1},
		{ClubID: 1, EventID: 10, RiderID: 2},
		{ClubID: 1, EventID: 11, RiderID: 1}, // same rider twice counts once
		{ClubID: 2, EventID: 10, RiderID: 3},
	}

	standings := BuildStandings(5, eventPoints, riderPoints)
	require.Len(t, standings, 2)

	top := standings[0]
	assert.Equal(t, 1, top.ClubID)
	assert.Equal(t, 105.0, top.TotalPoints)
	assert.Equal(t, 2, top.Participants)
	assert.Equal(t, 2, top.EventsCount)
	assert.Equal(t, 65.0, top.BestEventPoints)
	assert.Equal(t, 5, top.SeriesID)
}

func TestBuildStandingsExcludesZeroTotals(t *testing.T) {
	eventPoints := []models.ClubEventPoints{
		{ClubID: 1, TotalPoints: 20},
		{ClubID: 2, TotalPoints: 0},
	}

	standings := BuildStandings(1, eventPoints, nil)
	require.Len(t, standings, 1)
	assert.Equal(t, 1, standings[0].ClubID)
}

func TestBuildStandingsDeterministic(t *testing.T) {
	eventPoints := []models.ClubEventPoints{
		{ClubID: 3, EventID: 1, TotalPoints: 55},
		{ClubID: 1, EventID: 1, TotalPoints: 55},
		{ClubID: 2, EventID: 2, TotalPoints: 70},
		{ClubID: 3, EventID: 2, TotalPoints: 15},
	}
	riderPoints := []models.ClubRiderPoints{
		{ClubID: 3, RiderID: 1},
		{ClubID: 1, RiderID: 2},
		{ClubID: 2, RiderID: 3},
	}

	first := BuildStandings(9, eventPoints, riderPoints)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildStandings(9, eventPoints, riderPoints))
	}
}
