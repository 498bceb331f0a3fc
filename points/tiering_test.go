package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierClubPointsThreeRiders(t *testing.T) {
	scores := []RiderScore{
		{RiderID: 1, ClubID: 7, ClassID: 3, Points: 50},
		{RiderID: 2, ClubID: 7, ClassID: 3, Points: 30},
		{RiderID: 3, ClubID: 7, ClassID: 3, Points: 10},
	}

	tiered := TierClubPoints(scores)
	require.Len(t, tiered, 3)

	assert.Equal(t, 50.0, tiered[0].ClubPoints)
	assert.Equal(t, 1, tiered[0].Rank)
	assert.Equal(t, 100.0, tiered[0].Percentage)

	assert.Equal(t, 15.0, tiered[1].ClubPoints)
	assert.Equal(t, 2, tiered[1].Rank)
	assert.Equal(t, 50.0, tiered[1].Percentage)

	assert.Equal(t, 0.0, tiered[2].ClubPoints)
	assert.Equal(t, 3, tiered[2].Rank)
	assert.Equal(t, 0.0, tiered[2].Percentage)
}

func TestTierClubPointsSecondPlaceRounding(t *testing.T) {
	tiered := TierClubPoints([]RiderScore{
		{RiderID: 1, ClubID: 1, ClassID: 1, Points: 40},
		{RiderID: 2, ClubID: 1, ClassID: 1, Points: 15.25},
	})
	require.Len(t, tiered, 2)
	assert.Equal(t, 7.63, tiered[1].ClubPoints)
}

func TestTierClubPointsGroupsPerClubAndClass(t *testing.T) {
	scores := []RiderScore{
		// Club 1, class 1: two scorers.
		{RiderID: 1, ClubID: 1, ClassID: 1, Points: 20},
		{RiderID: 2, ClubID: 1, ClassID: 1, Points: 40},
		// Club 1, class 2: its own group, so rider 3 ranks first again.
		{RiderID: 3, ClubID: 1, ClassID: 2, Points: 5},
		// Club 2, class 1: independent of club 1.
		{RiderID: 4, ClubID: 2, ClassID: 1, Points: 30},
	}

	tiered := TierClubPoints(scores)
	require.Len(t, tiered, 4)

	byRider := map[int]TieredScore{}
	for _, ts := range tiered {
		byRider[ts.RiderID] = ts
	}

	assert.Equal(t, 1, byRider[2].Rank)
	assert.Equal(t, 40.0, byRider[2].ClubPoints)
	assert.Equal(t, 2, byRider[1].Rank)
	assert.Equal(t, 10.0, byRider[1].ClubPoints)
	assert.Equal(t, 1, byRider[3].Rank)
	assert.Equal(t, 5.0, byRider[3].ClubPoints)
	assert.Equal(t, 1, byRider[4].Rank)
	assert.Equal(t, 30.0, byRider[4].ClubPoints)
}

func TestTierClubPointsStableTieBreak(t *testing.T) {
	// Equal scores keep their input order: rider 9 came first in the
	// source query, so it takes rank 1.
	tiered := TierClubPoints([]RiderScore{
		{RiderID: 9, ClubID: 1, ClassID: 1, Points: 25},
		{RiderID: 8, ClubID: 1, ClassID: 1, Points: 25},
	})
	require.Len(t, tiered, 2)
	assert.Equal(t, 9, tiered[0].RiderID)
	assert.Equal(t, 1, tiered[0].Rank)
	assert.Equal(t, 8, tiered[1].RiderID)
	assert.Equal(t, 2, tiered[1].Rank)
}

func TestTierClubPointsSkipsZeroAndClubless(t *testing.T) {
	tiered := TierClubPoints([]RiderScore{
		{RiderID: 1, ClubID: 1, ClassID: 1, Points: 0},
		{RiderID: 2, ClubID: 0, ClassID: 1, Points: 10},
		{RiderID: 3, ClubID: 1, ClassID: 1, Points: 10},
	})
	require.Len(t, tiered, 1)
	assert.Equal(t, 3, tiered[0].RiderID)
}
