package points

import (
	"math"
	"sort"
)

// Tier percentages: the best scorer per club/class keeps all points, the
// second keeps half, everyone below contributes nothing.
const (
	tierFirstPct  = 100.0
	tierSecondPct = 50.0
)

// RiderScore is one finished result joined to the rider's club.
type RiderScore struct {
	RiderID int
	ClubID  int
	ClassID int
	Points  float64
}

// TieredScore is a rider's score after ranking within its club/class group.
type TieredScore struct {
	RiderScore
	ClubPoints float64
	Rank       int
	Percentage float64
}

// TierClubPoints ranks riders within each (club, class) group by points
// descending and applies the 100%/50%/0% tiers. The input order is the
// tie-break: equal scores keep their relative order. Callers pass only
// finished, points-awarding results of riders with a club; zero scores
// are skipped.
func TierClubPoints(scores []RiderScore) []TieredScore {
	type groupKey struct{ club, class int }

	groups := map[groupKey][]RiderScore{}
	order := []groupKey{}
	for _, s := range scores {
		if s.Points <= 0 || s.ClubID == 0 {
			continue
		}
		k := groupKey{s.ClubID, s.ClassID}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], s)
	}

	var out []TieredScore
	for _, k := range order {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Points > group[j].Points
		})
		for i, s := range group {
			rank := i + 1
			pct := 0.0
			clubPoints := 0.0
			switch rank {
			case 1:
				pct = tierFirstPct
				clubPoints = s.Points
			case 2:
				pct = tierSecondPct
				clubPoints = round2(s.Points * tierSecondPct / 100)
			}
			out = append(out, TieredScore{
				RiderScore: s,
				ClubPoints: clubPoints,
				Rank:       rank,
				Percentage: pct,
			})
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
