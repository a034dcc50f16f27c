package standings

import (
	"cmp"
	"sort"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
)

// Rank orders the teams best to worst.
//
// The comparison operates in this order, each level only consulted when the
// previous one is level:
//   - win rate
//   - point differential
//   - the direct match between the two teams (see CompareDirect)
//   - number of wins
//   - points scored
//
// Teams still level after all five keep their input order.
func Rank(teams []team.Team, results match.Results) []Row {
	stats := ComputeStats(teams, results)

	rows := make([]Row, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, Row{Team: t.Clone(), Stats: stats[t.ID]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return compareRows(rows[i], rows[j], results) < 0
	})

	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}

// compareRows is negative when a ranks above b.
func compareRows(a, b Row, results match.Results) int {
	if c := compareWinRate(a.Stats, b.Stats); c != 0 {
		return -c
	}
	if c := cmp.Compare(a.Stats.PointDiff, b.Stats.PointDiff); c != 0 {
		return -c
	}
	if c := CompareDirect(a.Team.ID, b.Team.ID, results); c != 0 {
		return -c
	}
	if c := cmp.Compare(a.Stats.Wins, b.Stats.Wins); c != 0 {
		return -c
	}
	return -cmp.Compare(a.Stats.PointsFor, b.Stats.PointsFor)
}

// compareWinRate compares wins/played exactly by cross multiplication.
func compareWinRate(a, b Stats) int {
	numA, denA := winRateFraction(a)
	numB, denB := winRateFraction(b)
	return cmp.Compare(numA*denB, numB*denA)
}

func winRateFraction(s Stats) (int, int) {
	played := s.Played()
	if played == 0 {
		return 0, 1
	}
	return s.Wins, played
}
