package standings

import (
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
)

// ComputeStats aggregates results for the given teams. Only teams in the
// slice are considered: a result is counted when both scores are present and
// both of its teams are in the slice, so results against withdrawn teams the
// caller left out are skipped.
func ComputeStats(teams []team.Team, results match.Results) map[int]Stats {
	metrics := make(map[int]*Stats, len(teams))
	for _, t := range teams {
		if _, ok := metrics[t.ID]; !ok {
			metrics[t.ID] = &Stats{}
		}
	}

	for _, res := range results {
		extractResult(res, metrics)
	}

	out := make(map[int]Stats, len(metrics))
	for id, m := range metrics {
		m.PointDiff = m.PointsFor - m.PointsAgainst
		if played := m.Played(); played > 0 {
			m.WinRate = float64(m.Wins) / float64(played)
		}
		out[id] = *m
	}

	return out
}

func extractResult(res match.Result, metrics map[int]*Stats) {
	if !res.Played() {
		return
	}
	m1, ok1 := metrics[res.TeamA]
	m2, ok2 := metrics[res.TeamB]
	if !ok1 || !ok2 {
		return
	}

	score1 := *res.ScoreA
	score2 := *res.ScoreB
	m1.PointsFor += score1
	m1.PointsAgainst += score2
	m2.PointsFor += score2
	m2.PointsAgainst += score1

	switch {
	case res.Winner == nil:
		m1.Draws++
		m2.Draws++
	case *res.Winner == res.TeamA:
		m1.Wins++
		m2.Losses++
	case *res.Winner == res.TeamB:
		m2.Wins++
		m1.Losses++
	}
}
