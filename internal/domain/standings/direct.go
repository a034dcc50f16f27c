package standings

import (
	"cmp"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
)

// CompareDirect decides the head-to-head between teamA and teamB: +1 when A
// ranks above B, -1 when B ranks above A and 0 when their direct matches are
// level or none has been played. Every stored result between the two is
// counted, a won match is worth a full point and a drawn one half a point to
// each side.
func CompareDirect(teamA, teamB int, results match.Results) int {
	if teamA == teamB {
		return 0
	}

	// Tracked in half points.
	var halvesA, halvesB int
	for _, res := range results {
		if !res.Between(teamA, teamB) {
			continue
		}
		scoredA, scoredB, ok := res.ScoreOf(teamA)
		if !ok {
			continue
		}
		switch {
		case scoredA > scoredB:
			halvesA += 2
		case scoredB > scoredA:
			halvesB += 2
		default:
			halvesA++
			halvesB++
		}
	}

	return cmp.Compare(halvesA, halvesB)
}
