package standings

import "github.com/riskibarqy/tennis-roundrobin/internal/domain/team"

// Stats aggregates one team's counted matches. It is derived on every
// request and never stored.
type Stats struct {
	Wins          int
	Losses        int
	Draws         int
	PointsFor     int
	PointsAgainst int
	PointDiff     int
	WinRate       float64
}

// Played is the number of counted matches.
func (s Stats) Played() int {
	return s.Wins + s.Losses + s.Draws
}

// Row is one line of the standings table. Position is 1-indexed.
type Row struct {
	Position int
	Team     team.Team
	Stats    Stats
}
