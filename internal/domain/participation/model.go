package participation

import "github.com/riskibarqy/tennis-roundrobin/internal/domain/team"

// Entry is the explicit participation flag stored for one team.
type Entry struct {
	Active bool
}

// State maps team ids to their participation entry. A team without an
// entry is active.
type State map[int]Entry

// IsActive reports whether teamID takes part in the standings.
func IsActive(teamID int, state State) bool {
	entry, ok := state[teamID]
	if !ok {
		return true
	}
	return entry.Active
}

// ActiveTeams filters out withdrawn teams, keeping the roster order.
func ActiveTeams(all []team.Team, state State) []team.Team {
	out := make([]team.Team, 0, len(all))
	for _, t := range all {
		if IsActive(t.ID, state) {
			out = append(out, t)
		}
	}
	return out
}

func (s State) Clone() State {
	out := make(State, len(s))
	for id, e := range s {
		out[id] = e
	}
	return out
}

// Set records an explicit flag for teamID.
func (s State) Set(teamID int, active bool) {
	s[teamID] = Entry{Active: active}
}
