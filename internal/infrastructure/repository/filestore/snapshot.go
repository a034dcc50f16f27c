package filestore

import (
	"sort"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
)

const snapshotVersion = 1

type snapshotDocument struct {
	Version       int                           `json:"version"`
	Teams         []teamDocument                `json:"teams"`
	Matches       []matchDocument               `json:"matches"`
	Participation map[string]participationEntry `json:"participation"`
	Settings      *settingsDocument             `json:"settings,omitempty"`
}

type teamDocument struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
}

type matchDocument struct {
	TeamA  int  `json:"team_a"`
	TeamB  int  `json:"team_b"`
	ScoreA *int `json:"score_a"`
	ScoreB *int `json:"score_b"`
	Winner *int `json:"winner"`
}

type participationEntry struct {
	Active bool `json:"active"`
}

type settingsDocument struct {
	MatchPoint int `json:"match_point"`
}

// tournamentState is the decoded, validated content of a snapshot.
type tournamentState struct {
	teams         map[int]team.Team
	matches       match.Results
	participation participation.State
	settings      *settings.Settings
}

func emptyState() tournamentState {
	return tournamentState{
		teams:         make(map[int]team.Team),
		matches:       make(match.Results),
		participation: make(participation.State),
	}
}

func (s tournamentState) clone() tournamentState {
	out := tournamentState{
		teams:         make(map[int]team.Team, len(s.teams)),
		matches:       s.matches.Clone(),
		participation: s.participation.Clone(),
	}
	for id, t := range s.teams {
		out.teams[id] = t.Clone()
	}
	if s.settings != nil {
		item := *s.settings
		out.settings = &item
	}
	return out
}

func (s tournamentState) document() snapshotDocument {
	doc := snapshotDocument{
		Version:       snapshotVersion,
		Teams:         make([]teamDocument, 0, len(s.teams)),
		Matches:       make([]matchDocument, 0, len(s.matches)),
		Participation: make(map[string]participationEntry, len(s.participation)),
	}

	ids := make([]int, 0, len(s.teams))
	for id := range s.teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		doc.Teams = append(doc.Teams, teamDocument{ID: id, Members: s.teams[id].Members})
	}

	for _, res := range s.matches.Sorted() {
		doc.Matches = append(doc.Matches, matchDocument{
			TeamA:  res.TeamA,
			TeamB:  res.TeamB,
			ScoreA: res.ScoreA,
			ScoreB: res.ScoreB,
			Winner: res.Winner,
		})
	}

	for id, entry := range s.participation {
		doc.Participation[strconv.Itoa(id)] = participationEntry{Active: entry.Active}
	}

	if s.settings != nil {
		doc.Settings = &settingsDocument{MatchPoint: s.settings.MatchPoint}
	}

	return doc
}

func stateFromDocument(doc snapshotDocument) (tournamentState, error) {
	if doc.Version != 0 && doc.Version != snapshotVersion {
		return tournamentState{}, crerr.Newf("unsupported snapshot version %d", doc.Version)
	}

	state := emptyState()
	for i, t := range doc.Teams {
		item := team.Team{ID: t.ID, Members: t.Members}
		if err := item.Validate(); err != nil {
			return tournamentState{}, crerr.Wrapf(err, "snapshot team %d", i)
		}
		state.teams[item.ID] = item.Clone()
	}

	for i, m := range doc.Matches {
		res, err := match.NewResult(m.TeamA, m.TeamB, m.ScoreA, m.ScoreB, m.Winner)
		if err != nil {
			return tournamentState{}, crerr.Wrapf(err, "snapshot match %d", i)
		}
		res = res.Canonical()
		state.matches[res.Key()] = res
	}

	for raw, entry := range doc.Participation {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return tournamentState{}, crerr.Newf("snapshot participation has invalid team id %q", raw)
		}
		state.participation.Set(id, entry.Active)
	}

	if doc.Settings != nil {
		item := settings.Settings{MatchPoint: doc.Settings.MatchPoint}
		if err := item.Validate(); err != nil {
			return tournamentState{}, crerr.Wrap(err, "snapshot settings")
		}
		state.settings = &item
	}

	return state, nil
}
