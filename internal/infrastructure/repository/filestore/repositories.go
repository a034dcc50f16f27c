package filestore

import (
	"context"
	"sort"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	var out []team.Team
	r.store.view(func(state tournamentState) {
		out = make([]team.Team, 0, len(state.teams))
		for _, t := range state.teams {
			out = append(out, t.Clone())
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int) (team.Team, bool, error) {
	var (
		item   team.Team
		exists bool
	)
	r.store.view(func(state tournamentState) {
		item, exists = state.teams[teamID]
		item = item.Clone()
	})

	return item, exists, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	return r.store.update(func(state *tournamentState) {
		state.teams[item.ID] = item.Clone()
	})
}

func (r *TeamRepository) Delete(_ context.Context, teamID int) error {
	return r.store.update(func(state *tournamentState) {
		delete(state.teams, teamID)
	})
}

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) List(_ context.Context) (match.Results, error) {
	var out match.Results
	r.store.view(func(state tournamentState) {
		out = state.matches.Clone()
	})

	return out, nil
}

func (r *MatchRepository) Get(_ context.Context, key match.PairKey) (match.Result, bool, error) {
	var (
		item   match.Result
		exists bool
	)
	r.store.view(func(state tournamentState) {
		item, exists = state.matches[key]
		item = item.Canonical()
	})

	return item, exists, nil
}

func (r *MatchRepository) Upsert(_ context.Context, item match.Result) error {
	item = item.Canonical()
	return r.store.update(func(state *tournamentState) {
		state.matches[item.Key()] = item
	})
}

func (r *MatchRepository) Delete(_ context.Context, key match.PairKey) error {
	return r.store.update(func(state *tournamentState) {
		delete(state.matches, key)
	})
}

func (r *MatchRepository) DeleteByTeam(_ context.Context, teamID int) error {
	return r.store.update(func(state *tournamentState) {
		for key, res := range state.matches {
			if res.Involves(teamID) {
				delete(state.matches, key)
			}
		}
	})
}

type ParticipationRepository struct {
	store *Store
}

func NewParticipationRepository(store *Store) *ParticipationRepository {
	return &ParticipationRepository{store: store}
}

func (r *ParticipationRepository) Get(_ context.Context) (participation.State, error) {
	var out participation.State
	r.store.view(func(state tournamentState) {
		out = state.participation.Clone()
	})

	return out, nil
}

func (r *ParticipationRepository) SetActive(_ context.Context, teamID int, active bool) error {
	return r.store.update(func(state *tournamentState) {
		state.participation.Set(teamID, active)
	})
}

func (r *ParticipationRepository) Delete(_ context.Context, teamID int) error {
	return r.store.update(func(state *tournamentState) {
		delete(state.participation, teamID)
	})
}

type SettingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.Settings, bool, error) {
	var (
		item   settings.Settings
		exists bool
	)
	r.store.view(func(state tournamentState) {
		if state.settings != nil {
			item, exists = *state.settings, true
		}
	})

	return item, exists, nil
}

func (r *SettingsRepository) Save(_ context.Context, item settings.Settings) error {
	return r.store.update(func(state *tournamentState) {
		state.settings = &item
	})
}
