// Package guarded puts a shared circuit breaker in front of repositories
// backed by a remote database, so an unreachable database fails fast.
package guarded

import (
	"context"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/resilience"
)

func call[T any](ctx context.Context, b *resilience.Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := b.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

type TeamRepository struct {
	next    team.Repository
	breaker *resilience.Breaker
}

func NewTeamRepository(next team.Repository, breaker *resilience.Breaker) *TeamRepository {
	return &TeamRepository{next: next, breaker: breaker}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return call(ctx, r.breaker, r.next.List)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (team.Team, bool, error) {
	var found bool
	item, err := call(ctx, r.breaker, func(ctx context.Context) (team.Team, error) {
		item, ok, err := r.next.GetByID(ctx, teamID)
		found = ok
		return item, err
	})
	return item, found, err
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error { return r.next.Upsert(ctx, item) })
}

func (r *TeamRepository) Delete(ctx context.Context, teamID int) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error { return r.next.Delete(ctx, teamID) })
}

type MatchRepository struct {
	next    match.Repository
	breaker *resilience.Breaker
}

func NewMatchRepository(next match.Repository, breaker *resilience.Breaker) *MatchRepository {
	return &MatchRepository{next: next, breaker: breaker}
}

func (r *MatchRepository) List(ctx context.Context) (match.Results, error) {
	return call(ctx, r.breaker, r.next.List)
}

func (r *MatchRepository) Get(ctx context.Context, key match.PairKey) (match.Result, bool, error) {
	var found bool
	item, err := call(ctx, r.breaker, func(ctx context.Context) (match.Result, error) {
		item, ok, err := r.next.Get(ctx, key)
		found = ok
		return item, err
	})
	return item, found, err
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Result) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error { return r.next.Upsert(ctx, item) })
}

func (r *MatchRepository) Delete(ctx context.Context, key match.PairKey) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error { return r.next.Delete(ctx, key) })
}

func (r *MatchRepository) DeleteByTeam(ctx context.Context, teamID int) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error { return r.next.DeleteByTeam(ctx, teamID) })
}

type ParticipationRepository struct {
	next    participation.Repository
	breaker *resilience.Breaker
}

func NewParticipationRepository(next participation.Repository, breaker *resilience.Breaker) *ParticipationRepository {
	return &ParticipationRepository{next: next, breaker: breaker}
}

func (r *ParticipationRepository) Get(ctx context.Context) (participation.State, error) {
	return call(ctx, r.breaker, r.next.Get)
}

func (r *ParticipationRepository) SetActive(ctx context.Context, teamID int, active bool) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error { return r.next.SetActive(ctx, teamID, active) })
}

func (r *ParticipationRepository) Delete(ctx context.Context, teamID int) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error { return r.next.Delete(ctx, teamID) })
}

type SettingsRepository struct {
	next    settings.Repository
	breaker *resilience.Breaker
}

func NewSettingsRepository(next settings.Repository, breaker *resilience.Breaker) *SettingsRepository {
	return &SettingsRepository{next: next, breaker: breaker}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, bool, error) {
	var stored bool
	item, err := call(ctx, r.breaker, func(ctx context.Context) (settings.Settings, error) {
		item, ok, err := r.next.Get(ctx)
		stored = ok
		return item, err
	})
	return item, stored, err
}

func (r *SettingsRepository) Save(ctx context.Context, item settings.Settings) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error { return r.next.Save(ctx, item) })
}
