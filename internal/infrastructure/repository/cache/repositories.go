package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	basecache "github.com/riskibarqy/tennis-roundrobin/internal/platform/cache"
)

const (
	teamListKey      = "team:list"
	teamIDKeyPrefix  = "team:id:"
	participationKey = "participation:state"
	settingsKey      = "settings"
)

type TeamRepository struct {
	next  team.Repository
	lists *basecache.Store[[]team.Team]
	items *basecache.Store[cachedTeamByID]
}

func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{
		next:  next,
		lists: basecache.NewStore[[]team.Team](ttl),
		items: basecache.NewStore[cachedTeamByID](ttl),
	}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := r.lists.GetOrLoad(ctx, teamListKey, func(ctx context.Context) ([]team.Team, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	return team.CloneAll(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (team.Team, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, teamIDKey(teamID), func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	return cached.value.Clone(), cached.exists, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	defer r.invalidate(ctx, item.ID)
	return r.next.Upsert(ctx, item)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID int) error {
	defer r.invalidate(ctx, teamID)
	return r.next.Delete(ctx, teamID)
}

func (r *TeamRepository) invalidate(ctx context.Context, teamID int) {
	r.lists.Delete(ctx, teamListKey)
	r.items.Delete(ctx, teamIDKey(teamID))
}

func teamIDKey(teamID int) string {
	return teamIDKeyPrefix + strconv.Itoa(teamID)
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type ParticipationRepository struct {
	next  participation.Repository
	state *basecache.Store[participation.State]
}

func NewParticipationRepository(next participation.Repository, ttl time.Duration) *ParticipationRepository {
	return &ParticipationRepository{
		next:  next,
		state: basecache.NewStore[participation.State](ttl),
	}
}

func (r *ParticipationRepository) Get(ctx context.Context) (participation.State, error) {
	state, err := r.state.GetOrLoad(ctx, participationKey, r.next.Get)
	if err != nil {
		return nil, err
	}

	return state.Clone(), nil
}

func (r *ParticipationRepository) SetActive(ctx context.Context, teamID int, active bool) error {
	defer r.state.Delete(ctx, participationKey)
	return r.next.SetActive(ctx, teamID, active)
}

func (r *ParticipationRepository) Delete(ctx context.Context, teamID int) error {
	defer r.state.Delete(ctx, participationKey)
	return r.next.Delete(ctx, teamID)
}

type SettingsRepository struct {
	next  settings.Repository
	items *basecache.Store[cachedSettings]
}

type cachedSettings struct {
	value  settings.Settings
	exists bool
}

func NewSettingsRepository(next settings.Repository, ttl time.Duration) *SettingsRepository {
	return &SettingsRepository{
		next:  next,
		items: basecache.NewStore[cachedSettings](ttl),
	}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, settingsKey, func(ctx context.Context) (cachedSettings, error) {
		item, exists, err := r.next.Get(ctx)
		if err != nil {
			return cachedSettings{}, err
		}
		return cachedSettings{value: item, exists: exists}, nil
	})
	if err != nil {
		return settings.Settings{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *SettingsRepository) Save(ctx context.Context, item settings.Settings) error {
	defer r.items.Delete(ctx, settingsKey)
	return r.next.Save(ctx, item)
}
