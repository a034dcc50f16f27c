package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[int]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[int]team.Team, len(teams))
	for _, item := range teams {
		if item.ID <= 0 {
			continue
		}
		items[item.ID] = item.Clone()
	}

	return &TeamRepository{items: items}
}

// List returns the roster ordered by team id.
func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return item.Clone(), true, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, teamID)
	return nil
}
