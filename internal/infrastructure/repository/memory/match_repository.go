package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items match.Results
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(match.Results)}
}

func (r *MatchRepository) List(_ context.Context) (match.Results, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.items.Clone(), nil
}

func (r *MatchRepository) Get(_ context.Context, key match.PairKey) (match.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	if !ok {
		return match.Result{}, false, nil
	}

	return item.Canonical(), true, nil
}

// Upsert replaces the stored result of the pair.
func (r *MatchRepository) Upsert(_ context.Context, item match.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item = item.Canonical()
	r.items[item.Key()] = item
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, key match.PairKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, key)
	return nil
}

func (r *MatchRepository) DeleteByTeam(_ context.Context, teamID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.Involves(teamID) {
			delete(r.items, key)
		}
	}
	return nil
}
