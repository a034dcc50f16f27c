package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
)

type ParticipationRepository struct {
	mu    sync.RWMutex
	state participation.State
}

func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{state: make(participation.State)}
}

func (r *ParticipationRepository) Get(_ context.Context) (participation.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.Clone(), nil
}

func (r *ParticipationRepository) SetActive(_ context.Context, teamID int, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Set(teamID, active)
	return nil
}

func (r *ParticipationRepository) Delete(_ context.Context, teamID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.state, teamID)
	return nil
}
