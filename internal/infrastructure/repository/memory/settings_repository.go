package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
)

type SettingsRepository struct {
	mu     sync.RWMutex
	item   settings.Settings
	stored bool
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.item, r.stored, nil
}

func (r *SettingsRepository) Save(_ context.Context, item settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.item = item
	r.stored = true
	return nil
}
