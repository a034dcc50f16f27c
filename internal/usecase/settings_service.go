package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
)

type SettingsService struct {
	repo     settings.Repository
	defaults settings.Settings
}

// NewSettingsService falls back to defaults while nothing is stored. Invalid
// defaults are replaced with settings.Default().
func NewSettingsService(repo settings.Repository, defaults settings.Settings) *SettingsService {
	if err := defaults.Validate(); err != nil {
		defaults = settings.Default()
	}

	return &SettingsService{
		repo:     repo,
		defaults: defaults,
	}
}

func (s *SettingsService) Get(ctx context.Context) (settings.Settings, error) {
	item, exists, err := s.repo.Get(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if !exists {
		return s.defaults, nil
	}

	return item, nil
}

// UpdateMatchPoint changes the score ceiling for results entered from now on.
// Stored results are not re-clamped.
func (s *SettingsService) UpdateMatchPoint(ctx context.Context, matchPoint int) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.UpdateMatchPoint")
	defer span.End()

	item := settings.Settings{MatchPoint: matchPoint}
	if err := item.Validate(); err != nil {
		return settings.Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return settings.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	return item, nil
}
