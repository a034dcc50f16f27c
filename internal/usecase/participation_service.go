package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
)

type ParticipationService struct {
	teamRepo          team.Repository
	participationRepo participation.Repository
	logger            *logging.Logger
}

func NewParticipationService(
	teamRepo team.Repository,
	participationRepo participation.Repository,
	logger *logging.Logger,
) *ParticipationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ParticipationService{
		teamRepo:          teamRepo,
		participationRepo: participationRepo,
		logger:            logger,
	}
}

// State returns only the explicitly stored flags.
func (s *ParticipationService) State(ctx context.Context) (participation.State, error) {
	state, err := s.participationRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get participation: %w", err)
	}

	return state, nil
}

func (s *ParticipationService) IsActive(ctx context.Context, teamID int) (bool, error) {
	if teamID <= 0 {
		return false, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	state, err := s.State(ctx)
	if err != nil {
		return false, err
	}

	return participation.IsActive(teamID, state), nil
}

// SetActive withdraws or reinstates a team. Stored matches are kept either way.
func (s *ParticipationService) SetActive(ctx context.Context, teamID int, active bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.SetActive", teamAttr("team_id", teamID))
	defer span.End()

	if teamID <= 0 {
		return fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	if err := s.participationRepo.SetActive(ctx, teamID, active); err != nil {
		return fmt.Errorf("set participation: %w", err)
	}

	s.logger.InfoContext(ctx, "participation updated", "team_id", teamID, "active", active)
	return nil
}
