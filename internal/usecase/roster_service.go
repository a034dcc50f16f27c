package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
)

type SaveTeamInput struct {
	ID      int
	Members []string
}

type RosterService struct {
	teamRepo          team.Repository
	matchRepo         match.Repository
	participationRepo participation.Repository
	logger            *logging.Logger
}

func NewRosterService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	participationRepo participation.Repository,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		teamRepo:          teamRepo,
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
		logger:            logger,
	}
}

func (s *RosterService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *RosterService) GetTeam(ctx context.Context, teamID int) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	return item, nil
}

// SaveTeam creates or replaces a roster entry. Blank member names are dropped.
func (s *RosterService) SaveTeam(ctx context.Context, input SaveTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SaveTeam", teamAttr("team_id", input.ID))
	defer span.End()

	members := make([]string, 0, len(input.Members))
	for _, m := range input.Members {
		if name := strings.TrimSpace(m); name != "" {
			members = append(members, name)
		}
	}

	item := team.Team{ID: input.ID, Members: members}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Upsert(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("upsert team: %w", err)
	}

	s.logger.InfoContext(ctx, "team saved", "team_id", item.ID, "members", len(item.Members))
	return item, nil
}

// DeleteTeam removes the team together with its matches and participation flag.
func (s *RosterService) DeleteTeam(ctx context.Context, teamID int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeleteTeam", teamAttr("team_id", teamID))
	defer span.End()

	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return err
	}

	if err := s.matchRepo.DeleteByTeam(ctx, teamID); err != nil {
		return fmt.Errorf("delete matches of team: %w", err)
	}
	if err := s.participationRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete participation of team: %w", err)
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", teamID)
	return nil
}
