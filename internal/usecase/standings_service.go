package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/standings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
)

type StandingsService struct {
	teamRepo          team.Repository
	matchRepo         match.Repository
	participationRepo participation.Repository
}

func NewStandingsService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	participationRepo participation.Repository,
) *StandingsService {
	return &StandingsService{
		teamRepo:          teamRepo,
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
	}
}

// Standings ranks the active teams from the stored results. The table is
// recomputed on every call.
func (s *StandingsService) Standings(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	active, results, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return standings.Rank(active, results), nil
}

// TeamStats returns the aggregate of one active team.
func (s *StandingsService) TeamStats(ctx context.Context, teamID int) (standings.Stats, error) {
	if teamID <= 0 {
		return standings.Stats{}, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	active, results, err := s.load(ctx)
	if err != nil {
		return standings.Stats{}, err
	}

	stats, ok := standings.ComputeStats(active, results)[teamID]
	if !ok {
		return standings.Stats{}, fmt.Errorf("%w: active team=%d", ErrNotFound, teamID)
	}

	return stats, nil
}

func (s *StandingsService) load(ctx context.Context) ([]team.Team, match.Results, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams: %w", err)
	}
	state, err := s.participationRepo.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get participation: %w", err)
	}
	results, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list match results: %w", err)
	}

	return participation.ActiveTeams(teams, state), results, nil
}
