package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultImportWorkers = 4

type rulesProvider interface {
	Get(ctx context.Context) (settings.Settings, error)
}

type SubmitResultInput struct {
	TeamA  int
	TeamB  int
	ScoreA int
	ScoreB int
}

type ImportFailure struct {
	Index  int
	TeamA  int
	TeamB  int
	Reason string
}

type ImportReport struct {
	Imported int
	Failures []ImportFailure
}

// GridCell is one square of the pairwise table, seen from the row team.
type GridCell struct {
	RowTeamID    int
	ColumnTeamID int
	Self         bool
	Inactive     bool
	Played       bool
	ScoreFor     *int
	ScoreAgainst *int
	WinnerID     *int
}

type GridTeam struct {
	Team   team.Team
	Active bool
}

type Grid struct {
	Teams []GridTeam
	Rows  [][]GridCell
}

type MatchService struct {
	teamRepo          team.Repository
	matchRepo         match.Repository
	participationRepo participation.Repository
	rules             rulesProvider
	importWorkers     int
	logger            *logging.Logger
}

func NewMatchService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	participationRepo participation.Repository,
	rules rulesProvider,
	importWorkers int,
	logger *logging.Logger,
) *MatchService {
	if importWorkers <= 0 {
		importWorkers = defaultImportWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		teamRepo:          teamRepo,
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
		rules:             rules,
		importWorkers:     importWorkers,
		logger:            logger,
	}
}

// tournamentSnapshot is what a submission is checked against.
type tournamentSnapshot struct {
	teams map[int]team.Team
	state participation.State
	rules settings.Settings
}

func (s *MatchService) loadSnapshot(ctx context.Context) (tournamentSnapshot, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return tournamentSnapshot{}, fmt.Errorf("list teams: %w", err)
	}
	state, err := s.participationRepo.Get(ctx)
	if err != nil {
		return tournamentSnapshot{}, fmt.Errorf("get participation: %w", err)
	}
	rules, err := s.rules.Get(ctx)
	if err != nil {
		return tournamentSnapshot{}, err
	}

	byID := make(map[int]team.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	return tournamentSnapshot{teams: byID, state: state, rules: rules}, nil
}

func (snap tournamentSnapshot) normalize(input SubmitResultInput) (match.Result, error) {
	if _, err := match.NewPairKey(input.TeamA, input.TeamB); err != nil {
		return match.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, id := range []int{input.TeamA, input.TeamB} {
		if _, ok := snap.teams[id]; !ok {
			return match.Result{}, fmt.Errorf("%w: team=%d", ErrNotFound, id)
		}
		if !participation.IsActive(id, snap.state) {
			return match.Result{}, fmt.Errorf("%w: team=%d", ErrTeamInactive, id)
		}
	}

	res, err := match.Record(input.TeamA, input.TeamB, input.ScoreA, input.ScoreB, snap.rules)
	if err != nil {
		return match.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return res, nil
}

// Submit stores the result of a match, replacing any earlier result for the
// pair. Scores are clamped to the current match point.
func (s *MatchService) Submit(ctx context.Context, input SubmitResultInput) (match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Submit",
		teamAttr("team_a", input.TeamA), teamAttr("team_b", input.TeamB))
	defer span.End()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return match.Result{}, err
	}

	res, err := snap.normalize(input)
	if err != nil {
		return match.Result{}, err
	}

	if err := s.matchRepo.Upsert(ctx, res); err != nil {
		return match.Result{}, fmt.Errorf("upsert match result: %w", err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"pair", res.Key().String(),
		"score_a", *res.ScoreA,
		"score_b", *res.ScoreB,
		"draw", res.IsDraw(),
	)
	return res, nil
}

func (s *MatchService) Clear(ctx context.Context, teamA, teamB int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Clear",
		teamAttr("team_a", teamA), teamAttr("team_b", teamB))
	defer span.End()

	key, err := match.NewPairKey(teamA, teamB)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.matchRepo.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get match result: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, key)
	}

	if err := s.matchRepo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete match result: %w", err)
	}

	s.logger.InfoContext(ctx, "match result cleared", "pair", key.String())
	return nil
}

// List returns every stored result ordered by pair.
func (s *MatchService) List(ctx context.Context) ([]match.Result, error) {
	results, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list match results: %w", err)
	}

	return results.Sorted(), nil
}

// Import validates a batch of submissions concurrently and stores the valid
// ones in input order, so a later entry for the same pair wins. Invalid
// entries are reported and skipped.
func (s *MatchService) Import(ctx context.Context, inputs []SubmitResultInput) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Import",
		attribute.Int("tournament.import.size", len(inputs)))
	defer span.End()

	if len(inputs) == 0 {
		return ImportReport{}, fmt.Errorf("%w: at least one result is required", ErrInvalidInput)
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return ImportReport{}, err
	}

	workerCount := min(s.importWorkers, len(inputs))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	prepared := make([]match.Result, len(inputs))
	failures := make([]error, len(inputs))

	var workers sync.WaitGroup
	for i, input := range inputs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			prepared[i], failures[i] = snap.normalize(input)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return ImportReport{}, fmt.Errorf("submit import task to worker pool: %w", err)
		}
	}
	workers.Wait()

	report := ImportReport{}
	for i, input := range inputs {
		if failures[i] != nil {
			report.Failures = append(report.Failures, ImportFailure{
				Index:  i,
				TeamA:  input.TeamA,
				TeamB:  input.TeamB,
				Reason: failures[i].Error(),
			})
			continue
		}
		if err := s.matchRepo.Upsert(ctx, prepared[i]); err != nil {
			return report, fmt.Errorf("upsert imported match result %d: %w", i, err)
		}
		report.Imported++
	}

	if len(report.Failures) > 0 {
		s.logger.WarnContext(ctx, "match import finished with rejected entries",
			"imported", report.Imported,
			"rejected", len(report.Failures),
		)
	}
	return report, nil
}

// Grid lays out every roster team against every other, withdrawn teams
// included, so the results table can be rendered as a matrix.
func (s *MatchService) Grid(ctx context.Context) (Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Grid")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("list teams: %w", err)
	}
	state, err := s.participationRepo.Get(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("get participation: %w", err)
	}
	results, err := s.matchRepo.List(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("list match results: %w", err)
	}

	out := Grid{
		Teams: make([]GridTeam, 0, len(teams)),
		Rows:  make([][]GridCell, 0, len(teams)),
	}
	for _, t := range teams {
		out.Teams = append(out.Teams, GridTeam{Team: t, Active: participation.IsActive(t.ID, state)})
	}

	for _, row := range out.Teams {
		cells := make([]GridCell, 0, len(out.Teams))
		for _, col := range out.Teams {
			cell := GridCell{
				RowTeamID:    row.Team.ID,
				ColumnTeamID: col.Team.ID,
				Self:         row.Team.ID == col.Team.ID,
				Inactive:     !row.Active || !col.Active,
			}
			if !cell.Self {
				fillGridCell(&cell, results)
			}
			cells = append(cells, cell)
		}
		out.Rows = append(out.Rows, cells)
	}

	return out, nil
}

func fillGridCell(cell *GridCell, results match.Results) {
	key, err := match.NewPairKey(cell.RowTeamID, cell.ColumnTeamID)
	if err != nil {
		return
	}
	res, ok := results[key]
	if !ok {
		return
	}

	scored, conceded, played := res.ScoreOf(cell.RowTeamID)
	if !played {
		return
	}
	cell.Played = true
	cell.ScoreFor = match.IntPtr(scored)
	cell.ScoreAgainst = match.IntPtr(conceded)
	if res.Winner != nil {
		cell.WinnerID = match.IntPtr(*res.Winner)
	}
}
