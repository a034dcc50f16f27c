package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/standings"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
)

var (
	standingsCSVHeader = []string{"Rank", "Team", "Members", "Wins", "Losses", "Draws", "PointsFor", "PointsAgainst", "PointDiff", "WinRate"}
	resultsCSVHeader   = []string{"TeamA", "TeamB", "ScoreA", "ScoreB", "Winner", "Status"}
)

const (
	resultStatusPlayed  = "played"
	resultStatusDraw    = "draw"
	resultStatusPending = "pending"
)

type standingsSource interface {
	Standings(ctx context.Context) ([]standings.Row, error)
}

type resultsSource interface {
	List(ctx context.Context) ([]match.Result, error)
}

// ExportBundle holds every artifact of a full export.
type ExportBundle struct {
	Standings []byte
	Results   []byte
}

type ExportService struct {
	standings standingsSource
	results   resultsSource
}

func NewExportService(standings standingsSource, results resultsSource) *ExportService {
	return &ExportService{
		standings: standings,
		results:   results,
	}
}

// StandingsCSV renders the ranked table in rank order.
func (s *ExportService) StandingsCSV(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.StandingsCSV")
	defer span.End()

	rows, err := s.standings.Standings(ctx)
	if err != nil {
		return nil, err
	}

	return renderCSV(standingsCSVHeader, len(rows), func(i int) []string {
		row := rows[i]
		return []string{
			strconv.Itoa(row.Position),
			strconv.Itoa(row.Team.ID),
			strings.Join(row.Team.Members, " / "),
			strconv.Itoa(row.Stats.Wins),
			strconv.Itoa(row.Stats.Losses),
			strconv.Itoa(row.Stats.Draws),
			strconv.Itoa(row.Stats.PointsFor),
			strconv.Itoa(row.Stats.PointsAgainst),
			strconv.Itoa(row.Stats.PointDiff),
			strconv.FormatFloat(row.Stats.WinRate, 'f', 3, 64),
		}
	})
}

// ResultsCSV renders every stored result ordered by pair.
func (s *ExportService) ResultsCSV(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ResultsCSV")
	defer span.End()

	results, err := s.results.List(ctx)
	if err != nil {
		return nil, err
	}

	return renderCSV(resultsCSVHeader, len(results), func(i int) []string {
		res := results[i]
		return []string{
			strconv.Itoa(res.TeamA),
			strconv.Itoa(res.TeamB),
			formatOptionalInt(res.ScoreA),
			formatOptionalInt(res.ScoreB),
			formatOptionalInt(res.Winner),
			ResultStatus(res),
		}
	})
}

// Bundle renders both exports concurrently.
func (s *ExportService) Bundle(ctx context.Context) (ExportBundle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.Bundle")
	defer span.End()

	var out ExportBundle
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		data, err := s.StandingsCSV(ctx)
		if err != nil {
			return fmt.Errorf("export standings: %w", err)
		}
		out.Standings = data
		return nil
	})
	p.Go(func(ctx context.Context) error {
		data, err := s.ResultsCSV(ctx)
		if err != nil {
			return fmt.Errorf("export results: %w", err)
		}
		out.Results = data
		return nil
	})
	if err := p.Wait(); err != nil {
		return ExportBundle{}, err
	}

	return out, nil
}

func renderCSV(header []string, count int, record func(i int) []string) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := 0; i < count; i++ {
		if err := w.Write(record(i)); err != nil {
			return nil, fmt.Errorf("write csv record %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

// ResultStatus labels a stored result as played, draw or pending.
func ResultStatus(res match.Result) string {
	switch {
	case !res.Played():
		return resultStatusPending
	case res.IsDraw():
		return resultStatusDraw
	default:
		return resultStatusPlayed
	}
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
