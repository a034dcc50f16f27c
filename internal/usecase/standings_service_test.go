package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/standings"
)

func rowIDs(rows []standings.Row) []int {
	out := make([]int, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Team.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStandingsService_HeadToHeadScenario(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t, 1, 2, 3)
	f.submit(t, 1, 2, 7, 3)
	f.submit(t, 1, 3, 5, 7)
	f.submit(t, 2, 3, 7, 7)

	rows, err := f.standings.Standings(context.Background())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if got := rowIDs(rows); !equalInts(got, []int{3, 1, 2}) {
		t.Fatalf("unexpected order: %v", got)
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Fatalf("row %d has position %d", i, row.Position)
		}
	}

	want := standings.Stats{Wins: 1, Draws: 1, PointsFor: 14, PointsAgainst: 12, PointDiff: 2, WinRate: 0.5}
	if rows[0].Stats != want {
		t.Fatalf("unexpected team 3 stats: %+v", rows[0].Stats)
	}
}

func TestStandingsService_WithdrawalAndReactivation(t *testing.T) {
	t.Parallel()

	f := newTournamentFixture(t, 1, 2, 3, 4)
	ctx := context.Background()
	f.submit(t, 1, 2, 7, 3)
	f.submit(t, 1, 3, 5, 7)
	f.submit(t, 2, 3, 7, 7)
	f.submit(t, 1, 4, 7, 0)
	f.submit(t, 2, 4, 7, 1)
	f.submit(t, 3, 4, 2, 7)

	if err := f.participants.SetActive(ctx, 4, false); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	rows, err := f.standings.Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if got := rowIDs(rows); !equalInts(got, []int{3, 1, 2}) {
		t.Fatalf("unexpected order while team 4 is withdrawn: %v", got)
	}
	if _, err := f.standings.TeamStats(ctx, 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for withdrawn team, got %v", err)
	}
	if _, err := f.matchService.Submit(ctx, SubmitResultInput{TeamA: 4, TeamB: 1, ScoreA: 7, ScoreB: 6}); !errors.Is(err, ErrTeamInactive) {
		t.Fatalf("expected ErrTeamInactive, got %v", err)
	}

	if err := f.participants.SetActive(ctx, 4, true); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	stats, err := f.standings.TeamStats(ctx, 4)
	if err != nil {
		t.Fatalf("team stats: %v", err)
	}
	want := standings.Stats{Wins: 1, Losses: 2, PointsFor: 8, PointsAgainst: 16, PointDiff: -8, WinRate: 1.0 / 3.0}
	if stats != want {
		t.Fatalf("unexpected team 4 stats: %+v", stats)
	}

	rows, err = f.standings.Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows after reactivation, got %d", len(rows))
	}
}
