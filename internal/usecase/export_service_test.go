package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/standings"
	"github.com/stretchr/testify/require"
)

func newExportFixture(t *testing.T) *tournamentFixture {
	t.Helper()

	f := newTournamentFixture(t, 1, 2, 3)
	_, err := f.roster.SaveTeam(context.Background(), SaveTeamInput{ID: 3, Members: []string{"Eka", "Fajar"}})
	require.NoError(t, err)
	f.submit(t, 1, 2, 7, 3)
	f.submit(t, 1, 3, 5, 7)
	f.submit(t, 2, 3, 7, 7)
	return f
}

func TestExportService_StandingsCSVInRankOrder(t *testing.T) {
	t.Parallel()

	f := newExportFixture(t)

	got, err := f.exportService.StandingsCSV(context.Background())
	require.NoError(t, err)

	want := "Rank,Team,Members,Wins,Losses,Draws,PointsFor,PointsAgainst,PointDiff,WinRate\n" +
		"1,3,Eka / Fajar,1,0,1,14,12,2,0.500\n" +
		"2,1,,1,1,0,12,10,2,0.500\n" +
		"3,2,,0,1,1,10,14,-4,0.000\n"
	require.Equal(t, want, string(got))
}

func TestExportService_ResultsCSV(t *testing.T) {
	t.Parallel()

	f := newExportFixture(t)
	pending, err := match.Pending(3, 1)
	require.NoError(t, err)
	require.NoError(t, f.matches.Upsert(context.Background(), pending))

	got, err := f.exportService.ResultsCSV(context.Background())
	require.NoError(t, err)

	want := "TeamA,TeamB,ScoreA,ScoreB,Winner,Status\n" +
		"1,2,7,3,1,played\n" +
		"1,3,,,,pending\n" +
		"2,3,7,7,,draw\n"
	require.Equal(t, want, string(got))
}

func TestExportService_Bundle(t *testing.T) {
	t.Parallel()

	f := newExportFixture(t)
	ctx := context.Background()

	bundle, err := f.exportService.Bundle(ctx)
	require.NoError(t, err)

	standingsCSV, err := f.exportService.StandingsCSV(ctx)
	require.NoError(t, err)
	resultsCSV, err := f.exportService.ResultsCSV(ctx)
	require.NoError(t, err)
	require.Equal(t, standingsCSV, bundle.Standings)
	require.Equal(t, resultsCSV, bundle.Results)
}

type failingStandings struct{ err error }

func (s failingStandings) Standings(context.Context) ([]standings.Row, error) {
	return nil, s.err
}

func TestExportService_BundleFailsWhenOneExportFails(t *testing.T) {
	t.Parallel()

	f := newExportFixture(t)
	boom := errors.New("standings unavailable")
	service := NewExportService(failingStandings{err: boom}, f.matchService)

	_, err := service.Bundle(context.Background())
	require.ErrorIs(t, err, boom)
}
