package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	"github.com/stretchr/testify/require"
)

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tournament.json")

	store, err := Open(path)
	require.NoError(t, err)

	teams := NewTeamRepository(store)
	matches := NewMatchRepository(store)
	flags := NewParticipationRepository(store)
	rules := NewSettingsRepository(store)

	require.NoError(t, teams.Upsert(ctx, team.Team{ID: 2, Members: []string{"Citra", "Dimas"}}))
	require.NoError(t, teams.Upsert(ctx, team.Team{ID: 1, Members: []string{"Alya"}}))
	res, err := match.Record(2, 1, 7, 4, settings.Default())
	require.NoError(t, err)
	require.NoError(t, matches.Upsert(ctx, res))
	require.NoError(t, flags.SetActive(ctx, 2, false))
	require.NoError(t, rules.Save(ctx, settings.Settings{MatchPoint: 11}))

	reopened, err := Open(path)
	require.NoError(t, err)

	gotTeams, err := NewTeamRepository(reopened).List(ctx)
	require.NoError(t, err)
	require.Equal(t, []team.Team{
		{ID: 1, Members: []string{"Alya"}},
		{ID: 2, Members: []string{"Citra", "Dimas"}},
	}, gotTeams)

	gotMatch, ok, err := NewMatchRepository(reopened).Get(ctx, match.PairKey{Low: 1, High: 2})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, *gotMatch.ScoreA)
	require.Equal(t, 7, *gotMatch.ScoreB)
	require.Equal(t, 2, *gotMatch.Winner)

	state, err := NewParticipationRepository(reopened).Get(ctx)
	require.NoError(t, err)
	require.False(t, participation.IsActive(2, state))
	require.True(t, participation.IsActive(1, state))

	gotRules, ok, err := NewSettingsRepository(reopened).Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 11, gotRules.MatchPoint)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_DeleteByTeamPersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tournament.json")
	store, err := Open(path)
	require.NoError(t, err)

	matches := NewMatchRepository(store)
	for _, pair := range [][2]int{{1, 2}, {1, 3}, {2, 3}} {
		res, err := match.Record(pair[0], pair[1], 7, 5, settings.Default())
		require.NoError(t, err)
		require.NoError(t, matches.Upsert(ctx, res))
	}
	require.NoError(t, matches.DeleteByTeam(ctx, 1))

	reopened, err := Open(path)
	require.NoError(t, err)
	all, err := NewMatchRepository(reopened).List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	_, ok := all[match.PairKey{Low: 2, High: 3}]
	require.True(t, ok)
}

func TestOpen_MissingAndEmptyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	teams, err := NewTeamRepository(store).List(context.Background())
	require.NoError(t, err)
	require.Empty(t, teams)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = Open(empty)
	require.NoError(t, err)

	_, err = Open("")
	require.Error(t, err)
}

func TestOpen_RejectsInvalidSnapshots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		targetErr error
	}{
		{name: "not json", content: "{"},
		{name: "unknown version", content: `{"version": 9}`},
		{name: "winner contradicts scores", content: `{"version":1,"matches":[{"team_a":1,"team_b":2,"score_a":7,"score_b":3,"winner":2}]}`, targetErr: match.ErrWinnerMismatch},
		{name: "self match", content: `{"version":1,"matches":[{"team_a":2,"team_b":2}]}`, targetErr: match.ErrSameTeam},
		{name: "bad participation key", content: `{"version":1,"participation":{"x":{"active":false}}}`},
		{name: "bad match point", content: `{"version":1,"settings":{"match_point":0}}`, targetErr: settings.ErrInvalidMatchPoint},
		{name: "bad team id", content: `{"version":1,"teams":[{"id":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tournament.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Open(path)
			require.Error(t, err)
			if tt.targetErr != nil && !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}
