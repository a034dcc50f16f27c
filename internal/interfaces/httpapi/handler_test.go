package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	"github.com/riskibarqy/tennis-roundrobin/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
	"github.com/riskibarqy/tennis-roundrobin/internal/usecase"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T, teamIDs ...int) http.Handler {
	t.Helper()

	roster := make([]team.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		roster = append(roster, team.Team{ID: id, Members: []string{"P" + string(rune('0'+id))}})
	}

	teams := memory.NewTeamRepository(roster)
	matches := memory.NewMatchRepository()
	participation := memory.NewParticipationRepository()
	logger := logging.NewNop()

	rules := usecase.NewSettingsService(memory.NewSettingsRepository(), settings.Default())
	matchService := usecase.NewMatchService(teams, matches, participation, rules, 2, logger)
	standingsService := usecase.NewStandingsService(teams, matches, participation)

	handler := NewHandler(
		usecase.NewRosterService(teams, matches, participation, logger),
		usecase.NewParticipationService(teams, participation, logger),
		rules,
		matchService,
		standingsService,
		usecase.NewExportService(standingsService, matchService),
		logger,
	)
	return NewRouter(handler, logger, []string{"*"})
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[map[string]string](t, rec).Data["status"])
}

func TestHandler_StandingsFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1, 2, 3)
	for _, path := range []string{"/v1/matches/1/2", "/v1/matches/3/1", "/v1/matches/2/3"} {
		var body string
		switch path {
		case "/v1/matches/1/2":
			body = `{"score_a":7,"score_b":3}`
		case "/v1/matches/3/1":
			body = `{"score_a":7,"score_b":5}`
		default:
			body = `{"score_a":7,"score_b":7}`
		}
		rec := do(t, router, http.MethodPut, path, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := do(t, router, http.MethodGet, "/v1/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[[]standingRowDTO](t, rec).Data
	require.Len(t, rows, 3)

	ids := []int{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID}
	require.Equal(t, []int{3, 1, 2}, ids)
	require.Equal(t, 1, rows[0].Position)
	require.Equal(t, statsDTO{Played: 2, Wins: 1, Draws: 1, PointsFor: 14, PointsAgainst: 12, PointDiff: 2, WinRate: 0.5}, rows[0].Stats)

	rec = do(t, router, http.MethodGet, "/v1/standings/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, csvContentType, rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[1], "1,3,"), lines[1])
	require.True(t, strings.HasPrefix(lines[3], "3,2,"), lines[3])
}

func TestHandler_SubmitMatchStoresCanonicalPair(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1, 2)
	rec := do(t, router, http.MethodPut, "/v1/matches/2/1", `{"score_a":12,"score_b":4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[matchDTO](t, rec).Data
	require.Equal(t, 1, got.TeamA)
	require.Equal(t, 2, got.TeamB)
	require.NotNil(t, got.ScoreA)
	require.Equal(t, 4, *got.ScoreA)
	require.Equal(t, 7, *got.ScoreB)
	require.NotNil(t, got.WinnerTeamID)
	require.Equal(t, 2, *got.WinnerTeamID)
	require.Equal(t, "played", got.Status)
}

func TestHandler_SubmitMatchRejections(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1, 2, 3)
	rec := do(t, router, http.MethodPut, "/v1/teams/3/participation", `{"active":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		reason string
	}{
		{name: "missing score", path: "/v1/matches/1/2", body: `{"score_a":7}`, status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "unknown field", path: "/v1/matches/1/2", body: `{"score_a":7,"score_b":1,"x":1}`, status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "self match", path: "/v1/matches/1/1", body: `{"score_a":7,"score_b":1}`, status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "bad id", path: "/v1/matches/one/2", body: `{"score_a":7,"score_b":1}`, status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "unknown team", path: "/v1/matches/1/9", body: `{"score_a":7,"score_b":1}`, status: http.StatusNotFound, reason: "notFound"},
		{name: "withdrawn team", path: "/v1/matches/1/3", body: `{"score_a":7,"score_b":1}`, status: http.StatusBadRequest, reason: "teamInactive"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPut, tc.path, tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())

			got := decode[any](t, rec)
			require.NotNil(t, got.Error)
			require.Len(t, got.Error.Errors, 1)
			require.Equal(t, tc.reason, got.Error.Errors[0].Reason)
		})
	}
}

func TestHandler_ClearMatch(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1, 2)
	require.Equal(t, http.StatusNotFound, do(t, router, http.MethodDelete, "/v1/matches/1/2", "").Code)

	require.Equal(t, http.StatusOK, do(t, router, http.MethodPut, "/v1/matches/1/2", `{"score_a":7,"score_b":2}`).Code)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, "/v1/matches/2/1", "").Code)

	rec := do(t, router, http.MethodGet, "/v1/matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]matchDTO](t, rec).Data)
}

func TestHandler_ImportMatches(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1, 2, 3)
	body := `{"results":[
		{"team_a":1,"team_b":2,"score_a":7,"score_b":3},
		{"team_a":1,"team_b":9,"score_a":7,"score_b":3},
		{"team_a":2,"team_b":3,"score_a":6,"score_b":7}
	]}`
	rec := do(t, router, http.MethodPost, "/v1/matches/import", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	report := decode[importReportDTO](t, rec).Data
	require.Equal(t, 2, report.Imported)
	require.Len(t, report.Failures, 1)
	require.Equal(t, 1, report.Failures[0].Index)

	rec = do(t, router, http.MethodPost, "/v1/matches/import", `{"results":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GridMarksInactiveTeams(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1, 2)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPut, "/v1/matches/1/2", `{"score_a":7,"score_b":5}`).Code)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPut, "/v1/teams/2/participation", `{"active":false}`).Code)

	rec := do(t, router, http.MethodGet, "/v1/matches/grid", "")
	require.Equal(t, http.StatusOK, rec.Code)

	grid := decode[gridDTO](t, rec).Data
	require.Len(t, grid.Teams, 2)
	require.False(t, grid.Teams[1].Active)
	require.Len(t, grid.Rows, 2)
	require.True(t, grid.Rows[0][0].Self)

	cell := grid.Rows[0][1]
	require.True(t, cell.Played)
	require.True(t, cell.Inactive)
	require.Equal(t, 7, *cell.ScoreFor)
	require.Equal(t, 5, *cell.ScoreAgainst)
}

func TestHandler_TeamLifecycle(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1)
	rec := do(t, router, http.MethodPut, "/v1/teams/2", `{"members":[" Ana ","Bo"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[teamDTO](t, rec).Data
	require.Equal(t, "Ana / Bo", saved.DisplayName)
	require.True(t, saved.Active)

	rec = do(t, router, http.MethodGet, "/v1/teams", "")
	require.Len(t, decode[[]teamDTO](t, rec).Data, 2)

	require.Equal(t, http.StatusOK, do(t, router, http.MethodPut, "/v1/teams/2/participation", `{"active":false}`).Code)
	rec = do(t, router, http.MethodGet, "/v1/participation", "")
	require.Equal(t, []participationEntryDTO{{TeamID: 2, Active: false}}, decode[[]participationEntryDTO](t, rec).Data)

	rec = do(t, router, http.MethodGet, "/v1/teams/2/stats", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, "/v1/teams/2", "").Code)
	require.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/v1/teams/2", "").Code)
	rec = do(t, router, http.MethodGet, "/v1/participation", "")
	require.Empty(t, decode[[]participationEntryDTO](t, rec).Data)
}

func TestHandler_Settings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1, 2)
	rec := do(t, router, http.MethodGet, "/v1/settings", "")
	require.Equal(t, settingsDTO{MatchPoint: 7}, decode[settingsDTO](t, rec).Data)

	rec = do(t, router, http.MethodPut, "/v1/settings", `{"match_point":11}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, settingsDTO{MatchPoint: 11}, decode[settingsDTO](t, rec).Data)

	require.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPut, "/v1/settings", `{"match_point":100}`).Code)

	rec = do(t, router, http.MethodPut, "/v1/matches/1/2", `{"score_a":15,"score_b":2}`)
	require.Equal(t, 11, *decode[matchDTO](t, rec).Data.ScoreA)
}

func TestHandler_ExportBundle(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, 1, 2)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPut, "/v1/matches/1/2", `{"score_a":7,"score_b":7}`).Code)

	rec := do(t, router, http.MethodGet, "/v1/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	bundle := decode[exportBundleDTO](t, rec).Data
	require.True(t, strings.HasPrefix(bundle.StandingsCSV, "Rank,Team,Members,"))
	require.Contains(t, bundle.MatchesCSV, "1,2,7,7,,draw")

	rec = do(t, router, http.MethodGet, "/v1/matches/export", "")
	require.Equal(t, bundle.MatchesCSV, rec.Body.String())
}

func TestRecoverPanic(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/standings", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
