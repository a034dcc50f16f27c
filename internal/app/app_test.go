package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/tennis-roundrobin/internal/config"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		CORSAllowedOrigins: []string{"*"},
		StorageDriver:      config.StorageMemory,
		CacheTTL:           time.Minute,
		MatchPoint:         7,
		ImportWorkers:      2,
	}
}

func serve(t *testing.T, srv *http.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestNewHTTPServer_MemorySeedsDemoRoster(t *testing.T) {
	cfg := testConfig()
	cfg.StorageSeedDemo = true

	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	rec := serve(t, srv, http.MethodGet, "/v1/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"display_name":"Alya / Bima"`)

	rec = serve(t, srv, http.MethodGet, "/v1/settings", "")
	require.Contains(t, rec.Body.String(), `"match_point":7`)
}

func TestNewHTTPServer_FileDriverPersistsAcrossRestarts(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = config.StorageFile
	cfg.StorageFilePath = filepath.Join(t.TempDir(), "tournament.json")
	cfg.CacheEnabled = true
	cfg.StorageSeedDemo = true

	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	rec := serve(t, srv, http.MethodPut, "/v1/matches/1/2", `{"score_a":7,"score_b":4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = serve(t, srv, http.MethodPut, "/v1/teams/4/participation", `{"active":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, cleanup())

	srv, cleanup, err = NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	rec = serve(t, srv, http.MethodGet, "/v1/matches", "")
	require.Contains(t, rec.Body.String(), `"team_a":1,"team_b":2,"score_a":7,"score_b":4`)

	rec = serve(t, srv, http.MethodGet, "/v1/participation", "")
	require.Contains(t, rec.Body.String(), `{"team_id":4,"active":false}`)
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""

	_, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}
