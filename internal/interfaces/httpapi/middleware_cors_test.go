package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantVary    bool
		wantMethods bool
	}{
		{name: "configured origin", allowed: []string{"https://tennis-roundrobin.example.com"}, method: http.MethodGet, origin: "https://tennis-roundrobin.example.com", wantStatus: http.StatusOK, wantOrigin: "https://tennis-roundrobin.example.com", wantVary: true, wantMethods: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://club.example.com", wantStatus: http.StatusNoContent, wantOrigin: "*", wantMethods: true},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: "https://not-allowed.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/standings", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("unexpected Vary header: %q", rec.Header().Get("Vary"))
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods") != ""; got != tt.wantMethods {
				t.Fatalf("unexpected Access-Control-Allow-Methods: %q", rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogging(logging.NewJSONTo(&buf, logging.LevelInfo), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/standings", nil))

	line := buf.String()
	if !strings.Contains(line, `"level":"ERROR"`) || !strings.Contains(line, `"status":503`) {
		t.Fatalf("unexpected request log line: %s", line)
	}
}
