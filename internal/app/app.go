package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/tennis-roundrobin/internal/config"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/interfaces/httpapi"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
	"github.com/riskibarqy/tennis-roundrobin/internal/usecase"
)

// NewHTTPServer wires storage, use cases and the router. The returned
// cleanup releases storage resources and must be called after shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.StorageSeedDemo {
		if err := seedDemoRoster(ctx, repos.teams, logger); err != nil {
			_ = repos.close()
			return nil, nil, err
		}
	}

	rosterSvc := usecase.NewRosterService(repos.teams, repos.matches, repos.participation, logger)
	participationSvc := usecase.NewParticipationService(repos.teams, repos.participation, logger)
	settingsSvc := usecase.NewSettingsService(repos.settings, settings.Settings{MatchPoint: cfg.MatchPoint})
	matchSvc := usecase.NewMatchService(
		repos.teams,
		repos.matches,
		repos.participation,
		settingsSvc,
		cfg.ImportWorkers,
		logger,
	)
	standingsSvc := usecase.NewStandingsService(repos.teams, repos.matches, repos.participation)
	exportSvc := usecase.NewExportService(standingsSvc, matchSvc)

	handler := httpapi.NewHandler(
		rosterSvc,
		participationSvc,
		settingsSvc,
		matchSvc,
		standingsSvc,
		exportSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = repos.close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, repos.close, nil
}
