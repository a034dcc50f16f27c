package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/tennis-roundrobin/internal/config"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// startTracing installs the global OpenTelemetry providers exporting to
// Uptrace. The otelhttp middleware, use case spans and otelsql all report
// through them.
func startTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noop
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Warn("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noop
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("uptrace enabled", "storage", cfg.StorageDriver)

	return uptrace.Shutdown
}
