package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/tennis-roundrobin/internal/config"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
)

// Telemetry owns the tracing exporter, the continuous profiler and the pprof
// listener. Each part is optional and driven by config.
type Telemetry struct {
	logger       *logging.Logger
	pprof        *http.Server
	stopProfiler func() error
	stopTracing  func(context.Context) error
}

// Start brings up every enabled telemetry part. On error the parts already
// started are shut down before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}

	t := &Telemetry{
		logger:       logger,
		stopProfiler: func() error { return nil },
		stopTracing:  func(context.Context) error { return nil },
	}

	t.stopTracing = startTracing(cfg, logger)

	stopProfiler, err := startProfiler(cfg, logger)
	if err != nil {
		_ = t.Shutdown(context.Background())
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	t.stopProfiler = stopProfiler

	t.pprof = startPprof(cfg, logger)
	return t, nil
}

// Shutdown stops the parts in reverse start order and reports every failure.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs []error
	if t.pprof != nil {
		if err := t.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop pprof: %w", err))
		} else {
			t.logger.Info("pprof server stopped")
		}
	}
	if err := t.stopProfiler(); err != nil {
		errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
	}
	if err := t.stopTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
	}
	return errors.Join(errs...)
}
