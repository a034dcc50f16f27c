package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/tennis-roundrobin/internal/config"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	cacherepo "github.com/riskibarqy/tennis-roundrobin/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tennis-roundrobin/internal/infrastructure/repository/filestore"
	"github.com/riskibarqy/tennis-roundrobin/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/tennis-roundrobin/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tennis-roundrobin/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/resilience"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	teams         team.Repository
	matches       match.Repository
	participation participation.Repository
	settings      settings.Repository
	close         func() error
}

func noopClose() error { return nil }

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var (
		repos repositories
		err   error
	)

	switch cfg.StorageDriver {
	case config.StorageMemory, "":
		repos = repositories{
			teams:         memory.NewTeamRepository(nil),
			matches:       memory.NewMatchRepository(),
			participation: memory.NewParticipationRepository(),
			settings:      memory.NewSettingsRepository(),
			close:         noopClose,
		}
	case config.StorageFile:
		repos, err = openFileRepositories(cfg.StorageFilePath)
	case config.StoragePostgres:
		repos, err = openPostgresRepositories(ctx, cfg)
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return repositories{}, err
	}

	// The memory driver is already a map lookup; caching only pays off in front of IO.
	if cfg.CacheEnabled && cfg.StorageDriver != config.StorageMemory && cfg.StorageDriver != "" {
		repos.teams = cacherepo.NewTeamRepository(repos.teams, cfg.CacheTTL)
		repos.participation = cacherepo.NewParticipationRepository(repos.participation, cfg.CacheTTL)
		repos.settings = cacherepo.NewSettingsRepository(repos.settings, cfg.CacheTTL)
	}

	logger.Info("storage ready",
		"driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL,
	)
	return repos, nil
}

func openFileRepositories(path string) (repositories, error) {
	store, err := filestore.Open(path)
	if err != nil {
		return repositories{}, fmt.Errorf("open tournament file: %w", err)
	}

	return repositories{
		teams:         filestore.NewTeamRepository(store),
		matches:       filestore.NewMatchRepository(store),
		participation: filestore.NewParticipationRepository(store),
		settings:      filestore.NewSettingsRepository(store),
		close:         noopClose,
	}, nil
}

func openPostgresRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	db, err := otelsqlx.Open("postgres", postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("ping postgres: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB)

	breaker := resilience.New(resilience.Config{
		FailureThreshold: cfg.DBBreakerFailures,
		OpenTimeout:      cfg.DBBreakerOpenTimeout,
	})
	return postgresRepositories(db, breaker), nil
}

// postgresRepositories shares one breaker across every table, since they
// all fail together when the database is unreachable.
func postgresRepositories(db *sqlx.DB, breaker *resilience.Breaker) repositories {
	return repositories{
		teams:         guarded.NewTeamRepository(postgres.NewTeamRepository(db), breaker),
		matches:       guarded.NewMatchRepository(postgres.NewMatchRepository(db), breaker),
		participation: guarded.NewParticipationRepository(postgres.NewParticipationRepository(db), breaker),
		settings:      guarded.NewSettingsRepository(postgres.NewSettingsRepository(db), breaker),
		close:         db.Close,
	}
}

// seedDemoRoster fills an empty roster with the demo teams.
func seedDemoRoster(ctx context.Context, teams team.Repository, logger *logging.Logger) error {
	existing, err := teams.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams before seeding: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("demo roster skipped", "reason", "roster not empty", "teams", len(existing))
		return nil
	}

	seed := memory.SeedTeams()
	for _, t := range seed {
		if err := teams.Upsert(ctx, t); err != nil {
			return fmt.Errorf("seed team %d: %w", t.ID, err)
		}
	}

	logger.Info("demo roster seeded", "teams", len(seed))
	return nil
}
