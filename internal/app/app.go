package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/lucasAG-UNQ/FutbolApi/external/footballdata"
	"github.com/lucasAG-UNQ/FutbolApi/external/whoscored"
	"github.com/lucasAG-UNQ/FutbolApi/internal/config"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/audit"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
	"github.com/lucasAG-UNQ/FutbolApi/internal/infrastructure/account/token"
	"github.com/lucasAG-UNQ/FutbolApi/internal/infrastructure/events"
	"github.com/lucasAG-UNQ/FutbolApi/internal/infrastructure/lock"
	"github.com/lucasAG-UNQ/FutbolApi/internal/infrastructure/repository/cache"
	"github.com/lucasAG-UNQ/FutbolApi/internal/infrastructure/repository/memory"
	"github.com/lucasAG-UNQ/FutbolApi/internal/infrastructure/repository/postgres"
	"github.com/lucasAG-UNQ/FutbolApi/internal/interfaces/httpapi"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/id"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/resilience"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

type repositories struct {
	teams   team.Repository
	players player.Repository
	matches match.Repository
	users   user.Repository
	audits  audit.Repository
}

// App is the wired HTTP server plus the resources it has to release on shutdown.
type App struct {
	Server  *http.Server
	closers []func() error
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &App{}
	fail := func(err error) (*App, error) {
		_ = app.Close()
		return nil, err
	}
	clock := clockwork.NewRealClock()

	repos, err := app.buildRepositories(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}

	locker, err := app.buildLocker(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}

	publisher, err := app.buildPublisher(cfg, logger)
	if err != nil {
		return fail(err)
	}

	source := whoscored.NewScraper(whoscored.NewClient(whoscored.ClientConfig{
		BaseURL: cfg.WhoScoredBaseURL,
		Timeout: cfg.WhoScoredTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.WhoScoredCircuitEnabled,
			FailureThreshold: cfg.WhoScoredCircuitFailureCount,
			OpenTimeout:      cfg.WhoScoredCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.WhoScoredCircuitHalfOpenMax,
		},
		Clock: clock,
	}), logger)

	metadata := footballdata.NewClient(footballdata.ClientConfig{
		Enabled:  cfg.FootballDataEnabled,
		BaseURL:  cfg.FootballDataBaseURL,
		Token:    cfg.FootballDataToken,
		Timeout:  cfg.FootballDataTimeout,
		CacheTTL: cfg.FootballDataCacheTTL,
		Logger:   logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.WhoScoredCircuitFailureCount,
			OpenTimeout:      cfg.WhoScoredCircuitOpenTimeout,
			HalfOpenMaxReq:   1,
		},
		Clock: clock,
	})

	issuer, err := token.NewIssuer(token.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		Expiry: cfg.JWTExpiry,
		Clock:  clock,
	})
	if err != nil {
		return fail(fmt.Errorf("build token issuer: %w", err))
	}

	teamSvc := usecase.NewTeamService(repos.teams, source, locker, publisher, clock, cfg.FreshnessWindow, logger)
	matchSvc := usecase.NewMatchService(teamSvc, repos.teams, repos.matches, source, publisher, clock, usecase.MatchServiceConfig{
		FreshnessWindow: cfg.FreshnessWindow,
		Workers:         cfg.FixtureWorkers,
	}, logger)
	statsSvc := usecase.NewStatsService(teamSvc, matchSvc, metadata, logger)
	playerSvc := usecase.NewPlayerService(repos.players, source, logger)
	authSvc := usecase.NewAuthService(repos.users, repos.audits, issuer, id.NewUUIDGenerator(), clock, logger)

	handler := httpapi.NewHandler(teamSvc, matchSvc, statsSvc, playerSvc, authSvc, logger)
	router := httpapi.NewRouter(handler, authSvc, authSvc, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		MetricsEnabled:     cfg.MetricsEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return app, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)
		repos = repositories{
			teams:   postgres.NewTeamRepository(db),
			players: postgres.NewPlayerRepository(db),
			matches: postgres.NewMatchRepository(db),
			users:   postgres.NewUserRepository(db),
			audits:  postgres.NewAuditRepository(db),
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db", dbNameFromURL(cfg.DBURL))
	default:
		players := memory.NewPlayerRepository()
		repos = repositories{
			teams:   memory.NewTeamRepository(players),
			players: players,
			matches: memory.NewMatchRepository(),
			users:   memory.NewUserRepository(),
			audits:  memory.NewAuditRepository(),
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	if cfg.CacheEnabled {
		players := cache.NewPlayerRepository(repos.players, cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, cfg.CacheTTL, players)
		repos.players = players
	}

	return repos, nil
}

func (a *App) buildLocker(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.RefreshLocker, error) {
	if cfg.RedisURL == "" {
		logger.Info("refresh lock ready", "backend", "local")
		return lock.NewLocal(), nil
	}

	client, err := lock.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	logger.Info("refresh lock ready", "backend", "redis", "ttl", cfg.RefreshLockTTL.String())

	return lock.NewRedis(client, lock.RedisConfig{TTL: cfg.RefreshLockTTL}, logger), nil
}

func (a *App) buildPublisher(cfg config.Config, logger *logging.Logger) (usecase.EventPublisher, error) {
	if cfg.NATSURL == "" {
		logger.Info("event publishing disabled", "reason", "NATS_URL empty")
		return nil, nil
	}

	publisher, err := events.NewNATSPublisher(events.NATSConfig{
		URL:           cfg.NATSURL,
		SubjectPrefix: cfg.NATSSubjectPrefix,
		MaxReconnects: -1,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	a.closers = append(a.closers, func() error {
		publisher.Close()
		return nil
	})

	return publisher, nil
}
