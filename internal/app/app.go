package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"github.com/riskibarqy/pickem-league/external/fantasydata"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/rawdata"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/account/authgate"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/jobqueue"
	cacherepo "github.com/riskibarqy/pickem-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type repositories struct {
	picks       pick.Repository
	members     user.Repository
	standings   standing.Repository
	schedule    schedule.Repository
	rawData     rawdata.Repository
	jobDispatch jobscheduler.Repository
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	repos, err := buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var provider usecase.MatchupProvider
	if cfg.FantasyDataEnabled {
		provider = fantasydata.NewClient(fantasydata.ClientConfig{
			BaseURL:    cfg.FantasyDataBaseURL,
			LeagueKey:  cfg.FantasyDataLeagueKey,
			Token:      cfg.FantasyDataToken,
			Timeout:    cfg.FantasyDataTimeout,
			MaxRetries: cfg.FantasyDataMaxRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FantasyDataCircuitEnabled,
				FailureThreshold: cfg.FantasyDataCircuitFailureCount,
				OpenTimeout:      cfg.FantasyDataCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FantasyDataCircuitHalfOpenMaxReq,
			},
		})
	}

	var jobs usecase.JobPublisher
	if cfg.QStashEnabled {
		jobs = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	matchupSvc := usecase.NewMatchupService(provider, repos.rawData, repos.standings, nil)
	scheduleSvc := usecase.NewScheduleService(repos.schedule)
	pickSvc := usecase.NewPickService(repos.picks, scheduleSvc)
	statsSvc := usecase.NewStatsService(repos.members, repos.picks, matchupSvc, scheduleSvc)
	featuredSvc := usecase.NewFeaturedService(matchupSvc)
	dashboardSvc := usecase.NewDashboardService(scheduleSvc, matchupSvc, featuredSvc, pickSvc)
	refreshSvc := usecase.NewRefreshService(matchupSvc, jobs)

	verifier := authgate.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectURL,
		cfg.AnubisAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		dashboardSvc,
		matchupSvc,
		pickSvc,
		statsSvc,
		featuredSvc,
		scheduleSvc,
		refreshSvc,
		repos.jobDispatch,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.StorageDriver == "memory" {
		return repositories{
			picks:     memory.NewPickRepository(),
			members:   memory.NewMemberRepository(memory.SeedMembers()),
			standings: memory.NewStandingRepository(),
			schedule:  memory.NewScheduleRepository(memory.SeedLockSchedule()),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	repos := repositories{
		picks:       postgres.NewPickRepository(db),
		members:     postgres.NewMemberRepository(db),
		standings:   postgres.NewStandingRepository(db),
		schedule:    postgres.NewScheduleRepository(db),
		rawData:     postgres.NewRawDataRepository(db),
		jobDispatch: postgres.NewJobDispatchRepository(db),
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.members = cacherepo.NewMemberRepository(repos.members, store)
		repos.standings = cacherepo.NewStandingRepository(repos.standings, store)
		repos.schedule = cacherepo.NewScheduleRepository(repos.schedule, store)
	}

	return repos, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}
