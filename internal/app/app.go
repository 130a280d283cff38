package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/matchpulse/matchpulse-api/external/oddsapi"
	"github.com/matchpulse/matchpulse-api/internal/config"
	"github.com/matchpulse/matchpulse-api/internal/domain/match"
	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
	"github.com/matchpulse/matchpulse-api/internal/domain/snapshot"
	"github.com/matchpulse/matchpulse-api/internal/infrastructure/repository/memory"
	"github.com/matchpulse/matchpulse-api/internal/infrastructure/repository/postgres"
	"github.com/matchpulse/matchpulse-api/internal/interfaces/httpapi"
	"github.com/matchpulse/matchpulse-api/internal/platform/cache"
	idgen "github.com/matchpulse/matchpulse-api/internal/platform/id"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
	"github.com/matchpulse/matchpulse-api/internal/platform/resilience"
	"github.com/matchpulse/matchpulse-api/internal/usecase"
)

// DBURLMemory selects the seeded in-memory repositories instead of Postgres.
// Meant for local hacking without a database, never for prod.
const DBURLMemory = "memory"

// Services bundles the wired use cases plus the resources they own.
type Services struct {
	Matches     *usecase.MatchService
	Predictions *usecase.PredictionService
	Ingest      *usecase.IngestService

	db *sqlx.DB
}

func (s *Services) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BuildServices wires repositories, the odds provider client and the use case
// layer from config. The same graph backs the HTTP server and the one-shot
// ingest command.
func BuildServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		db           *sqlx.DB
		matchRepo    match.Repository
		predRepo     prediction.Repository
		snapshotRepo snapshot.Repository
	)

	if cfg.DBURL == DBURLMemory {
		logger.Info("using in-memory repositories", "reason", "DB_URL=memory")
		matchRepo = memory.NewMatchRepository(memory.SeedMatches())
		predRepo = memory.NewPredictionRepository(memory.SeedPredictions())
		snapshotRepo = memory.NewSnapshotRepository()
	} else {
		var err error
		db, err = openDatabase(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		matchRepo = postgres.NewMatchRepository(db)
		predRepo = postgres.NewPredictionRepository(db)
		snapshotRepo = postgres.NewSnapshotRepository(db)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	oddsClient := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL:     cfg.OddsAPIBaseURL,
		APIKey:      cfg.OddsAPIKey,
		Timeout:     cfg.OddsAPITimeout,
		MaxAttempts: cfg.OddsAPIMaxAttempts,
		Logger:      logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OddsAPICircuitEnabled,
			FailureThreshold: cfg.OddsAPICircuitFailureCount,
			OpenTimeout:      cfg.OddsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OddsAPICircuitHalfOpenMaxReq,
		},
	})

	return &Services{
		Matches:     usecase.NewMatchService(matchRepo, store, logger),
		Predictions: usecase.NewPredictionService(predRepo, idgen.NewRandomGenerator(), logger),
		Ingest:      usecase.NewIngestService(oddsClient, matchRepo, snapshotRepo, cfg.OddsLeagueCodes, logger),
		db:          db,
	}, nil
}

// NewHTTPServer builds the full HTTP stack. The returned Services must be
// closed after the server shuts down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, *Services, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	svcs, err := BuildServices(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	handler := httpapi.NewHandler(svcs.Matches, svcs.Predictions, svcs.Ingest, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, svcs, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
