package builder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/futig/interview-cases/internal/api"
	casesapi "github.com/futig/interview-cases/internal/api/cases"
	diagnosticsapi "github.com/futig/interview-cases/internal/api/diagnostics"
	interviewsapi "github.com/futig/interview-cases/internal/api/interviews"
	"github.com/futig/interview-cases/internal/config"
	"github.com/futig/interview-cases/internal/integration/llm"
	"github.com/futig/interview-cases/internal/pkg/cache"
	"github.com/futig/interview-cases/internal/pkg/formatter"
	"github.com/futig/interview-cases/internal/pkg/metrics"
	pkgRetry "github.com/futig/interview-cases/internal/pkg/retry"
	"github.com/futig/interview-cases/internal/pkg/validator"
	"github.com/futig/interview-cases/internal/repository"
	"github.com/futig/interview-cases/internal/usecase/cases"
	"github.com/futig/interview-cases/internal/usecase/interview"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const caseCachePrefix = "interview-cases:"

// generator is the question generator together with its connectivity probe
type generator interface {
	cases.QuestionGenerator
	diagnosticsapi.GeneratorProber
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	ctx = ctxzap.ToContext(ctx, logger)

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	caseRepo := repository.NewCasePostgres(db)
	questionRepo := repository.NewQuestionPostgres(db, &cfg.DBTxRetry)
	interviewRepo := repository.NewInterviewPostgres(db)
	selectionRepo := repository.NewSelectionPostgres(db, &cfg.DBTxRetry)
	healthRepo := repository.NewHealthPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize case listing cache
	var closers []io.Closer
	listCache, closer, err := setupCache(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup cache: %w", err)
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	m := metrics.New()

	// Initialize question generator (with mock support)
	var gen generator
	if cfg.EnableMocks {
		logger.Info("Using mock question generator")
		gen = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using LLM question generator",
			zap.String("model", cfg.LLMConnectorCfg.Model),
			zap.Bool("configured", cfg.LLMConnectorCfg.Token != ""),
		)
		gen = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	// Initialize use cases
	caseUC := cases.NewUsecase(
		caseRepo,
		questionRepo,
		gen,
		cases.NewDefaultResolver(caseRepo),
		listCache,
		m,
		cfg.QuestionsCfg,
		logger,
	)

	interviewUC := interview.NewUsecase(
		interviewRepo,
		selectionRepo,
		caseRepo,
		questionRepo,
		interview.NewCodeGenerator(interviewRepo, nil),
		formatter.NewFactory(),
		pkgRetry.DefaultRetryConfig(),
		logger,
	)
	logger.Info("Use cases initialized")

	if cfg.SeedDefaultCases {
		seeded, err := caseUC.EnsureDefaultCases(ctx)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("seed default cases: %w", err)
		}
		logger.Info("Default cases checked", zap.Int("created", seeded))
	}

	// Setup API handlers
	v := validator.New()
	casesHandler := casesapi.NewHandler(caseUC, v)
	interviewsHandler := interviewsapi.NewHandler(interviewUC, v)
	diagnosticsHandler := diagnosticsapi.NewHandler(healthRepo, gen)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(casesHandler, interviewsHandler, diagnosticsHandler, m, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. Generation calls can take most of a minute.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:  server,
		db:      db,
		closers: closers,
		logger:  logger,
	}, nil
}

// setupCache returns Redis when REDIS_ADDR is set, the in-process cache otherwise
func setupCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Cache, io.Closer, error) {
	if cfg.RedisCfg.Addr == "" {
		logger.Info("Using in-process case cache", zap.Duration("ttl", cfg.CacheCfg.TTL))
		return cache.NewMemory(cfg.CacheCfg.TTL, cfg.CacheCfg.CleanupInterval), nil, nil
	}

	client := cache.NewRedisClient(cfg.RedisCfg.Addr, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	rc := cache.NewRedis(client, caseCachePrefix, cfg.CacheCfg.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("Using Redis case cache",
		zap.String("addr", cfg.RedisCfg.Addr),
		zap.Duration("ttl", cfg.CacheCfg.TTL),
	)
	return rc, rc, nil
}
