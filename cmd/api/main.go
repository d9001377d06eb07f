// Command api runs the ledgerd HTTP server: document ingestion, rule-based
// and LLM-assisted categorization, splits, and monthly analytics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledgerd/config"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/account"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/aggregator"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/categorization"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/category"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/ingestion"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/rule"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/split"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledgerd/internal/infra/cache"
	"github.com/finance-tracker/ledgerd/internal/infra/db"
	"github.com/finance-tracker/ledgerd/internal/infra/jobs"
	"github.com/finance-tracker/ledgerd/internal/infra/server/router"
	"github.com/finance-tracker/ledgerd/internal/integration/email"
	"github.com/finance-tracker/ledgerd/internal/integration/email/templates"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledgerd/internal/integration/llm"
	"github.com/finance-tracker/ledgerd/internal/integration/persistence"
	"github.com/finance-tracker/ledgerd/internal/integration/persistence/model"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.Server.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A second, dedicated pgx pool backs the river jobs client: GORM's
	// postgres driver does not expose its underlying pgxpool.Pool, and
	// river.Client needs one of its own regardless.
	pgPool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("failed to open pgx pool for jobs client", "error", err)
		os.Exit(1)
	}
	defer pgPool.Close()

	if err := database.AutoMigrate(
		&model.AccountModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.RuleModel{},
		&model.DismissedSuggestionModel{},
		&model.ImportModel{},
		&model.EmailQueueModel{},
	); err != nil {
		slog.Error("failed to auto-migrate database", "error", err)
		os.Exit(1)
	}

	gormDB := database.DB()

	accountRepo := persistence.NewAccountRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	ruleRepo := persistence.NewRuleRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	importRepo := persistence.NewImportRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	llmProvider, err := llm.Select(llm.Config{
		Provider:        cfg.LLM.Provider,
		AnthropicAPIKey: cfg.LLM.AnthropicAPIKey,
		AnthropicModel:  cfg.LLM.AnthropicModel,
		VertexAPIKey:    cfg.LLM.VertexAPIKey,
		VertexProjectID: cfg.LLM.VertexProjectID,
		VertexLocation:  cfg.LLM.VertexLocation,
		VertexModel:     cfg.LLM.VertexModel,
	})
	if err != nil {
		slog.Error("failed to select llm provider", "error", err)
		os.Exit(1)
	}

	if llmProvider != nil {
		cacheStore, err := cache.Open(cfg.Cache.BadgerDir)
		if err != nil {
			slog.Error("failed to open merchant normalization cache", "error", err)
			os.Exit(1)
		}
		defer cacheStore.Close()
		llmProvider = cache.NewCachingLLMProvider(llmProvider, cacheStore)
	}

	orchestrator := categorization.NewOrchestrator(ruleRepo, transactionRepo, llmProvider, cfg.LLM.Enabled)
	ingestionUseCase := ingestion.NewUseCase(accountRepo, importRepo, categoryRepo, transactionRepo, llmProvider, orchestrator)

	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	jobsClient, err := jobs.NewClient(pgPool, ingestionUseCase, emailService)
	if err != nil {
		slog.Error("failed to build jobs client", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := jobsClient.Start(ctx); err != nil {
			slog.Error("jobs client stopped with error", "error", err)
		}
	}()

	accountUseCase := account.NewUseCase(accountRepo)
	splitUseCase := split.NewUseCase(transactionRepo)
	categoryListUseCase := category.NewListUseCase(categoryRepo)

	ruleCreateUseCase := rule.NewCreateUseCase(ruleRepo)
	ruleUpdateUseCase := rule.NewUpdateUseCase(ruleRepo)
	ruleDeleteUseCase := rule.NewDeleteUseCase(ruleRepo)
	ruleListUseCase := rule.NewListUseCase(ruleRepo)
	ruleReorderUseCase := rule.NewReorderUseCase(ruleRepo)
	ruleSuggestionUseCase := rule.NewSuggestionUseCase(ruleRepo)

	transactionListUseCase := transaction.NewListUseCase(transactionRepo)
	transactionGetUseCase := transaction.NewGetUseCase(transactionRepo)
	transactionPatchUseCase := transaction.NewPatchUseCase(transactionRepo, categoryRepo, ruleSuggestionUseCase)

	monthlyOverviewUseCase := aggregator.NewMonthlyOverviewUseCase(transactionRepo, categoryRepo)
	spendingTrendUseCase := aggregator.NewSpendingTrendUseCase(transactionRepo, categoryRepo)
	accountBreakdownUseCase := aggregator.NewAccountBreakdownUseCase(transactionRepo, accountRepo)

	healthController := controller.NewHealthController(database.HealthCheck)
	transactionController := controller.NewTransactionController(transactionListUseCase, transactionGetUseCase, transactionPatchUseCase, splitUseCase)
	accountController := controller.NewAccountController(accountUseCase)
	categoryController := controller.NewCategoryController(categoryListUseCase)
	ruleController := controller.NewRuleController(ruleCreateUseCase, ruleUpdateUseCase, ruleDeleteUseCase, ruleListUseCase, ruleReorderUseCase, ruleSuggestionUseCase)
	importController := controller.NewImportController(jobsClient, importRepo)
	analyticsController := controller.NewAnalyticsController(monthlyOverviewUseCase, spendingTrendUseCase, accountBreakdownUseCase)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, cfg.Server.AllowLocalDevBypass)

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisOpts.DB = cfg.Redis.DB
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	rateLimiter := middleware.NewRateLimiter(redisClient)

	r := router.NewRouter(
		healthController,
		transactionController,
		accountController,
		categoryController,
		ruleController,
		importController,
		analyticsController,
		authMiddleware,
		rateLimiter,
		cfg.Server.CORSAllowedOrigin,
	)
	r.Setup()

	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			slog.Error("failed to load email templates", "error", err)
			os.Exit(1)
		}
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
		go emailWorker.Start(ctx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	if err := jobsClient.Stop(shutdownCtx); err != nil {
		slog.Error("jobs client failed to stop cleanly", "error", err)
	}

	cancel()
	slog.Info("server exited")
}
