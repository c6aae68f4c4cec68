package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	carrierapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/carrier"
	inventoryapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/inventory"
	ledgerapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/ledger"
	photoapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/photo"
	preferenceapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/preference"
	reportapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/report"
	seasonapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/season"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/auth"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/cache"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/logger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/scheduler"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/storage"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/telemetry"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/handler"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/middleware"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// .env is optional; real deployments set FEED_* in the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry: traces, metrics and the zap -> OTLP log bridge
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	log := loggerProvider.Bridge(baseLog, level)
	defer func() {
		_ = log.Sync()
	}()

	profiler, err := telemetry.NewProfiler(cfg.Profiling, cfg.App.Name, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting feed trading backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, meter, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}

	views, err := persistence.DetectViews(ctx, db.DB)
	if err != nil {
		log.Fatal("Failed to detect reporting views", zap.Error(err))
	}
	log.Info("Database connected",
		zap.Bool("v_account_summary", views.AccountSummary),
		zap.Bool("v_carrier_balance", views.CarrierBalance),
		zap.Bool("v_inventory_summary", views.InventorySummary),
	)
	policy := persistence.QueryPolicyFromConfig(cfg.Query)

	// Query cache, counted by the ledger metrics
	ledgerMetrics, err := telemetry.NewLedgerMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create ledger metrics", zap.Error(err))
	}
	rawCache, cacheCloser, err := cache.NewQueryCache(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize query cache", zap.Error(err))
	}
	defer func() {
		_ = cacheCloser.Close()
	}()
	queryCache := ledgerMetrics.InstrumentCache(rawCache)

	// Repositories
	contactRepo := persistence.NewGormContactRepository(db.DB, policy)
	accountRepo := persistence.NewGormAccountRepository(db.DB, policy)
	summaryReader := persistence.NewAccountSummaryReader(db.DB, policy, views)
	carrierRepo := persistence.NewGormCarrierRepository(db.DB, policy)
	carrierBalances := persistence.NewCarrierBalanceReader(db.DB, policy, views)
	inventoryReader := persistence.NewInventorySummaryReader(db.DB, policy, views)
	seasonRepo := persistence.NewGormSeasonRepository(db.DB, policy)
	saleRepo := persistence.NewGormSaleRepository(db.DB, policy)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB, policy)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB, policy)
	feedTypeRepo := persistence.NewGormFeedTypeRepository(db.DB, policy)
	preferenceStore := persistence.NewGormPreferenceStore(db.DB, policy)

	objectStore, err := storage.NewObjectStore(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Application services
	ledgerCfg := ledgerapp.DefaultServiceConfig()
	ledgerCfg.CacheTTL = cfg.Cache.TTL
	if cfg.Scheduler.AuditConcurrency > 0 {
		ledgerCfg.AuditConcurrency = cfg.Scheduler.AuditConcurrency
	}
	ledgerService := ledgerapp.NewLedgerService(
		contactRepo, summaryReader, accountRepo, accountRepo, accountRepo,
		queryCache, log.Named("ledger"), ledgerCfg,
	)
	deliveryService := ledgerapp.NewDeliveryService(
		contactRepo, saleRepo, purchaseRepo, accountRepo, accountRepo, deliveryRepo,
		queryCache, log.Named("deliveries"), ledgerCfg,
	)
	seasonService := seasonapp.NewSeasonService(seasonRepo, queryCache, cfg.Cache.TTL, log.Named("season"))
	seasonReportService := reportapp.NewSeasonReportService(reportapp.SeasonReportRepositories{
		Seasons:      seasonRepo,
		Deliveries:   deliveryRepo,
		Transactions: accountRepo,
		CarrierTxs:   carrierRepo,
		Sales:        saleRepo,
		Purchases:    purchaseRepo,
		Contacts:     contactRepo,
		Carriers:     carrierRepo,
		FeedTypes:    feedTypeRepo,
	}, queryCache, cfg.Cache.TTL, log.Named("report"))
	carrierService := carrierapp.NewBalanceService(carrierBalances)
	inventoryService := inventoryapp.NewSummaryService(inventoryReader)
	photoService := photoapp.NewPhotoService(deliveryRepo, objectStore, cfg.Storage.MaxUploadBytes, log.Named("photo"))
	preferenceService := preferenceapp.NewPreferenceService(preferenceStore, log.Named("preference"))

	// Background ledger audit
	var auditScheduler *scheduler.LedgerAuditScheduler
	if cfg.Scheduler.Enabled {
		auditScheduler, err = scheduler.NewLedgerAuditScheduler(cfg.Scheduler, ledgerService, log.Named("scheduler"))
		if err != nil {
			log.Fatal("Failed to create ledger audit scheduler", zap.Error(err))
		}
		auditScheduler.SetRecorder(ledgerMetrics)
		if err := auditScheduler.Start(); err != nil {
			log.Fatal("Failed to start ledger audit scheduler", zap.Error(err))
		}
	}

	verifier := auth.NewVerifier(cfg.Auth, log.Named("auth"))

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled),
		middleware.SpanErrorMarker(),
		middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		httpMetrics,
		middleware.Profiling(middleware.ProfilingConfig{
			Enabled:   profiler.IsEnabled(),
			SkipPaths: middleware.DefaultProfilingConfig().SkipPaths,
		}),
	)

	apiMiddleware := []gin.HandlerFunc{
		middleware.Auth(verifier, log),
		middleware.SpanAttributes(),
	}
	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateLimitWindow)
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(limiter))
	}
	r := router.NewRouter(engine, router.WithMiddleware(apiMiddleware...))

	ledgerHandler := handler.NewLedgerHandler(ledgerService, deliveryService)
	stockHandler := handler.NewStockHandler(carrierService, inventoryService)
	for _, g := range ledgerHandler.Routes() {
		r.Register(g)
	}
	for _, g := range stockHandler.Routes() {
		r.Register(g)
	}
	r.Register(handler.NewSeasonHandler(seasonService, seasonReportService).Routes()).
		Register(handler.NewPhotoHandler(photoService).Routes()).
		Register(handler.NewPreferenceHandler(preferenceService).Routes()).
		Register(handler.NewIdentityHandler().Routes())

	r.RegisterSystem(handler.NewHealthHandler(db, map[string]bool{
		"v_account_summary":   views.AccountSummary,
		"v_carrier_balance":   views.CarrierBalance,
		"v_inventory_summary": views.InventorySummary,
	}).Routes())
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if auditScheduler != nil {
		auditScheduler.Stop(shutdownCtx)
	}
	if limiter != nil {
		limiter.Stop()
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush metrics", zap.Error(err))
	}
	// Last, so the lines above still reach the collector
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Warn("Failed to flush logs", zap.Error(err))
	}

	baseLog.Info("Server exited gracefully")
}
