package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	_ "github.com/thirty33/DELICIUS-FOOD-CRM-sub000/docs"
	appproduction "github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/application/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/cache"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/config"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/event"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/logger"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/scheduler"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/telemetry"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/interfaces/http/handler"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/interfaces/http/middleware"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Production Planning API
//	@version		1.0
//	@description	Production orders, stock ledger and consolidated kitchen reports

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		ProfilingEnabled:  cfg.Telemetry.ProfilingEnabled,
		PyroscopeEndpoint: cfg.Telemetry.PyroscopeEndpoint,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	// Logs also go to the collector once the OTLP pipeline is up
	if core := providers.Logs.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)); core != nil {
		if bridged, err := logger.New(logCfg, core); err == nil {
			log = bridged
		} else {
			log.Warn("Failed to attach OTLP log bridge", zap.Error(err))
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting production service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.Open(ctx, &cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if err := ensureDefaultWarehouse(ctx, persistence.NewGormWarehouseRepository(db.DB), cfg.Production.DefaultWarehouseCode, log); err != nil {
		log.Fatal("Failed to prepare the default warehouse", zap.Error(err))
	}

	queue, redisClient, err := cache.NewProductionStatusQueue(ctx, cfg.Redis, cfg.Production.StatusQueueKey,
		cache.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize production status queue", zap.Error(err))
	}

	scope := persistence.NewGormTransactionScope(db.DB)

	metrics, err := telemetry.NewProductionMetrics(providers.Meter.Meter(telemetry.InstrumentationName))
	if err != nil {
		log.Fatal("Failed to create production metrics", zap.Error(err))
	}

	orderService := appproduction.NewProductionOrderService(scope, log)
	orderService.SetMetrics(metrics)
	reportService := appproduction.NewReportService(scope, log)
	statusService := appproduction.NewProductionStatusService(scope, queue, cfg.Production.StatusBatchSize, log)

	eventBus := event.NewInMemoryEventBus(log)
	statusHandler := appproduction.NewProductionStatusHandler(scope, queue, log)
	eventBus.Subscribe(statusHandler)
	log.Info("Event handlers registered", zap.Strings("production_status_events", statusHandler.EventTypes()))

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	orderService.SetEventPublisher(eventBus)

	statusScheduler := scheduler.NewProductionStatusScheduler(statusService, scheduler.Config{
		Enabled:      cfg.Scheduler.Enabled,
		PollInterval: cfg.Scheduler.PollInterval,
		JobTimeout:   cfg.Scheduler.JobTimeout,
	}, log)
	if cfg.Scheduler.Enabled {
		if err := statusScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start production status scheduler", zap.Error(err))
		}
		log.Info("Production status scheduler started",
			zap.Duration("poll_interval", cfg.Scheduler.PollInterval),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name).
		AddCheck("database", db.Ping)
	if redisClient != nil {
		systemHandler.AddCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	engine := router.NewEngine(router.EngineConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		CORS: middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       middleware.DefaultCORSConfig().MaxAge,
		},
		Swagger: middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		},
	}, router.Handlers{
		ProductionOrders: handler.NewProductionOrderHandler(orderService),
		Reports:          handler.NewReportHandler(reportService, statusService),
		System:           systemHandler,
	}, log)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := statusScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping production status scheduler", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	closeRedis(redisClient, log)
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down telemetry", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// ensureDefaultWarehouse creates the warehouse executions write to when none is marked default
func ensureDefaultWarehouse(ctx context.Context, repo inventory.WarehouseRepository, code string, log *zap.Logger) error {
	existing, err := repo.FindDefault(ctx)
	if err == nil {
		log.Info("Default warehouse", zap.String("code", existing.Code))
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	w, err := inventory.NewWarehouse(code, code, true)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, w); err != nil {
		return err
	}
	log.Warn("No default warehouse found, created one", zap.String("code", code))
	return nil
}

func closeRedis(client *redis.Client, log *zap.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Error("Error closing Redis client", zap.Error(err))
	}
}
