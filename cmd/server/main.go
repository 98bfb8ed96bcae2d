package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/prodtrack/backend/internal/application/catalog"
	inventoryapp "github.com/prodtrack/backend/internal/application/inventory"
	productionapp "github.com/prodtrack/backend/internal/application/production"
	scanapp "github.com/prodtrack/backend/internal/application/scan"
	warehouseapp "github.com/prodtrack/backend/internal/application/warehouse"
	"github.com/prodtrack/backend/internal/infrastructure/auth"
	"github.com/prodtrack/backend/internal/infrastructure/config"
	"github.com/prodtrack/backend/internal/infrastructure/event"
	"github.com/prodtrack/backend/internal/infrastructure/logger"
	"github.com/prodtrack/backend/internal/infrastructure/persistence"
	"github.com/prodtrack/backend/internal/interfaces/http/handler"
	"github.com/prodtrack/backend/internal/interfaces/http/middleware"
	"github.com/prodtrack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ProdTrack Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	inventoryItemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	inventoryLogRepo := persistence.NewGormInventoryLogRepository(db.DB)
	stockTransactionRepo := persistence.NewGormStockTransactionRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	processRepo := persistence.NewGormProcessRepository(db.DB)
	sectionRepo := persistence.NewGormSectionRepository(db.DB)
	scanLogRepo := persistence.NewGormScanLogRepository(db.DB)

	// Transaction scopes bind mutations to a single database transaction
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	scanScope := persistence.NewGormScanTransactionScope(db.DB)
	productionScope := persistence.NewGormProductionTransactionScope(db.DB)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	warehouseService := warehouseapp.NewWarehouseService(warehouseRepo)
	stockService := inventoryapp.NewStockService(
		inventoryScope,
		inventoryItemRepo,
		inventoryLogRepo,
		stockTransactionRepo,
		productRepo,
		warehouseRepo,
	)
	scanService := scanapp.NewScanService(scanScope, scanLogRepo, stockService, productRepo, warehouseRepo)
	productionService := productionapp.NewProductionService(
		productionScope,
		orderRepo,
		processRepo,
		sectionRepo,
		productRepo,
	)

	// JWT service and optional Redis-backed token revocation
	jwtService := auth.NewJWTService(cfg.JWT)

	var tokenBlacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, token revocation disabled", zap.Error(err))
		} else {
			tokenBlacklist = blacklist
			log.Info("Redis token blacklist enabled",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
		}
	}

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	lowStockHandler := inventoryapp.NewLowStockHandler(log)
	eventBus.Subscribe(lowStockHandler)
	log.Info("Event handlers registered",
		zap.Strings("low_stock_events", lowStockHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	stockService.SetEventPublisher(eventBus)
	productionService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db)
	productHandler := handler.NewProductHandler(productService, categoryService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	inventoryHandler := handler.NewInventoryHandler(stockService)
	productionHandler := handler.NewProductionHandler(productionService)
	scanHandler := handler.NewScanHandler(scanService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register domain-aware binding validators
	middleware.RegisterCustomValidators()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// JWT authentication for the API surface, with public endpoints skipped
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Register route groups under /api/v1
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(productHandler).
		Register(warehouseHandler).
		Register(inventoryHandler).
		Register(productionHandler).
		Register(scanHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
