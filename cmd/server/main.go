package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	shippingapp "github.com/storefront/backend/internal/application/shipping"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/rateapi"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.NewFromConfig(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with the zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Quote cache: Redis when reachable, in-memory otherwise
	cacheFactory := cache.NewQuoteCacheFactory(cfg.Redis, cache.WithLogger(log))
	quoteCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create quote cache", zap.Error(err))
	}

	// External rate API client
	rateCfg := rateapi.NewConfig(cfg.RateAPI.BaseURL, cfg.RateAPI.APIKey)
	rateCfg.GatewayAnonKey = cfg.RateAPI.GatewayAnonKey
	rateCfg.OriginCountry = cfg.RateAPI.OriginCountry
	rateCfg.DefaultCountry = cfg.RateAPI.DefaultCountry
	rateCfg.TimeoutSeconds = cfg.RateAPI.TimeoutSeconds
	rateClient, err := rateapi.NewClient(rateCfg, log)
	if err != nil {
		log.Fatal("Failed to create rate API client", zap.Error(err))
	}
	gateway := cache.NewCachedGateway(rateClient, quoteCache, cfg.RateAPI.QuoteCacheTTL, log)

	// Initialize repositories
	optionRepo := persistence.NewGormShippingOptionRepository(db.DB)
	profileRepo := persistence.NewGormShippingProfileRepository(db.DB)
	fulfillmentSetRepo := persistence.NewGormFulfillmentSetRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)

	// Initialize application services
	priceService := shippingapp.NewPriceService(gateway, cfg.RateAPI.DefaultCurrency, cfg.RateAPI.PayOnCollection, log)
	providerService := shippingapp.NewProviderService(gateway, priceService, shippingapp.ProviderConfig{
		ProviderID:        cfg.Sync.ProviderID,
		SampleWeightGrams: cfg.Sync.SampleWeightGrams,
		DefaultCurrency:   cfg.RateAPI.DefaultCurrency,
		OriginCountry:     cfg.RateAPI.OriginCountry,
		DefaultCountry:    cfg.RateAPI.DefaultCountry,
	}, log)
	syncService := shippingapp.NewSyncService(
		gateway, optionRepo, profileRepo, fulfillmentSetRepo,
		cfg.Sync.ProviderID, cfg.Sync.SampleWeightGrams, cfg.RateAPI.DefaultCurrency, log,
	)
	rateService := shippingapp.NewRateService(gateway, cartRepo, cfg.Sync.ProviderID, cfg.RateAPI.DefaultCurrency, log)

	log.Info("Fulfillment provider initialized",
		zap.String("provider_id", providerService.Identifier()),
		zap.Bool("gateway_mode", rateCfg.IsGateway()),
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())

	// Initialize HTTP handlers
	var cachePinger handler.CachePinger
	if p, ok := quoteCache.(handler.CachePinger); ok {
		cachePinger = p
	}

	r := router.NewRouter(engine)
	r.Register(
		handler.NewRatesHandler(rateService, log),
		handler.NewProviderHandler(providerService, log),
		handler.NewSyncHandler(syncService, log),
		handler.NewSystemHandler(db, cachePinger),
	)
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
