package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	appconfig "github.com/0x0FACED/northwind/config"
	"github.com/0x0FACED/northwind/internal/app"
	"github.com/0x0FACED/northwind/internal/cache"
	"github.com/0x0FACED/northwind/internal/customer"
	"github.com/0x0FACED/northwind/internal/database"
	"github.com/0x0FACED/northwind/internal/middleware"
	"github.com/0x0FACED/northwind/internal/pkg/httpcommon"
	"github.com/0x0FACED/northwind/internal/server"
	"github.com/0x0FACED/zlog"
	"github.com/redis/go-redis/v9"
)

func main() {
	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// app config load
	cfg, err := appconfig.Load()
	if err != nil {
		panic(err)
	}

	// logger init
	logger, err := zlog.NewZerologLogger(zlog.LoggerConfig{
		LogLevel: cfg.Logger.Level,
		LogsDir:  cfg.Logger.LogsDir,
	})
	if err != nil {
		log.Fatalln("Failed to initialize logger:", err)
	}

	logger.Info().Msg("Logger initialized")

	// creating logger for different components
	appLogger := logger.ChildWithName("component", "app")
	middlewareLogger := logger.ChildWithName("component", "middleware")
	cacheLogger := logger.ChildWithName("component", "cache")
	customerLogger := logger.ChildWithName("component", "customer")

	// init database
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(db); err != nil {
			appLogger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		appLogger.Info().Msg("Database schema is up to date")
	}

	// init cache
	var customerCache cache.Cache
	inMem, err := cache.NewMemoryCache(cfg.Cache)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to create memory cache")
	}

	switch cfg.Cache.Type {
	case cache.Memory, "":
		customerCache = inMem
	case cache.Redis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})

		var fallback *cache.MemoryCache
		if cfg.Cache.Redis.Fallback {
			fallback = inMem
		}

		redisCache := cache.NewRedisCache(client, fallback, cacheLogger)
		if err := redisCache.Ping(ctx); err != nil {
			appLogger.Warn().Err(err).Str("addr", cfg.Cache.Redis.Addr).Msg("Redis is not reachable")
		}
		customerCache = redisCache
	default:
		appLogger.Fatal().Msgf("Unknown cache type: %s", cfg.Cache.Type)
	}

	appLogger.Info().Msgf("Using %s cache", cfg.Cache.Type)

	store := customer.NewPostgresStore(db)
	repo := customer.NewRepository(store, customerCache, customerLogger, cfg.Customer)
	handler := customer.NewCustomerHandler(repo, customerLogger)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		httpcommon.EmptyResponse(w, http.StatusOK)
	})

	loggerMiddleware := middleware.NewLoggerMiddleware(middlewareLogger)

	srv := server.New(cfg.Server, loggerMiddleware.Logger(mux))

	app := app.New(srv, customerCache, store, appLogger)

	go func() {
		if err := app.Start(ctx); err != nil {
			appLogger.Error().Err(err).Msg("Application server failed")
			stop()
		}
	}()

	<-ctx.Done()

	if err := app.Shutdown(); err != nil {
		return
	}
}
