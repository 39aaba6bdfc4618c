package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/wallpaperd/wallpaperd/internal/api"
	"github.com/wallpaperd/wallpaperd/internal/cache"
	"github.com/wallpaperd/wallpaperd/internal/cache/memory"
	"github.com/wallpaperd/wallpaperd/internal/cache/redis"
	"github.com/wallpaperd/wallpaperd/internal/cmd"
	"github.com/wallpaperd/wallpaperd/internal/health"
	"github.com/wallpaperd/wallpaperd/internal/logger"
	"github.com/wallpaperd/wallpaperd/internal/metrics"
	"github.com/wallpaperd/wallpaperd/internal/provider"
	"github.com/wallpaperd/wallpaperd/internal/provider/picsum"
	"github.com/wallpaperd/wallpaperd/internal/provider/unsplash"
	"github.com/wallpaperd/wallpaperd/internal/tracing"

	"github.com/jamiealquiza/envy"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Comandline flags
var (
	// Global
	listen        = flag.String("listen", ":8080", "listen address")
	metricsListen = flag.String("metrics-listen", ":8081", "metrics listen address")
	loglevel      = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")

	// Cache
	cacheEnabled = flag.Bool("cache-enabled", false, "whether to cache fetched pictures")
	cacheMaxAge  = flag.Duration("cache-max-age", time.Hour, "how long a cached picture stays fresh")
	cacheBackend = flag.String("cache", "memory", "which cache backend to use (memory, redis)")

	// Cache - Redis
	cacheRedisAddress  = flag.String("cache-redis-address", "127.0.0.1:6379", "redis address")
	cacheRedisPoolSize = flag.Int("cache-redis-pool-size", 10, "redis connection pool size")

	// Providers
	fetchTimeout      = flag.Duration("fetch-timeout", 10*time.Second, "timeout for upstream picture fetches")
	unsplashAccessKey = flag.String("unsplash-access-key", "", "unsplash api access key")
	unsplashAPIURL    = flag.String("unsplash-api-url", unsplash.DefaultAPIURL, "unsplash api url")
	picsumURL         = flag.String("picsum-url", picsum.DefaultURL, "lorem picsum url")
)

func main() {
	// Parse environment variables
	envy.Parse("WALLPAPERD")

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel)
	defer log.Sync()

	// Set GOMAXPROCS
	maxprocs.Set(maxprocs.Logger(log.Infof))

	// Set up context for shutting down
	shutdownCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	// Initialize tracing
	tracer, err := tracing.New(context.Background(), log, "wallpaperd")
	if err != nil {
		log.Fatalf("error initializing tracing: %s", err)
	}

	// Initialize the cache backend
	cacheProvider, err := setupCache(tracer)
	if err != nil {
		log.Fatalf("error initializing cache: %s", err)
	}
	defer cacheProvider.Shutdown()

	// Initialize the providers
	registry := provider.NewRegistry(
		unsplash.New(*unsplashAccessKey, *unsplashAPIURL, *fetchTimeout),
		picsum.New(*picsumURL, *fetchTimeout),
	)

	log.Infof("registered providers: %v", registry.Names())

	store := &cache.Store{
		Enabled:  *cacheEnabled,
		MaxAge:   *cacheMaxAge,
		Registry: registry,
		Backend:  cacheProvider,
		Tracer:   tracer,
		Log:      log,
	}

	// Initialize and start the health checker
	checkerCtx, checkerCancel := context.WithCancel(context.Background())
	defer checkerCancel()

	checker := &health.Checker{
		Ctx:   checkerCtx,
		Cache: cacheProvider,
		Log:   log,
	}
	go checker.Run()

	// Start the metrics http server
	metricsCtx, metricsCancel := context.WithCancel(context.Background())
	defer metricsCancel()

	go metrics.Serve(metricsCtx, log, checker, *metricsListen)

	// Start and listen on http
	api := &api.API{
		Cache:          store,
		HealthChecker:  checker,
		Log:            log,
		Tracer:         tracer,
		HandlerTimeout: cmd.HandlerTimeout,
	}
	server := &http.Server{
		Addr:         *listen,
		Handler:      api.Router(),
		ReadTimeout:  cmd.ReadTimeout,
		WriteTimeout: cmd.WriteTimeout,
		ErrorLog:     logger.NewHTTPErrorLog(log),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil {
			log.Infof("shutting down the http server: %s", err)
			shutdown()
		}
	}()

	log.Infof("http server listening on %s", *listen)

	// Wait for shutdown or error
	err = cmd.WaitForInterrupt(shutdownCtx)
	log.Infof("shutting down: %s", err)

	// Shut down http server
	serverCtx, serverCancel := context.WithTimeout(context.Background(), cmd.WriteTimeout)
	defer serverCancel()
	if err := server.Shutdown(serverCtx); err != nil {
		log.Warnf("error shutting down: %s", err)
	}

	// Shut down tracing
	tracer.Shutdown(serverCtx)
}

func setupCache(tracer *tracing.Tracer) (cache.Provider, error) {
	switch *cacheBackend {
	case "memory":
		return memory.New(), nil
	case "redis":
		return redis.New(context.Background(), tracer, *cacheRedisAddress, *cacheRedisPoolSize)
	default:
		return nil, fmt.Errorf("invalid cache backend")
	}
}
