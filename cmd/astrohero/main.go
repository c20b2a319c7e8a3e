package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/okian/astrohero/internal/adapters/cache"
	"github.com/okian/astrohero/internal/adapters/ephemeris"
	"github.com/okian/astrohero/internal/adapters/http/api"
	"github.com/okian/astrohero/internal/adapters/http/site"
	"github.com/okian/astrohero/internal/adapters/http/swagger"
	service "github.com/okian/astrohero/internal/app"
	"github.com/okian/astrohero/internal/config"
	"github.com/okian/astrohero/internal/domain/background"
	"github.com/okian/astrohero/internal/domain/character"
	"github.com/okian/astrohero/internal/domain/rating"
	"github.com/okian/astrohero/pkg/logger"
	"github.com/okian/astrohero/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(); err != nil {
		logger.Get().Error(context.Background(), "astrohero exited", logger.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	app, err := build(cfg, log)
	if err != nil {
		return err
	}
	if err := app.svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer app.svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("engine", app.svc.Engine()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

type application struct {
	svc     *service.Service
	handler http.Handler
	metrics *metrics.Manager
}

// build wires the configured components without starting anything.
func build(cfg *config.Config, log logger.Logger) (*application, error) {
	scale, err := rating.ParseScale(cfg.RatingScale)
	if err != nil {
		return nil, err
	}
	houses, err := ephemeris.ParseHouseSystem(cfg.HouseSystem)
	if err != nil {
		return nil, err
	}

	m, err := metrics.NewManager(
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithRuntimeCollectors(true),
	)
	if err != nil {
		return nil, err
	}

	opts := []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithMetrics(m),
		service.WithCalculator(ephemeris.NewApproximate(
			ephemeris.WithHouseSystem(houses),
			ephemeris.WithDefaultTimezone(cfg.DefaultTimezone),
		)),
		service.WithDeriver(character.NewDeriver(
			character.WithScale(scale),
			character.WithComposer(background.NewComposer(background.WithMaxLength(cfg.BackgroundMaxLen))),
		)),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithMaxBatchSize(cfg.MaxBatchSize),
		service.WithCacheVariant("bg" + strconv.Itoa(cfg.BackgroundMaxLen)),
	}
	if cfg.CacheSize > 0 {
		opts = append(opts, service.WithCache(cache.NewInMemory[service.Result](
			cache.WithMaxSize(cfg.CacheSize),
			cache.WithTTL(cfg.CacheTTL()),
		)))
	}
	svc := service.New(opts...)

	apiServer := api.NewServer(svc,
		api.WithLogger(log.Named("api")),
		api.WithMetrics(m),
		api.WithDocs(site.NewHandler(svc, api.DefaultVersion)),
		api.WithEnvironment(cfg.Environment),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithRequestTimeout(cfg.RequestTimeout()),
		api.WithDebug(cfg.Debug),
	)

	mux := http.NewServeMux()
	swagger.Register(context.Background(), mux)
	apiServer.Register(context.Background(), mux)

	return &application{svc: svc, handler: apiServer.Handler(mux), metrics: m}, nil
}
