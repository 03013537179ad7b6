package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/multivar"
	"github.com/aretw0/multivar/internal/config"
	"github.com/aretw0/multivar/internal/metrics"
	"github.com/aretw0/multivar/pkg/adapters/lua"
	"github.com/aretw0/multivar/pkg/adapters/memory"
	"github.com/aretw0/multivar/pkg/adapters/redis"
	"github.com/aretw0/multivar/pkg/adapters/sqlite"
	"github.com/aretw0/multivar/pkg/service"
)

// App bundles the service built from a Config with the resources it owns.
type App struct {
	Config  config.Config
	Service *service.Service
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	closers []func() error
}

// NewApp builds the kernel, the cache and journal backends, and the service on top of them.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:  cfg,
		Metrics: metrics.New(nil),
		Logger:  logger,
	}

	k := multivar.New(kernelOptions(cfg.Kernel, app.Metrics, logger)...)

	opts := []service.Option{
		service.WithMetrics(app.Metrics),
		service.WithLogger(logger),
		service.WithLimits(service.Limits{
			MaxResolution: cfg.Limits.MaxResolution,
			MaxSteps:      cfg.Limits.MaxSteps,
			MaxLevels:     cfg.Limits.MaxLevels,
			MaxPoints:     cfg.Limits.MaxPoints,
		}),
	}

	cacheOpt, err := app.cache(ctx, cfg.Cache)
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}
	if cacheOpt != nil {
		opts = append(opts, cacheOpt)
	}

	journalOpt, err := app.journal(cfg.Journal)
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}
	if journalOpt != nil {
		opts = append(opts, journalOpt)
	}

	app.Service = service.New(k, opts...)
	return app, nil
}

func kernelOptions(c config.KernelConfig, m *metrics.Metrics, logger *slog.Logger) []multivar.Option {
	return []multivar.Option{
		multivar.WithEvaluator(m.InstrumentEvaluator(lua.New())),
		multivar.WithStep(c.Step),
		multivar.WithApproachRadius(c.ApproachRadius),
		multivar.WithFieldTolerance(c.FieldTolerance),
		multivar.WithContourBand(c.ContourBand),
		multivar.WithLagrangeTolerance(c.LagrangeTolerance),
		multivar.WithPathSteps(c.PathSteps),
		multivar.WithResolutions(c.SurfaceResolution, c.ContourResolution),
		multivar.WithWorkers(c.Workers),
		multivar.WithLogger(logger),
	}
}

func (a *App) cache(ctx context.Context, c config.CacheConfig) (service.Option, error) {
	switch strings.ToLower(c.Backend) {
	case config.BackendMemory:
		return service.WithCache(memory.NewCache()), nil
	case config.BackendRedis:
		cache := redis.New(c.RedisAddr, c.RedisPassword, c.RedisDB, redis.WithTTL(c.TTL))
		a.closers = append(a.closers, cache.Close)
		if err := cache.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis cache at %s: %w", c.RedisAddr, err)
		}
		a.Logger.Debug("Result cache ready", "backend", "redis", "addr", c.RedisAddr)
		return service.WithCache(cache), nil
	}
	return nil, nil
}

func (a *App) journal(c config.JournalConfig) (service.Option, error) {
	switch strings.ToLower(c.Backend) {
	case config.BackendMemory:
		return service.WithJournal(memory.NewJournal()), nil
	case config.BackendSQLite:
		journal, err := sqlite.Open(c.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite journal: %w", err)
		}
		a.closers = append(a.closers, journal.Close)
		a.Logger.Debug("Journal ready", "backend", "sqlite", "path", c.Path)
		return service.WithJournal(journal), nil
	}
	return nil, nil
}

// Close releases the backends opened by NewApp.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
