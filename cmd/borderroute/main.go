// Command borderroute serves the route search HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/api"
	"github.com/persistorai/borderroute/internal/catalog"
	"github.com/persistorai/borderroute/internal/config"
	"github.com/persistorai/borderroute/internal/countries"
	"github.com/persistorai/borderroute/internal/db"
	"github.com/persistorai/borderroute/internal/db/migrations"
	"github.com/persistorai/borderroute/internal/dbpool"
	"github.com/persistorai/borderroute/internal/metrics"
	"github.com/persistorai/borderroute/internal/models"
	"github.com/persistorai/borderroute/internal/resolver"
	"github.com/persistorai/borderroute/internal/service"
	"github.com/persistorai/borderroute/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("borderroute exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	upstream := countries.New(cfg.CountriesAPIURL,
		countries.WithTimeout(cfg.LookupTimeout),
		countries.WithRateLimit(cfg.LookupRate, cfg.LookupConcurrency),
	)

	apiResolver, err := withCache(resolver.NewAPIResolver(upstream), cfg.ResolverCacheSize)
	if err != nil {
		return err
	}

	resolvers := map[string]resolver.Resolver{
		models.ModeAPI:   apiResolver,
		models.ModeTable: resolver.NewTableResolver(upstream),
	}

	var countrySource catalog.CountryFetcher = upstream

	deps := &api.RouterDeps{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
	}

	if cfg.StoreEnabled() {
		pool, err := setupStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		borders := store.NewBorderStore(store.Base{Pool: pool, Log: log})
		snapshots := service.NewSnapshotService(upstream, borders, log)

		if err := importSnapshot(ctx, cfg, snapshots, log); err != nil {
			return err
		}

		resolvers[models.ModeStore] = resolver.NewStoreResolver(borders)
		if cfg.DefaultMode == models.ModeStore {
			countrySource = borders
		}

		deps.DB = pool
		deps.Snapshots = snapshots
	}

	routes := service.NewRouteService(catalog.New(countrySource), resolvers, service.RouteOptions{
		DefaultMode: cfg.DefaultMode,
		Timeout:     cfg.SearchTimeout,
		MaxRounds:   cfg.SearchMaxRounds,
		Concurrency: cfg.LookupConcurrency,
	}, log)
	deps.Routes = routes
	deps.Modes = routes.Modes()

	// Warm the catalog in the background; readiness reports it.
	go func() {
		if _, err := routes.Countries(ctx); err != nil {
			log.WithError(err).Warn("country catalog not loaded, will retry on first request")
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.SearchTimeout + 10*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"modes":   deps.Modes,
			"default": cfg.DefaultMode,
			"version": config.Version,
		}).Info("borderroute listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving http: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	return nil
}

// withCache wraps r in a cross-search LRU when size is positive.
func withCache(r resolver.Resolver, size int) (resolver.Resolver, error) {
	if size <= 0 {
		return r, nil
	}

	cached, err := resolver.NewCachedResolver(r, size)
	if err != nil {
		return nil, fmt.Errorf("creating resolver cache: %w", err)
	}
	cached.OnHit(metrics.CacheHits.Inc)

	return cached, nil
}

func setupStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*dbpool.Pool, error) {
	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return pool, nil
}

// importSnapshot refreshes the stored borders on start. A failed import is
// fatal only when the store is empty and store mode is the default.
func importSnapshot(ctx context.Context, cfg *config.Config, snapshots *service.SnapshotService, log *logrus.Logger) error {
	stats, err := snapshots.Stats(ctx)
	if err != nil {
		return err
	}

	if !cfg.ImportOnStart && stats.Countries > 0 {
		return nil
	}

	snap, err := snapshots.Import(ctx)
	if err == nil {
		log.WithFields(logrus.Fields{
			"countries": snap.Countries,
			"borders":   snap.Borders,
		}).Info("border snapshot refreshed")

		return nil
	}

	if stats.Countries == 0 && cfg.DefaultMode == models.ModeStore {
		return fmt.Errorf("importing initial border snapshot: %w", err)
	}

	log.WithError(err).Warn("border snapshot import failed, serving the stored copy")

	return nil
}
