// Package app wires configuration, logging, metrics and the selected storage
// backend into the planner services.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/renukapawar30/Project-Planner-Tool/internal/api"
	"github.com/renukapawar30/Project-Planner-Tool/internal/board"
	"github.com/renukapawar30/Project-Planner-Tool/internal/config"
	"github.com/renukapawar30/Project-Planner-Tool/internal/directory"
	"github.com/renukapawar30/Project-Planner-Tool/internal/logging"
	"github.com/renukapawar30/Project-Planner-Tool/internal/otel"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store/postgres"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store/redis"
	"github.com/renukapawar30/Project-Planner-Tool/internal/store/sqlite"
)

// App holds the services built from one configuration.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *otel.Metrics
	Store     *store.Guarded
	Directory *directory.Service
	Boards    *board.Store
	Tasks     *board.TaskManager
	API       *api.API
}

// Open builds an App. Log output goes to logw.
func Open(ctx context.Context, cfg *config.Config, logw io.Writer) (*App, error) {
	logger, err := logging.New(logw, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	metrics, err := otel.New(ctx, "planner")
	if err != nil {
		return nil, err
	}
	acc, lockPath, err := OpenAccessor(ctx, cfg)
	if err != nil {
		_ = metrics.Shutdown(ctx)
		return nil, err
	}
	st := store.NewGuarded(acc, lockPath)
	dir := directory.New(st, logger)
	opts := []board.Option{
		board.WithLogger(logger.Named("board")),
		board.WithMetrics(metrics),
		board.WithExportDir(cfg.Export.Dir),
	}
	boards := board.NewStore(st, dir, opts...)
	tasks := board.NewTaskManager(st, dir, opts...)

	logger.Debug("planner opened",
		zap.String("home", cfg.Home),
		zap.String("driver", cfg.Storage.Driver),
		zap.String("data_dir", cfg.Storage.DataDir),
	)
	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Store:     st,
		Directory: dir,
		Boards:    boards,
		Tasks:     tasks,
		API:       api.New(boards, tasks, dir),
	}, nil
}

// OpenAccessor opens the backend named by cfg.Storage.Driver. lockPath is
// non-empty for backends that live in local files shared across processes.
func OpenAccessor(ctx context.Context, cfg *config.Config) (store.Accessor, string, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile, "":
		fs, err := store.OpenFile(cfg.Storage.DataDir)
		if err != nil {
			return nil, "", err
		}
		return fs, cfg.LockPath(), nil
	case config.DriverMemory:
		return store.NewMemory(), "", nil
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath())
		if err != nil {
			return nil, "", fmt.Errorf("open sqlite: %w", err)
		}
		return s, cfg.LockPath(), nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, "", fmt.Errorf("open postgres: %w", err)
		}
		return s, "", nil
	case config.DriverRedis:
		s, err := redis.Open(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisPrefix)
		if err != nil {
			return nil, "", fmt.Errorf("open redis: %w", err)
		}
		return s, "", nil
	default:
		return nil, "", fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Close writes the metrics textfile when configured, then releases the
// store, the meter provider and the logger.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Config.Metrics.Textfile != "" {
		if err := a.Metrics.WriteTextfile(a.Config.Metrics.Textfile); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.Metrics.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
