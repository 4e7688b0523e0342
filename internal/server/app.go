// Package server wires the document server together: storage backend,
// change notifier, document service and the gRPC endpoint, plus graceful
// shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/server/config"
	"github.com/dmitrijs2005/ledgersync/internal/server/documents"
	"github.com/dmitrijs2005/ledgersync/internal/server/notify"

	gs "github.com/dmitrijs2005/ledgersync/internal/server/grpc"
)

// Test seams for the external backends.
var (
	openPostgres = documents.OpenPostgres
	newS3Client  = func(ctx context.Context, c documents.S3Config) (documents.S3API, error) {
		return documents.NewS3Client(ctx, c)
	}
	newRedis = notify.NewRedis
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	docs     *documents.Service
	redis    *notify.Redis
	db       *sql.DB
	serverFn func(ctx context.Context) error
}

// NewApp validates c and connects the configured storage and notifier.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	app := &App{config: c, logger: logger}

	repo, err := app.initStorage(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	var n notify.Notifier = notify.NewHub()
	if c.RedisAddr != "" {
		r, err := newRedis(ctx, c.RedisAddr,
			notify.WithRedisChannel(c.RedisChannel),
			notify.WithRedisLogger(logger))
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.redis = r
		n = r
	}

	app.docs = documents.NewService(repo, n, logger)

	s, err := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, app.docs, c.SecretKey)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.serverFn = s.Run

	return app, nil
}

func (app *App) initStorage(ctx context.Context) (documents.Repository, error) {
	c := app.config
	switch c.StorageBackend {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db
		return documents.NewPostgresRepository(db), nil
	case config.StorageS3:
		api, err := newS3Client(ctx, documents.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		return documents.NewS3Repository(api, c.S3Bucket), nil
	default:
		return documents.NewMemoryRepository(), nil
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled, a signal arrives or a component fails.
// The first component error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend, "address", app.config.EndpointAddrGRPC)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		app.logger.Error(ctx, err.Error())
		errOnce.Do(func() { firstErr = err })
		cancelFunc()
	}

	if app.redis != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.redis.Run(ctx); err != nil && ctx.Err() == nil {
				fail(fmt.Errorf("redis subscriber: %w", err))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.serverFn(ctx); err != nil {
			fail(err)
		}
	}()

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}

// Close releases the storage and notifier connections.
func (app *App) Close() error {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	return errors.Join(errs...)
}
