// Package server wires the Horios server together: configuration, storage,
// the asset provider, services, and the gRPC and ops listeners.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/auth"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/config"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/ops"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/provider"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/repomanager"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/services"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/storage"

	gs "github.com/Santi-a-ux/Horios-OTT/internal/server/grpc"
)

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// App owns the server components built from one Config.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	repos  repomanager.RepositoryManager
	users  *services.UserService
	videos *services.VideoService
}

// NewApp validates c and builds every component. Nothing listens until Run.
func NewApp(c *config.Config, out io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(c.LogFormat, c.LogLevel, out)

	app := &App{config: c, logger: logger}

	var runner dbx.Runner
	if c.DatabaseDSN == config.MemoryDSN {
		app.repos = repomanager.NewInMemoryRepositoryManager()
		runner = dbx.Direct{}
	} else {
		db, err := openDB(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		app.db = db
		app.repos = repomanager.NewPostgresRepositoryManager()
		runner = dbx.NewSQLRunner(db, nil)
	}

	tokens, err := auth.NewTokenManager([]byte(c.SecretKey), c.TokenAlgorithm, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	mux := provider.NewMuxClient(provider.MuxConfig{
		BaseURL:       c.MuxBaseURL,
		StreamBaseURL: c.MuxStreamBaseURL,
		TokenID:       c.MuxTokenID,
		TokenSecret:   c.MuxTokenSecret,
		Timeout:       c.ProviderTimeout,
	}, &http.Client{Timeout: c.ProviderTimeout})
	assets := provider.NewBreakerClient(mux, provider.DefaultBreakerConfig(), logger)

	var store services.SourceStore
	if c.S3Bucket != "" && c.S3RootUser != "" {
		store = storage.NewS3Store(storage.S3Config{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	}

	gate := services.NewGate(tokens, app.repos)
	app.users = services.NewUserService(runner, app.repos, gate, auth.NewPasswordHasher(c.BcryptCost), tokens, logger)
	app.videos = services.NewVideoService(runner, app.repos, gate, assets, store, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepare runs migrations and ensures the bootstrap admin.
func (app *App) prepare(ctx context.Context) error {
	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if app.config.BootstrapAdminEmail != "" {
		if _, err := app.users.EnsureAdmin(ctx, services.Credentials{
			Email:    app.config.BootstrapAdminEmail,
			Password: app.config.BootstrapAdminPassword,
		}); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	ttl := int64(app.config.AccessTokenValidityDuration.Seconds())
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.users, app.videos, ttl)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startOpsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	var pinger ops.Pinger
	if app.db != nil {
		pinger = app.db
	}
	s := ops.NewServer(app.config.OpsAddr, pinger, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if app.db != nil {
		defer app.db.Close()
	}

	if err := app.prepare(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startOpsServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return nil
}
