// Package server wires configuration, storage, services and both transports
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
	"github.com/dmitrijs2005/projecthub/internal/server/config"
	"github.com/dmitrijs2005/projecthub/internal/server/httpapi"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/projecthub/internal/server/revocation"
	"github.com/dmitrijs2005/projecthub/internal/server/services"

	gs "github.com/dmitrijs2005/projecthub/internal/server/grpc"
)

const migrationTimeout = 30 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	purger     *revocation.Purger
	httpServer *httpapi.HTTPServer
	grpcServer *gs.GRPCServer
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(c, logger, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, purgeable := newRevocationStore(c, db, rm)

	purger, err := revocation.NewPurger(purgeable, c.RevocationPurgeSchedule, c.StoreTimeout, logger)
	if err != nil {
		return nil, err
	}

	authority := auth.NewAuthority([]byte(c.SecretKey), c.TokenValidityDuration)
	gate := auth.NewGate(store, authority)

	us := services.NewUserService(db, rm, authority, store, c)
	ps := services.NewProjectService(db, rm, c)

	httpServer := httpapi.NewHTTPServer(httpapi.Options{
		Address:        c.EndpointAddrHTTP,
		CookieSecure:   c.CookieSecure,
		CookieMaxAge:   c.TokenValidityDuration,
		AllowedOrigins: c.AllowedOrigins,
		Health:         db.PingContext,
	}, logger, us, ps, gate)

	grpcServer := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ps, gate)

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		purger:     purger,
		httpServer: httpServer,
		grpcServer: grpcServer,
	}, nil
}

// newRevocationStore picks the configured backend. Both kinds need their
// expired records swept.
func newRevocationStore(c *config.Config, db *sql.DB, rm repomanager.RepositoryManager) (revocation.Store, revocation.Purgeable) {
	if c.RevocationBackend == config.RevocationBackendMemory {
		s := revocation.NewMemoryStore()
		return s, s
	}
	s := revocation.NewPostgresStore(rm.Revocations(db), c.StoreTimeout)
	return s, s
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

type runner interface {
	Run(ctx context.Context) error
}

// startServer runs srv until ctx ends; a failing server brings the whole
// app down.
func (app *App) startServer(ctx context.Context, cancelFunc context.CancelFunc, name string, srv runner) {
	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "revocation_backend", app.config.RevocationBackend)

	app.initSignalHandler(cancelFunc)

	app.purger.Start()
	defer app.purger.Stop()

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startServer(ctx, cancelFunc, "http", app.httpServer)
	}()
	go func() {
		defer wg.Done()
		app.startServer(ctx, cancelFunc, "grpc", app.grpcServer)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
