// Package server wires configuration, storage, the account service and the
// gRPC transport into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/credvault/internal/server/grpc"
)

const dbPingTimeout = 5 * time.Second

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	accounts    *services.AccountService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	as, err := services.NewAccountService(db, rm, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("account service init error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, repomanager: rm, accounts: as}, nil
}

func (app *App) prepareDB(ctx context.Context) error {
	pctx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err := app.db.PingContext(pctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Run blocks until ctx is cancelled, a termination signal arrives, or the
// server fails. The database is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "error closing db", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	if err := app.prepareDB(ctx); err != nil {
		app.logger.Error(ctx, "db not ready", "error", err)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts, app.config.SecretKey)
		return s.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
