// Package server assembles the bookshelf server: store, auth, the query
// graph and its HTTP transport.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/covers"
	"github.com/dmitrijs2005/bookshelf/internal/server/gql"
	"github.com/dmitrijs2005/bookshelf/internal/server/graph"
	"github.com/dmitrijs2005/bookshelf/internal/server/metrics"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/seed"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  repomanager.RepositoryManager
	server *gql.Server
}

// newRepositoryManager is a seam for tests.
var newRepositoryManager = repomanager.New

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(c.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	store, err := newRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := store.RunMigrations(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	if c.Seed {
		if _, err := seed.Run(ctx, store, logger); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
	}

	presigner, err := covers.New(ctx, covers.Options{
		Region:    c.S3Region,
		AccessKey: c.S3RootUser,
		SecretKey: c.S3RootPassword,
		Endpoint:  c.S3BaseEndpoint,
		Bucket:    c.S3Bucket,
	})
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("cover storage init error: %w", err)
	}

	m := metrics.New()
	resolver := graph.NewResolver(store, auth.NewIssuer(c.SecretKey, c.AccessTokenValidityDuration), presigner, logger)
	dispatcher := graph.NewDispatcher(resolver, m, logger.With("module", "dispatcher"))

	schema, err := gql.NewSchema(dispatcher)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("schema error: %w", err)
	}

	handler := gql.NewHandler(schema, auth.NewVerifier(c.SecretKey, logger.With("module", "auth")), logger)
	mux := gql.NewMux(gql.Routes{
		GraphQL:    handler,
		Metrics:    m.Handler(),
		Health:     store.Ping,
		CORSOrigin: c.CORSOrigin,
	}, logger)

	return &App{
		config: c,
		logger: logger,
		store:  store,
		server: gql.NewServer(c.EndpointAddrHTTP, mux, logger),
	}, nil
}

// notifySignals is a seam for tests.
var notifySignals = signal.Notify

var errStopSignal = errors.New("stop signal received")

// waitForSignal returns errStopSignal on SIGINT, SIGTERM or SIGQUIT, and nil
// once ctx is done.
func (app *App) waitForSignal(ctx context.Context) error {
	sigs := make(chan os.Signal, 1)
	notifySignals(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	select {
	case sig := <-sigs:
		app.logger.Info(ctx, "Signal received", "signal", sig.String())
		return errStopSignal
	case <-ctx.Done():
		return nil
	}
}

// Run serves until a termination signal arrives, ctx is cancelled or the
// server fails, then closes the store. Whichever finishes first cancels the
// other.
func (app *App) Run(ctx context.Context) error {

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.waitForSignal(gctx)
	})
	g.Go(func() error {
		return app.server.Run(gctx)
	})

	err := g.Wait()
	if errors.Is(err, errStopSignal) {
		err = nil
	}

	if cerr := app.store.Close(context.WithoutCancel(ctx)); cerr != nil {
		app.logger.Error(ctx, "store close error", "error", cerr)
	}
	if err != nil {
		app.logger.Error(ctx, "server error", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
