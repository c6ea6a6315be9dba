package server

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.DatabaseDSN = "memory://"
	c.SecretKey = "k"
	return c
}

func TestNewApp_RequiresSecret(t *testing.T) {
	c := testConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c)
	assert.ErrorIs(t, err, config.ErrMissingSecret)
}

func TestNewApp_BadDSN(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "oracle://db"

	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "db init error")
}

func TestNewApp_MigrationError(t *testing.T) {
	orig := newRepositoryManager
	t.Cleanup(func() { newRepositoryManager = orig })
	newRepositoryManager = func(context.Context, string) (repomanager.RepositoryManager, error) {
		return failingMigrations{repomanager.NewMemoryRepositoryManager()}, nil
	}

	_, err := NewApp(context.Background(), testConfig())
	assert.ErrorContains(t, err, "migrations error")
}

type failingMigrations struct {
	*repomanager.MemoryRepositoryManager
}

func (failingMigrations) RunMigrations(context.Context) error { return errors.New("boom") }

func TestNewApp_SeedsAndRuns(t *testing.T) {
	c := testConfig()
	c.Seed = true

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	authors, err := app.store.Authors().Find(context.Background(), filter.Contains(filter.FieldName, "pratchett"))
	require.NoError(t, err)
	assert.Len(t, authors, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

type closeRecorder struct {
	*repomanager.MemoryRepositoryManager
	closed chan struct{}
}

func (c closeRecorder) Close(context.Context) error {
	close(c.closed)
	return nil
}

func newRecordedApp(t *testing.T, c *config.Config) (*App, chan struct{}) {
	t.Helper()
	closed := make(chan struct{})
	orig := newRepositoryManager
	t.Cleanup(func() { newRepositoryManager = orig })
	newRepositoryManager = func(context.Context, string) (repomanager.RepositoryManager, error) {
		return closeRecorder{repomanager.NewMemoryRepositoryManager(), closed}, nil
	}

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	return app, closed
}

func TestRun_StopSignalShutsDownServer(t *testing.T) {
	orig := notifySignals
	t.Cleanup(func() { notifySignals = orig })
	notifySignals = func(c chan<- os.Signal, _ ...os.Signal) {
		go func() {
			time.Sleep(50 * time.Millisecond)
			c <- syscall.SIGTERM
		}()
	}

	app, closed := newRecordedApp(t, testConfig())

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop on signal")
	}
	<-closed
}

func TestRun_ServerFailureStopsSignalWait(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	c := testConfig()
	c.EndpointAddrHTTP = busy.Addr().String()
	app, closed := newRecordedApp(t, c)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app kept waiting for a signal after the server failed")
	}
	<-closed
}
