// Package repomanager opens the catalog store named by a DSN and vends its
// repositories.
package repomanager

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/authors"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations prepares the schema (tables, indexes) of the store.
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Users() users.Repository
	Authors() authors.Repository
	Books() books.Repository
	Close(ctx context.Context) error
}

// New picks the backend from the DSN scheme: memory://, postgres:// or
// postgresql://, mongodb:// or mongodb+srv://.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database dsn: %w", err)
	}

	switch u.Scheme {
	case "memory":
		return NewMemoryRepositoryManager(), nil
	case "postgres", "postgresql":
		m, err := NewPostgresRepositoryManager(dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "mongodb", "mongodb+srv":
		m, err := NewMongoRepositoryManager(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}
