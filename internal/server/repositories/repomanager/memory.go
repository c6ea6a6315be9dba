package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/authors"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory; data is lost
// on restart.
type MemoryRepositoryManager struct {
	users   *users.MemoryRepository
	authors *authors.MemoryRepository
	books   *books.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryRepository(),
		authors: authors.NewMemoryRepository(),
		books:   books.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Ping(context.Context) error          { return nil }
func (m *MemoryRepositoryManager) Close(context.Context) error         { return nil }

func (m *MemoryRepositoryManager) Users() users.Repository     { return m.users }
func (m *MemoryRepositoryManager) Authors() authors.Repository { return m.authors }
func (m *MemoryRepositoryManager) Books() books.Repository     { return m.books }
