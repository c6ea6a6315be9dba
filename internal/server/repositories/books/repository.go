package books

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
)

// Repository is the books collection. FindByID, UpdateByID and DeleteByID
// return common.ErrorNotFound when no book has the given id.
type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	Find(ctx context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.Book, error)
	// UpdateByID applies patch and returns the book as stored afterwards.
	UpdateByID(ctx context.Context, id string, patch models.BookPatch) (*models.Book, error)
	// DeleteByID returns the removed book.
	DeleteByID(ctx context.Context, id string) (*models.Book, error)
}
