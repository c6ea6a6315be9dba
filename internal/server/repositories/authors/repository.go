package authors

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
)

// Repository is the authors collection. FindByID returns
// common.ErrorNotFound for unknown ids.
type Repository interface {
	Create(ctx context.Context, author *models.Author) (*models.Author, error)
	FindByID(ctx context.Context, id string) (*models.Author, error)
	Find(ctx context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.Author, error)
}
