package users

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
)

// Repository is the users collection. Lookups that find nothing return
// common.ErrorNotFound; Create returns common.ErrorAlreadyExists when the
// email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindOne(ctx context.Context, f filter.Filter) (*models.User, error)
	Find(ctx context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.User, error)
}
