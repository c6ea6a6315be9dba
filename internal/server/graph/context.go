package graph

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

type identityKey struct{}

// WithIdentity attaches the caller of the current request. A nil identity
// marks the request as anonymous.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey{}).(*models.Identity)
	return id
}
