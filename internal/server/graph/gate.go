package graph

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

// Require fails with common.ErrorUnauthorized unless the request carries an
// identity holding exactly role.
func Require(ctx context.Context, role models.Role) error {
	id := IdentityFrom(ctx)
	if id == nil || id.Role != role {
		return common.ErrorUnauthorized
	}
	return nil
}
