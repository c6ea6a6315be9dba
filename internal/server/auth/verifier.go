package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

// Verifier turns an Authorization header into an identity. It never fails a
// request: any problem with the credential just means "anonymous".
type Verifier struct {
	secret []byte
	logger logging.Logger
}

func NewVerifier(secret string, logger logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Verifier{secret: []byte(secret), logger: logger}
}

// Verify returns nil when header is missing, lacks the bearer prefix, or
// carries a token that does not verify.
func (v *Verifier) Verify(ctx context.Context, header string) *models.Identity {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return nil
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
	if token == "" {
		return nil
	}

	claims, err := ParseToken(token, v.secret)
	if err != nil {
		v.logger.Warn(ctx, "token verification failed", "error", err)
		return nil
	}

	role, ok := models.ParseRole(string(claims.Role))
	if !ok || claims.Role == "" {
		v.logger.Warn(ctx, "token carries unknown role", "role", claims.Role, "user_id", claims.UserID)
		return nil
	}

	return &models.Identity{UserID: claims.UserID, Email: claims.Email, Role: role}
}
