package auth

import (
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

// Issuer mints credentials for authenticated users.
type Issuer struct {
	secret   []byte
	validity time.Duration
}

func NewIssuer(secret string, validity time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), validity: validity}
}

func (i *Issuer) Issue(user *models.User) (string, error) {
	return GenerateToken(user, i.secret, i.validity)
}
