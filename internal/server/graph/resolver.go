// Package graph resolves the bookshelf query graph. Every (type, field) pair
// has one typed function on Resolver; the Dispatcher routes named operations
// to them and applies argument and role checks declared per operation.
package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/authors"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
)

// SortOldest is the only sortBy value that changes the default newest-first
// order of Query.books.
const SortOldest = "oldest"

type Store interface {
	Users() users.Repository
	Authors() authors.Repository
	Books() books.Repository
}

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// CoverStorage signs cover URLs. A nil CoverStorage leaves covers untouched.
type CoverStorage interface {
	Resolve(ctx context.Context, cover string) (string, error)
	PresignPut(ctx context.Context) (key, url string, err error)
}

// CoverUpload is where a client should PUT a new cover image, and the key
// to store on the book afterwards.
type CoverUpload struct {
	Key string
	URL string
}

type BooksQuery struct {
	Search     string
	SortBy     string
	IsFavorite *bool
}

type Registration struct {
	UserName string
	Email    string
	Password string
	Role     string
}

type Resolver struct {
	store  Store
	issuer TokenIssuer
	covers CoverStorage
	logger logging.Logger
}

func NewResolver(store Store, issuer TokenIssuer, covers CoverStorage, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Resolver{store: store, issuer: issuer, covers: covers, logger: logger}
}

// BookAuthor follows the weak author reference; a dangling one yields nil.
func (r *Resolver) BookAuthor(ctx context.Context, book *models.Book) (*models.Author, error) {
	a, err := r.store.Authors().FindByID(ctx, book.AuthorID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return a, err
}

func (r *Resolver) BookCover(ctx context.Context, book *models.Book) (string, error) {
	if r.covers == nil {
		return book.Cover, nil
	}
	return r.covers.Resolve(ctx, book.Cover)
}

func (r *Resolver) AuthorBooks(ctx context.Context, author *models.Author) ([]*models.Book, error) {
	return r.store.Books().Find(ctx, filter.Eq(filter.FieldAuthorID, author.ID), filter.Oldest)
}

// Books lists books. A search matches the book name or the name of its
// author; isFavorite narrows the result further.
func (r *Resolver) Books(ctx context.Context, q BooksQuery) ([]*models.Book, error) {
	var match filter.Filter

	if q.Search != "" {
		found, err := r.store.Authors().Find(ctx, filter.Contains(filter.FieldName, q.Search))
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(found))
		for _, a := range found {
			ids = append(ids, a.ID)
		}
		match = filter.Or(
			filter.Contains(filter.FieldName, q.Search),
			filter.In(filter.FieldAuthorID, ids),
		)
	}

	if q.IsFavorite != nil {
		match = filter.And(match, filter.Eq(filter.FieldIsFavorite, *q.IsFavorite))
	}

	order := filter.Newest
	if q.SortBy == SortOldest {
		order = filter.Oldest
	}

	return r.store.Books().Find(ctx, match, order)
}

func (r *Resolver) Book(ctx context.Context, id string) (*models.Book, error) {
	return absentIfNotFound(r.store.Books().FindByID(ctx, id))
}

func (r *Resolver) Author(ctx context.Context, id string) (*models.Author, error) {
	return absentIfNotFound(r.store.Authors().FindByID(ctx, id))
}

func (r *Resolver) Authors(ctx context.Context) ([]*models.Author, error) {
	return r.store.Authors().Find(ctx, nil)
}

func (r *Resolver) Users(ctx context.Context) ([]*models.User, error) {
	return r.store.Users().Find(ctx, nil, filter.Oldest)
}

func (r *Resolver) User(ctx context.Context, id string) (*models.User, error) {
	return absentIfNotFound(r.store.Users().FindByID(ctx, id))
}

func (r *Resolver) RegisterUser(ctx context.Context, in Registration) (*models.User, error) {
	user := &models.User{
		UserName: models.NormalizeUserName(in.UserName),
		Email:    models.NormalizeEmail(in.Email),
	}
	if user.UserName == "" {
		return nil, validationf("username must not be empty")
	}
	if user.Email == "" {
		return nil, validationf("email must not be empty")
	}
	if len(in.Password) < models.MinPasswordLength {
		return nil, validationf("password must be at least %d characters", models.MinPasswordLength)
	}
	if len(in.Password) > models.MaxPasswordLength {
		return nil, validationf("password must be at most %d bytes", models.MaxPasswordLength)
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, validationf("invalid role %q", in.Role)
	}
	user.Role = role

	_, err := r.store.Users().FindOne(ctx, filter.Eq(filter.FieldEmail, user.Email))
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash

	created, err := r.store.Users().Create(ctx, user)
	if err != nil {
		return nil, err
	}
	r.logger.Info(ctx, "user registered", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// LoginUser reports common.ErrorInvalidCredentials for an unknown email and
// for a wrong password alike.
func (r *Resolver) LoginUser(ctx context.Context, email, password string) (string, error) {
	user, err := r.store.Users().FindOne(ctx, filter.Eq(filter.FieldEmail, models.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", err
	}

	if err := auth.ComparePassword(user.Password, password); err != nil {
		return "", err
	}

	token, err := r.issuer.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (r *Resolver) AddAuthor(ctx context.Context, name string, age int32) (*models.Author, error) {
	return r.store.Authors().Create(ctx, &models.Author{Name: name, Age: age})
}

func (r *Resolver) AddBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	return r.store.Books().Create(ctx, book)
}

// UpdateBook returns nil when the book does not exist.
func (r *Resolver) UpdateBook(ctx context.Context, id string, patch models.BookPatch) (*models.Book, error) {
	return absentIfNotFound(r.store.Books().UpdateByID(ctx, id, patch))
}

// DeleteBook returns the removed book, or nil when there was none.
func (r *Resolver) DeleteBook(ctx context.Context, id string) (*models.Book, error) {
	return absentIfNotFound(r.store.Books().DeleteByID(ctx, id))
}

// ToggleFavorite fails with common.ErrorNotFound for an unknown book.
func (r *Resolver) ToggleFavorite(ctx context.Context, bookID string, isFavorite bool) (*models.Book, error) {
	return r.store.Books().UpdateByID(ctx, bookID, models.BookPatch{IsFavorite: &isFavorite})
}

func (r *Resolver) RequestCoverUpload(ctx context.Context) (*CoverUpload, error) {
	if r.covers == nil {
		return nil, errors.New("cover storage is not configured")
	}
	key, url, err := r.covers.PresignPut(ctx)
	if err != nil {
		return nil, fmt.Errorf("presign cover upload: %w", err)
	}
	return &CoverUpload{Key: key, URL: url}, nil
}

func absentIfNotFound[T any](v *T, err error) (*T, error) {
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
