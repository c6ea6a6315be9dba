package graph

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

// Operation and field names as they appear in the schema.
const (
	OpBooks              = "books"
	OpBook               = "book"
	OpAuthor             = "author"
	OpAuthors            = "authors"
	OpUsers              = "users"
	OpUser               = "user"
	OpRegisterUser       = "registerUser"
	OpLoginUser          = "loginUser"
	OpAddAuthor          = "addAuthor"
	OpAddBook            = "addBook"
	OpUpdateBook         = "updateBook"
	OpDeleteBook         = "deleteBook"
	OpToggleFavorite     = "toggleFavorite"
	OpRequestCoverUpload = "requestCoverUpload"

	FieldBookAuthor  = "Book.author"
	FieldBookCover   = "Book.cover"
	FieldAuthorBooks = "Author.books"
)

// operations is the routing table. addAuthor and addBook are deliberately
// left open to anonymous callers while updateBook and deleteBook are not.
func operations(r *Resolver) map[string]Operation {
	return map[string]Operation{
		FieldBookAuthor: {Kind: KindField, Resolve: withBook(r.BookAuthor)},
		FieldBookCover:  {Kind: KindField, Resolve: withBook(r.BookCover)},
		FieldAuthorBooks: {Kind: KindField, Resolve: func(ctx context.Context, parent any, _ Args) (any, error) {
			a, ok := parent.(*models.Author)
			if !ok {
				return nil, fmt.Errorf("unexpected parent %T, want *models.Author", parent)
			}
			return r.AuthorBooks(ctx, a)
		}},

		OpBooks: {Kind: KindQuery, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.Books(ctx, BooksQuery{
				Search:     a.String("search"),
				SortBy:     a.String("sortBy"),
				IsFavorite: a.OptBool("isFavorite"),
			})
		}},
		OpBook: {Kind: KindQuery, Required: []string{"id"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.Book(ctx, a.String("id"))
		}},
		OpAuthor: {Kind: KindQuery, Required: []string{"id"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.Author(ctx, a.String("id"))
		}},
		OpAuthors: {Kind: KindQuery, Resolve: func(ctx context.Context, _ any, _ Args) (any, error) {
			return r.Authors(ctx)
		}},
		OpUsers: {Kind: KindQuery, Role: models.RoleAdmin, Resolve: func(ctx context.Context, _ any, _ Args) (any, error) {
			return r.Users(ctx)
		}},
		OpUser: {Kind: KindQuery, Role: models.RoleAdmin, Required: []string{"id"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.User(ctx, a.String("id"))
		}},

		OpRegisterUser: {Kind: KindMutation, Required: []string{"username", "email", "password"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.RegisterUser(ctx, Registration{
				UserName: a.String("username"),
				Email:    a.String("email"),
				Password: a.String("password"),
				Role:     a.String("role"),
			})
		}},
		OpLoginUser: {Kind: KindMutation, Required: []string{"email", "password"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.LoginUser(ctx, a.String("email"), a.String("password"))
		}},
		OpAddAuthor: {Kind: KindMutation, Required: []string{"name", "age"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.AddAuthor(ctx, a.String("name"), a.Int32("age"))
		}},
		OpAddBook: {Kind: KindMutation, Required: []string{"name", "genre", "authorId"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.AddBook(ctx, &models.Book{
				Name:       a.String("name"),
				Genre:      a.String("genre"),
				AuthorID:   a.String("authorId"),
				Cover:      a.String("cover"),
				URL:        a.String("url"),
				IsFavorite: a.Bool("isFavorite"),
			})
		}},
		OpUpdateBook: {Kind: KindMutation, Role: models.RoleAdmin, Required: []string{"id"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.UpdateBook(ctx, a.String("id"), models.BookPatch{
				Name:       a.OptString("name"),
				Genre:      a.OptString("genre"),
				AuthorID:   a.OptString("authorId"),
				Cover:      a.OptString("cover"),
				URL:        a.OptString("url"),
				IsFavorite: a.OptBool("isFavorite"),
			})
		}},
		OpDeleteBook: {Kind: KindMutation, Role: models.RoleAdmin, Required: []string{"id"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.DeleteBook(ctx, a.String("id"))
		}},
		OpToggleFavorite: {Kind: KindMutation, Required: []string{"bookId", "isFavorite"}, Resolve: func(ctx context.Context, _ any, a Args) (any, error) {
			return r.ToggleFavorite(ctx, a.String("bookId"), a.Bool("isFavorite"))
		}},
		OpRequestCoverUpload: {Kind: KindMutation, Role: models.RoleAdmin, Resolve: func(ctx context.Context, _ any, _ Args) (any, error) {
			return r.RequestCoverUpload(ctx)
		}},
	}
}

func withBook[T any](fn func(context.Context, *models.Book) (T, error)) ResolveFunc {
	return func(ctx context.Context, parent any, _ Args) (any, error) {
		b, ok := parent.(*models.Book)
		if !ok {
			return nil, fmt.Errorf("unexpected parent %T, want *models.Book", parent)
		}
		return fn(ctx, b)
	}
}
