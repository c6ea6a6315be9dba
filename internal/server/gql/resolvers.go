package gql

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server/graph"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/graph-gophers/graphql-go"
)

type rootResolver struct {
	d *graph.Dispatcher
}

func putOpt[T any](a graph.Args, name string, v *T) {
	if v != nil {
		a[name] = *v
	}
}

// dispatch runs op and converts the result to T. A nil result yields the
// zero T, which is a GraphQL null for pointer and slice types.
func dispatch[T any](ctx context.Context, d *graph.Dispatcher, op string, parent any, args graph.Args) (T, error) {
	var zero T
	res, err := d.Dispatch(ctx, op, parent, args)
	if err != nil || res == nil {
		return zero, err
	}
	v, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected result %T", op, res)
	}
	return v, nil
}

// Queries.

type booksArgs struct {
	Search     *string
	SortBy     *string
	IsFavorite *bool
}

func (r *rootResolver) Books(ctx context.Context, args booksArgs) (*[]*bookResolver, error) {
	a := graph.Args{}
	putOpt(a, "search", args.Search)
	putOpt(a, "sortBy", args.SortBy)
	putOpt(a, "isFavorite", args.IsFavorite)
	books, err := dispatch[[]*models.Book](ctx, r.d, graph.OpBooks, nil, a)
	if err != nil {
		return nil, err
	}
	return r.books(books), nil
}

type idArgs struct {
	ID graphql.ID
}

func (r *rootResolver) Book(ctx context.Context, args idArgs) (*bookResolver, error) {
	b, err := dispatch[*models.Book](ctx, r.d, graph.OpBook, nil, graph.Args{"id": string(args.ID)})
	return r.book(b), err
}

func (r *rootResolver) Author(ctx context.Context, args idArgs) (*authorResolver, error) {
	a, err := dispatch[*models.Author](ctx, r.d, graph.OpAuthor, nil, graph.Args{"id": string(args.ID)})
	return r.author(a), err
}

func (r *rootResolver) Authors(ctx context.Context) (*[]*authorResolver, error) {
	authors, err := dispatch[[]*models.Author](ctx, r.d, graph.OpAuthors, nil, graph.Args{})
	if err != nil {
		return nil, err
	}
	out := make([]*authorResolver, 0, len(authors))
	for _, a := range authors {
		out = append(out, r.author(a))
	}
	return &out, nil
}

func (r *rootResolver) Users(ctx context.Context) (*[]*userResolver, error) {
	users, err := dispatch[[]*models.User](ctx, r.d, graph.OpUsers, nil, graph.Args{})
	if err != nil {
		return nil, err
	}
	out := make([]*userResolver, 0, len(users))
	for _, u := range users {
		out = append(out, &userResolver{u: u})
	}
	return &out, nil
}

func (r *rootResolver) User(ctx context.Context, args idArgs) (*userResolver, error) {
	u, err := dispatch[*models.User](ctx, r.d, graph.OpUser, nil, graph.Args{"id": string(args.ID)})
	if u == nil {
		return nil, err
	}
	return &userResolver{u: u}, nil
}

// Mutations.

type registerUserArgs struct {
	Username string
	Email    string
	Password string
	Role     *string
}

func (r *rootResolver) RegisterUser(ctx context.Context, args registerUserArgs) (*userResolver, error) {
	a := graph.Args{"username": args.Username, "email": args.Email, "password": args.Password}
	putOpt(a, "role", args.Role)
	u, err := dispatch[*models.User](ctx, r.d, graph.OpRegisterUser, nil, a)
	if u == nil {
		return nil, err
	}
	return &userResolver{u: u}, nil
}

type loginUserArgs struct {
	Email    string
	Password string
}

func (r *rootResolver) LoginUser(ctx context.Context, args loginUserArgs) (*string, error) {
	token, err := dispatch[string](ctx, r.d, graph.OpLoginUser, nil, graph.Args{"email": args.Email, "password": args.Password})
	if err != nil {
		return nil, err
	}
	return &token, nil
}

type addAuthorArgs struct {
	Name string
	Age  int32
}

func (r *rootResolver) AddAuthor(ctx context.Context, args addAuthorArgs) (*authorResolver, error) {
	a, err := dispatch[*models.Author](ctx, r.d, graph.OpAddAuthor, nil, graph.Args{"name": args.Name, "age": args.Age})
	return r.author(a), err
}

type addBookArgs struct {
	Name       string
	Genre      string
	AuthorID   graphql.ID
	Cover      *string
	URL        *string
	IsFavorite *bool
}

func (r *rootResolver) AddBook(ctx context.Context, args addBookArgs) (*bookResolver, error) {
	a := graph.Args{"name": args.Name, "genre": args.Genre, "authorId": string(args.AuthorID)}
	putOpt(a, "cover", args.Cover)
	putOpt(a, "url", args.URL)
	putOpt(a, "isFavorite", args.IsFavorite)
	b, err := dispatch[*models.Book](ctx, r.d, graph.OpAddBook, nil, a)
	return r.book(b), err
}

type updateBookArgs struct {
	ID         graphql.ID
	Name       *string
	Genre      *string
	AuthorID   *graphql.ID
	Cover      *string
	URL        *string
	IsFavorite *bool
}

func (r *rootResolver) UpdateBook(ctx context.Context, args updateBookArgs) (*bookResolver, error) {
	a := graph.Args{"id": string(args.ID)}
	putOpt(a, "name", args.Name)
	putOpt(a, "genre", args.Genre)
	if args.AuthorID != nil {
		a["authorId"] = string(*args.AuthorID)
	}
	putOpt(a, "cover", args.Cover)
	putOpt(a, "url", args.URL)
	putOpt(a, "isFavorite", args.IsFavorite)
	b, err := dispatch[*models.Book](ctx, r.d, graph.OpUpdateBook, nil, a)
	return r.book(b), err
}

func (r *rootResolver) DeleteBook(ctx context.Context, args idArgs) (*bookResolver, error) {
	b, err := dispatch[*models.Book](ctx, r.d, graph.OpDeleteBook, nil, graph.Args{"id": string(args.ID)})
	return r.book(b), err
}

type toggleFavoriteArgs struct {
	BookID     graphql.ID
	IsFavorite bool
}

func (r *rootResolver) ToggleFavorite(ctx context.Context, args toggleFavoriteArgs) (*bookResolver, error) {
	b, err := dispatch[*models.Book](ctx, r.d, graph.OpToggleFavorite, nil,
		graph.Args{"bookId": string(args.BookID), "isFavorite": args.IsFavorite})
	return r.book(b), err
}

func (r *rootResolver) RequestCoverUpload(ctx context.Context) (*coverUploadResolver, error) {
	up, err := dispatch[*graph.CoverUpload](ctx, r.d, graph.OpRequestCoverUpload, nil, graph.Args{})
	if up == nil {
		return nil, err
	}
	return &coverUploadResolver{up: up}, nil
}

func (r *rootResolver) book(b *models.Book) *bookResolver {
	if b == nil {
		return nil
	}
	return &bookResolver{d: r.d, b: b}
}

func (r *rootResolver) books(books []*models.Book) *[]*bookResolver {
	out := make([]*bookResolver, 0, len(books))
	for _, b := range books {
		out = append(out, r.book(b))
	}
	return &out
}

func (r *rootResolver) author(a *models.Author) *authorResolver {
	if a == nil {
		return nil
	}
	return &authorResolver{root: r, a: a}
}

// Object types.

type bookResolver struct {
	d *graph.Dispatcher
	b *models.Book
}

func (r *bookResolver) ID() graphql.ID       { return graphql.ID(r.b.ID) }
func (r *bookResolver) Name() string         { return r.b.Name }
func (r *bookResolver) Genre() string        { return r.b.Genre }
func (r *bookResolver) AuthorID() graphql.ID { return graphql.ID(r.b.AuthorID) }
func (r *bookResolver) URL() *string         { return optString(r.b.URL) }
func (r *bookResolver) IsFavorite() bool     { return r.b.IsFavorite }

func (r *bookResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.b.CreatedAt} }
func (r *bookResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.b.UpdatedAt} }

func (r *bookResolver) Author(ctx context.Context) (*authorResolver, error) {
	a, err := dispatch[*models.Author](ctx, r.d, graph.FieldBookAuthor, r.b, nil)
	if a == nil {
		return nil, err
	}
	return &authorResolver{root: &rootResolver{d: r.d}, a: a}, nil
}

func (r *bookResolver) Cover(ctx context.Context) (*string, error) {
	cover, err := dispatch[string](ctx, r.d, graph.FieldBookCover, r.b, nil)
	if err != nil {
		return nil, err
	}
	return optString(cover), nil
}

type authorResolver struct {
	root *rootResolver
	a    *models.Author
}

func (r *authorResolver) ID() graphql.ID { return graphql.ID(r.a.ID) }
func (r *authorResolver) Name() string   { return r.a.Name }
func (r *authorResolver) Age() int32     { return r.a.Age }

func (r *authorResolver) Books(ctx context.Context) (*[]*bookResolver, error) {
	books, err := dispatch[[]*models.Book](ctx, r.root.d, graph.FieldAuthorBooks, r.a, nil)
	if err != nil {
		return nil, err
	}
	return r.root.books(books), nil
}

type userResolver struct {
	u *models.User
}

func (r *userResolver) ID() graphql.ID          { return graphql.ID(r.u.ID) }
func (r *userResolver) Username() string        { return r.u.UserName }
func (r *userResolver) Email() string           { return r.u.Email }
func (r *userResolver) Role() string            { return string(r.u.Role) }
func (r *userResolver) CreatedAt() graphql.Time { return graphql.Time{Time: r.u.CreatedAt} }
func (r *userResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: r.u.UpdatedAt} }

type coverUploadResolver struct {
	up *graph.CoverUpload
}

func (r *coverUploadResolver) Key() string { return r.up.Key }
func (r *coverUploadResolver) URL() string { return r.up.URL }

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
