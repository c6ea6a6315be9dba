// Package seed fills an empty catalog with a few well-known authors and
// books so a fresh instance has something to show.
package seed

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/authors"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/books"
)

type Store interface {
	Authors() authors.Repository
	Books() books.Repository
}

type sampleAuthor struct {
	name  string
	age   int32
	books []sampleBook
}

type sampleBook struct {
	name  string
	genre string
}

var catalog = []sampleAuthor{
	{name: "Patrick Rothfuss", age: 44, books: []sampleBook{
		{"Name of the Wind", "Fantasy"},
	}},
	{name: "Brandon Sanderson", age: 42, books: []sampleBook{
		{"The Final Empire", "Fantasy"},
		{"The Hero of Ages", "Fantasy"},
	}},
	{name: "Terry Pratchett", age: 66, books: []sampleBook{
		{"The Long Earth", "Sci-Fi"},
		{"The Colour of Magic", "Fantasy"},
		{"The Light Fantastic", "Fantasy"},
	}},
}

// Run inserts the sample catalog unless some author already exists. It
// reports whether anything was written.
func Run(ctx context.Context, store Store, logger logging.Logger) (bool, error) {
	existing, err := store.Authors().Find(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("seed: list authors: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug(ctx, "catalog not empty, skipping seed", "authors", len(existing))
		return false, nil
	}

	var nBooks int
	for _, sa := range catalog {
		a, err := store.Authors().Create(ctx, &models.Author{Name: sa.name, Age: sa.age})
		if err != nil {
			return false, fmt.Errorf("seed: create author %q: %w", sa.name, err)
		}
		for _, sb := range sa.books {
			if _, err := store.Books().Create(ctx, &models.Book{Name: sb.name, Genre: sb.genre, AuthorID: a.ID}); err != nil {
				return false, fmt.Errorf("seed: create book %q: %w", sb.name, err)
			}
			nBooks++
		}
	}

	logger.Info(ctx, "catalog seeded", "authors", len(catalog), "books", nBooks)
	return true, nil
}
