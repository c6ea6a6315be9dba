package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
)

var columns = filter.Columns{
	filter.FieldID:         "id",
	filter.FieldName:       "name",
	filter.FieldGenre:      "genre",
	filter.FieldAuthorID:   "author_id",
	filter.FieldIsFavorite: "is_favorite",
	filter.FieldCreatedAt:  "created_at",
	filter.FieldUpdatedAt:  "updated_at",
}

const (
	bookColumns = `id, name, genre, author_id, cover, url, is_favorite, created_at, updated_at`
	selectBooks = `SELECT ` + bookColumns + ` FROM books`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (*models.Book, error) {
	b := &models.Book{}
	err := s.Scan(&b.ID, &b.Name, &b.Genre, &b.AuthorID, &b.Cover, &b.URL, &b.IsFavorite, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {

	query :=
		`INSERT INTO books (name, genre, author_id, cover, url, is_favorite)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		book.Name, book.Genre, book.AuthorID, book.Cover, book.URL, book.IsFavorite).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, selectBooks+" WHERE id = $1", id))
	return rowResult(b, err)
}

func (r *PostgresRepository) Find(ctx context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.Book, error) {
	where, args, err := filter.SQL(f, columns, 0)
	if err != nil {
		return nil, err
	}
	order, err := filter.OrderBy(columns, sorts...)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, selectBooks+" WHERE "+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, patch models.BookPatch) (*models.Book, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	set, args := sqlPatchSet(patch)
	args = append(args, id)
	query := fmt.Sprintf("UPDATE books SET %s, updated_at = now() WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), bookColumns)

	b, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	return rowResult(b, err)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) (*models.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, "DELETE FROM books WHERE id = $1 RETURNING "+bookColumns, id))
	return rowResult(b, err)
}

// sqlPatchSet lists the assignments for the fields present in patch, numbered
// from $1 in column order.
func sqlPatchSet(patch models.BookPatch) ([]string, []any) {
	var (
		set  []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Genre != nil {
		add("genre", *patch.Genre)
	}
	if patch.AuthorID != nil {
		add("author_id", *patch.AuthorID)
	}
	if patch.Cover != nil {
		add("cover", *patch.Cover)
	}
	if patch.URL != nil {
		add("url", *patch.URL)
	}
	if patch.IsFavorite != nil {
		add("is_favorite", *patch.IsFavorite)
	}
	return set, args
}

func rowResult(b *models.Book, err error) (*models.Book, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}
