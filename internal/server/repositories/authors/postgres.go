package authors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
)

var columns = filter.Columns{
	filter.FieldID:   "id",
	filter.FieldName: "name",
	filter.FieldAge:  "age",
}

const selectAuthors = `SELECT id, name, age FROM authors`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, author *models.Author) (*models.Author, error) {

	query :=
		`INSERT INTO authors (name, age)
         VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, author.Name, author.Age).Scan(&author.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return author, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Author, error) {
	author := &models.Author{}
	err := r.db.QueryRowContext(ctx, selectAuthors+" WHERE id = $1", id).
		Scan(&author.ID, &author.Name, &author.Age)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return author, nil
}

// Find returns authors in insertion order unless sorts say otherwise.
func (r *PostgresRepository) Find(ctx context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.Author, error) {
	where, args, err := filter.SQL(f, columns, 0)
	if err != nil {
		return nil, err
	}
	order, err := filter.OrderBy(columns, sorts...)
	if err != nil {
		return nil, err
	}
	if order == "" {
		order = " ORDER BY created_at ASC"
	}

	rows, err := r.db.QueryContext(ctx, selectAuthors+" WHERE "+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Author, 0)
	for rows.Next() {
		author := &models.Author{}
		if err := rows.Scan(&author.ID, &author.Name, &author.Age); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
