package users

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
	filter.FieldID:        "id",
	filter.FieldUserName:  "username",
	filter.FieldEmail:     "email",
	filter.FieldRole:      "role",
	filter.FieldCreatedAt: "created_at",
	filter.FieldUpdatedAt: "updated_at",
}

const selectUsers = `SELECT id, username, email, password, role, created_at, updated_at FROM users`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, password, role)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Email, user.Password, string(user.Role)).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.FindOne(ctx, filter.Eq(filter.FieldID, id))
}

func (r *PostgresRepository) FindOne(ctx context.Context, f filter.Filter) (*models.User, error) {
	where, args, err := filter.SQL(f, columns, 0)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	var role string
	err = r.db.QueryRowContext(ctx, selectUsers+" WHERE "+where+" LIMIT 1", args...).
		Scan(&user.ID, &user.UserName, &user.Email, &user.Password, &role, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.Role = models.Role(role)

	return user, nil
}

func (r *PostgresRepository) Find(ctx context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.User, error) {
	where, args, err := filter.SQL(f, columns, 0)
	if err != nil {
		return nil, err
	}
	order, err := filter.OrderBy(columns, sorts...)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, selectUsers+" WHERE "+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		var role string
		if err := rows.Scan(&user.ID, &user.UserName, &user.Email, &user.Password, &role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		user.Role = models.Role(role)
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
