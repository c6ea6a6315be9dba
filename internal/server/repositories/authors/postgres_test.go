package authors

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+authors\s*\(name,\s*age\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id\s*$`
	mock.ExpectQuery(q).
		WithArgs("Brandon Sanderson", int32(48)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a-1"))

	got, err := repo.Create(context.Background(), &models.Author{Name: "Brandon Sanderson", Age: 48})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "a-1" || got.Name != "Brandon Sanderson" {
		t.Fatalf("unexpected author: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestFindByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.QuoteMeta(selectAuthors + " WHERE id = $1")
	mock.ExpectQuery(q).WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow("a-1", "Philip Roth", int32(85)))

	got, err := repo.FindByID(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Name != "Philip Roth" || got.Age != 85 {
		t.Fatalf("unexpected author: %+v", got)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectAuthors + " WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFind_ByNameContains(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.QuoteMeta(selectAuthors + " WHERE name ILIKE $1 ORDER BY created_at ASC")
	mock.ExpectQuery(q).
		WithArgs("%roth%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).
			AddRow("a-1", "Philip Roth", int32(85)).
			AddRow("a-2", "Veronica Roth", int32(36)))

	got, err := repo.Find(context.Background(), filter.Contains(filter.FieldName, "roth"))
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if len(got) != 2 || got[1].ID != "a-2" {
		t.Fatalf("unexpected authors: %+v", got)
	}
}

func TestFind_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT`).WillReturnError(errors.New("db err"))

	_, err := repo.Find(context.Background(), nil)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
