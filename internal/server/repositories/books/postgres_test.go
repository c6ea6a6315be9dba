package books

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

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

var bookRowColumns = []string{"id", "name", "genre", "author_id", "cover", "url", "is_favorite", "created_at", "updated_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+books\s*\(name,\s*genre,\s*author_id,\s*cover,\s*url,\s*is_favorite\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("American Pastoral", "Novel", "a-1", "", "", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("b-1", now, now))

	got, err := repo.Create(context.Background(), &models.Book{Name: "American Pastoral", Genre: "Novel", AuthorID: "a-1"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "b-1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected book: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestFind_SearchAndSort(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.QuoteMeta(selectBooks +
		" WHERE ((name ILIKE $1 OR author_id IN ($2, $3)) AND is_favorite = $4) ORDER BY created_at DESC")
	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("%roth%", "a-1", "a-2", true).
		WillReturnRows(sqlmock.NewRows(bookRowColumns).
			AddRow("b-2", "Divergent", "Dystopia", "a-2", "", "", true, now, now).
			AddRow("b-1", "American Pastoral", "Novel", "a-1", "", "", true, now, now))

	f := filter.And(
		filter.Or(filter.Contains(filter.FieldName, "roth"), filter.In(filter.FieldAuthorID, []string{"a-1", "a-2"})),
		filter.Eq(filter.FieldIsFavorite, true),
	)
	got, err := repo.Find(context.Background(), f, filter.Newest)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b-2" || !got[0].IsFavorite {
		t.Fatalf("unexpected books: %+v", got)
	}
}

func TestFind_UnknownSortField(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.Find(context.Background(), nil, filter.Sort{Field: "cover"})
	if err == nil {
		t.Fatal("expected error for unknown sort field")
	}
}

func TestUpdateByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.QuoteMeta("UPDATE books SET name = $1, is_favorite = $2, updated_at = now() WHERE id = $3 RETURNING " + bookColumns)
	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("Sabbath's Theater", true, "b-1").
		WillReturnRows(sqlmock.NewRows(bookRowColumns).
			AddRow("b-1", "Sabbath's Theater", "Novel", "a-1", "", "", true, now, now))

	name := "Sabbath's Theater"
	fav := true
	got, err := repo.UpdateByID(context.Background(), "b-1", models.BookPatch{Name: &name, IsFavorite: &fav})
	if err != nil {
		t.Fatalf("UpdateByID error: %v", err)
	}
	if got.Name != name || !got.IsFavorite {
		t.Fatalf("unexpected book: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestUpdateByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+books`).WillReturnError(sql.ErrNoRows)

	fav := false
	_, err := repo.UpdateByID(context.Background(), "missing", models.BookPatch{IsFavorite: &fav})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateByID_EmptyPatchReads(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectBooks + " WHERE id = $1")).
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows(bookRowColumns).
			AddRow("b-1", "American Pastoral", "Novel", "a-1", "", "", false, now, now))

	got, err := repo.UpdateByID(context.Background(), "b-1", models.BookPatch{})
	if err != nil {
		t.Fatalf("UpdateByID error: %v", err)
	}
	if got.ID != "b-1" {
		t.Fatalf("unexpected book: %+v", got)
	}
}

func TestDeleteByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.QuoteMeta("DELETE FROM books WHERE id = $1 RETURNING " + bookColumns)
	now := time.Now()
	mock.ExpectQuery(q).WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows(bookRowColumns).
			AddRow("b-1", "American Pastoral", "Novel", "a-1", "", "", false, now, now))
	mock.ExpectQuery(q).WithArgs("b-1").WillReturnError(sql.ErrNoRows)

	got, err := repo.DeleteByID(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
	if got.Name != "American Pastoral" {
		t.Fatalf("unexpected book: %+v", got)
	}

	_, err = repo.DeleteByID(context.Background(), "b-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT`).WillReturnError(errors.New("conn reset"))

	_, err := repo.FindByID(context.Background(), "b-1")
	if err == nil || !regexp.MustCompile(`db error: .*conn reset`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
