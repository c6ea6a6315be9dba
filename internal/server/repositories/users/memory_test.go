package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	alice, err := repo.Create(ctx, &models.User{UserName: "alice", Email: "alice@example.com", Password: "h", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &models.User{UserName: "bob", Email: "bob@example.com", Password: "h", Role: models.RoleCandidate})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)

	got, err = repo.FindOne(ctx, filter.Eq(filter.FieldEmail, "bob@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "bob", got.UserName)

	admins, err := repo.Find(ctx, filter.Eq(filter.FieldRole, string(models.RoleAdmin)))
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, alice.ID, admins[0].ID)

	all, err := repo.Find(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, &models.User{Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindOne(ctx, filter.Eq(filter.FieldEmail, "nobody@example.com"))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &models.User{UserName: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	got.UserName = "mallory"

	again, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.UserName)
}

func TestMemoryRepository_SameInstantKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock.Now = func() time.Time { return fixed }

	var ids []string
	for _, name := range []string{"ann", "ben", "cat"} {
		u, err := repo.Create(ctx, &models.User{UserName: name, Email: name + "@example.com", Password: "h", Role: models.RoleCandidate})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	oldest, err := repo.Find(ctx, nil, filter.Oldest)
	require.NoError(t, err)
	require.Len(t, oldest, 3)
	assert.Equal(t, ids, []string{oldest[0].ID, oldest[1].ID, oldest[2].ID})
	assert.True(t, oldest[0].CreatedAt.Before(oldest[1].CreatedAt))

	newest, err := repo.Find(ctx, nil, filter.Newest)
	require.NoError(t, err)
	assert.Equal(t, ids[2], newest[0].ID)
}
