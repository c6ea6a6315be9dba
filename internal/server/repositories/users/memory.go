package users

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
	"github.com/dmitrijs2005/bookshelf/internal/timex"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in a map. It is meant for tests and local
// runs; the email index mirrors the unique constraint of the real stores.
// Creation times are strictly increasing so createdAt ordering is total.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
	clock   timex.Clock
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, common.ErrorAlreadyExists
	}

	now := r.clock.Next()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) FindOne(ctx context.Context, f filter.Filter) (*models.User, error) {
	found, err := r.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

func (r *MemoryRepository) Find(_ context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0)
	for _, u := range r.byID {
		if filter.Match(f, userDoc{&u}) {
			u := u
			result = append(result, &u)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		for _, s := range sorts {
			a, b := userDoc{result[i]}, userDoc{result[j]}
			if filter.Less(s, a, b) {
				return true
			}
			if filter.Less(s, b, a) {
				return false
			}
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

type userDoc struct {
	u *models.User
}

func (d userDoc) Field(name string) (any, bool) {
	switch name {
	case filter.FieldID:
		return d.u.ID, true
	case filter.FieldUserName:
		return d.u.UserName, true
	case filter.FieldEmail:
		return d.u.Email, true
	case filter.FieldRole:
		return string(d.u.Role), true
	case filter.FieldCreatedAt:
		return d.u.CreatedAt, true
	case filter.FieldUpdatedAt:
		return d.u.UpdatedAt, true
	}
	return nil, false
}
