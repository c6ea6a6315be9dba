package authors

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/filter"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.Author
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Author)}
}

func (r *MemoryRepository) Create(_ context.Context, author *models.Author) (*models.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	author.ID = uuid.NewString()
	r.byID[author.ID] = *author
	r.order = append(r.order, author.ID)

	return author, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Find(_ context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Author, 0)
	for _, id := range r.order {
		a := r.byID[id]
		if filter.Match(f, authorDoc{&a}) {
			result = append(result, &a)
		}
	}

	if len(sorts) > 0 {
		sort.SliceStable(result, func(i, j int) bool {
			a, b := authorDoc{result[i]}, authorDoc{result[j]}
			for _, s := range sorts {
				if filter.Less(s, a, b) {
					return true
				}
				if filter.Less(s, b, a) {
					return false
				}
			}
			return false
		})
	}

	return result, nil
}

type authorDoc struct {
	a *models.Author
}

func (d authorDoc) Field(name string) (any, bool) {
	switch name {
	case filter.FieldID:
		return d.a.ID, true
	case filter.FieldName:
		return d.a.Name, true
	case filter.FieldAge:
		return d.a.Age, true
	}
	return nil, false
}
