package books

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

// MemoryRepository keeps books in a map. Creation times are strictly
// increasing so that sorting by createdAt is deterministic.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.Book
	clock timex.Clock
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID: make(map[string]models.Book),
	}
}

func (r *MemoryRepository) Create(_ context.Context, book *models.Book) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Next()
	book.ID = uuid.NewString()
	book.CreatedAt = now
	book.UpdatedAt = now
	r.byID[book.ID] = *book

	return book, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &b, nil
}

func (r *MemoryRepository) Find(_ context.Context, f filter.Filter, sorts ...filter.Sort) ([]*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Book, 0)
	for _, b := range r.byID {
		if filter.Match(f, bookDoc{&b}) {
			b := b
			result = append(result, &b)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := bookDoc{result[i]}, bookDoc{result[j]}
		for _, s := range sorts {
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

func (r *MemoryRepository) UpdateByID(_ context.Context, id string, patch models.BookPatch) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !patch.IsEmpty() {
		patch.Apply(&b)
		b.UpdatedAt = r.clock.Next()
		r.byID[id] = b
	}
	return &b, nil
}

func (r *MemoryRepository) DeleteByID(_ context.Context, id string) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.byID, id)
	return &b, nil
}

type bookDoc struct {
	b *models.Book
}

func (d bookDoc) Field(name string) (any, bool) {
	switch name {
	case filter.FieldID:
		return d.b.ID, true
	case filter.FieldName:
		return d.b.Name, true
	case filter.FieldGenre:
		return d.b.Genre, true
	case filter.FieldAuthorID:
		return d.b.AuthorID, true
	case filter.FieldIsFavorite:
		return d.b.IsFavorite, true
	case filter.FieldCreatedAt:
		return d.b.CreatedAt, true
	case filter.FieldUpdatedAt:
		return d.b.UpdatedAt, true
	}
	return nil, false
}
