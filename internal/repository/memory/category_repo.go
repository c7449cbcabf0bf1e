// Package memory содержит потокобезопасные in-memory реализации репозиториев.
// Уникальность имён проверяется под той же блокировкой, что и запись.
package memory

import (
	"context"
	"sync"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
)

type CategoryRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*domain.Category
}

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{byID: make(map[uuid.UUID]*domain.Category)}
}

func (r *CategoryRepo) FindAll(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Category, 0, len(r.byID))
	for _, c := range r.byID {
		result = append(result, cloneCategory(c))
	}
	return result, nil
}

func (r *CategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, e.Wrap("category "+id.String(), e.ErrNotFound)
	}
	return cloneCategory(c), nil
}

func (r *CategoryRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			result = append(result, cloneCategory(c))
		}
	}
	return result, nil
}

func (r *CategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c := r.byName(name); c != nil {
		return cloneCategory(c), nil
	}
	return nil, e.Wrap("category "+name, e.ErrNotFound)
}

func (r *CategoryRepo) Insert(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byName(category.Name) != nil {
		return e.Wrap("category "+category.Name, e.ErrNameTaken)
	}
	r.byID[category.ID] = cloneCategory(category)
	return nil
}

func (r *CategoryRepo) Replace(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[category.ID]; !ok {
		return e.Wrap("category "+category.ID.String(), e.ErrNotFound)
	}
	if other := r.byName(category.Name); other != nil && other.ID != category.ID {
		return e.Wrap("category "+category.Name, e.ErrNameTaken)
	}
	r.byID[category.ID] = cloneCategory(category)
	return nil
}

func (r *CategoryRepo) Remove(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return e.Wrap("category "+id.String(), e.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

// byName вызывается под блокировкой.
func (r *CategoryRepo) byName(name string) *domain.Category {
	for _, c := range r.byID {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func cloneCategory(c *domain.Category) *domain.Category {
	clone := *c
	clone.Image = cloneImage(c.Image)
	return &clone
}

func cloneImage(img *domain.Image) *domain.Image {
	if img == nil {
		return nil
	}
	clone := *img
	return &clone
}
