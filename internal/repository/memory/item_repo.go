package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
)

type ItemRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*domain.Item
}

func NewItemRepo() *ItemRepo {
	return &ItemRepo{byID: make(map[uuid.UUID]*domain.Item)}
}

func (r *ItemRepo) FindAll(_ context.Context) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Item, 0, len(r.byID))
	for _, item := range r.byID {
		result = append(result, cloneItem(item))
	}
	return result, nil
}

func (r *ItemRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok {
		return nil, e.Wrap("item "+id.String(), e.ErrNotFound)
	}
	return cloneItem(item), nil
}

func (r *ItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.byID[id]; ok {
			result = append(result, cloneItem(item))
		}
	}
	return result, nil
}

func (r *ItemRepo) FindByName(_ context.Context, name string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if item := r.byName(name); item != nil {
		return cloneItem(item), nil
	}
	return nil, e.Wrap("item "+name, e.ErrNotFound)
}

func (r *ItemRepo) FindByCategory(_ context.Context, categoryID uuid.UUID) ([]domain.ItemSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.ItemSummary, 0)
	for _, item := range r.byID {
		if item.References(categoryID) {
			result = append(result, item.Summary())
		}
	}
	return result, nil
}

func (r *ItemRepo) Insert(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byName(item.Name) != nil {
		return e.Wrap("item "+item.Name, e.ErrNameTaken)
	}
	r.byID[item.ID] = cloneItem(item)
	return nil
}

func (r *ItemRepo) Replace(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[item.ID]; !ok {
		return e.Wrap("item "+item.ID.String(), e.ErrNotFound)
	}
	if other := r.byName(item.Name); other != nil && other.ID != item.ID {
		return e.Wrap("item "+item.Name, e.ErrNameTaken)
	}
	r.byID[item.ID] = cloneItem(item)
	return nil
}

func (r *ItemRepo) Remove(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return e.Wrap("item "+id.String(), e.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

func (r *ItemRepo) byName(name string) *domain.Item {
	for _, item := range r.byID {
		if item.Name == name {
			return item
		}
	}
	return nil
}

func cloneItem(item *domain.Item) *domain.Item {
	clone := *item
	clone.CategoryIDs = slices.Clone(item.CategoryIDs)
	clone.Image = cloneImage(item.Image)
	return &clone
}
