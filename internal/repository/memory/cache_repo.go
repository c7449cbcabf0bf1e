package memory

import (
	"context"
	"sync"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/google/uuid"
)

type CacheRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]usecase.ItemView
}

func NewCacheRepo() *CacheRepo {
	return &CacheRepo{items: make(map[uuid.UUID]usecase.ItemView)}
}

func (r *CacheRepo) GetItems(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]usecase.ItemView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[uuid.UUID]usecase.ItemView, len(ids))
	for _, id := range ids {
		if v, ok := r.items[id]; ok {
			result[id] = v
		}
	}
	return result, nil
}

func (r *CacheRepo) SetItems(_ context.Context, items []usecase.ItemView) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range items {
		r.items[v.ID] = v
	}
	return nil
}

func (r *CacheRepo) DeleteItems(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.items, id)
	}
	return nil
}

func (r *CacheRepo) Has(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok
}
