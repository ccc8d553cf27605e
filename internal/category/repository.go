package category

import (
	"context"
	"sort"
	"sync"
)

// Repository provides access to category rows.
type Repository interface {
	List(ctx context.Context, limit int) ([]Category, error)
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	items := make([]Category, len(seed))
	copy(items, seed)
	return &InMemoryRepository{items: items}
}

func (r *InMemoryRepository) List(_ context.Context, limit int) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.items))
	copy(out, r.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position == out[j].Position {
			return out[i].ID < out[j].ID
		}
		return out[i].Position < out[j].Position
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
