package product

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	List(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	// ListByIDs returns the products whose id is in ids, ordered like ids.
	// Unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	SetStock(ctx context.Context, id string, quantity int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// local runs without Postgres.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make(map[string]Product, len(seed))}
	for _, p := range seed {
		r.storage[p.ID] = p
	}
	return r
}

func (r *InMemoryRepository) List(_ context.Context, category string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if category != "" && (p.Category == nil || *p.Category != category) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.storage[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *InMemoryRepository) ListByIDs(_ context.Context, ids []string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.storage[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[p.ID] = p
	return p, nil
}

func (r *InMemoryRepository) SetStock(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.storage[id]
	if !ok {
		return ErrNotFound
	}
	p.Quantity = quantity
	r.storage[id] = p
	return nil
}
