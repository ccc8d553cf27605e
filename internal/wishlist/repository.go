package wishlist

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrAlreadyListed   = errors.New("product already in wishlist")
	ErrNotListed       = errors.New("product not in wishlist")
	ErrProductNotFound = errors.New("product not found")
)

// Repository stores which products each user has saved.
type Repository interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	// ProductIDs lists saved product ids, most recently saved first.
	ProductIDs(ctx context.Context, userID string) ([]string, error)
}

type entry struct {
	productID string
	createdAt time.Time
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[string][]entry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{entries: make(map[string][]entry)}
}

func (r *InMemoryRepository) Add(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries[userID] {
		if e.productID == productID {
			return ErrAlreadyListed
		}
	}
	r.entries[userID] = append(r.entries[userID], entry{productID: productID, createdAt: time.Now()})
	return nil
}

func (r *InMemoryRepository) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.entries[userID]
	for i, e := range list {
		if e.productID == productID {
			r.entries[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotListed
}

func (r *InMemoryRepository) ProductIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.entries[userID]
	out := make([]string, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, list[i].productID)
	}
	return out, nil
}
