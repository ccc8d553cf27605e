package offer

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("offer not found")

type Repository interface {
	// List pages through offers, newest first.
	List(ctx context.Context, limit, offset int) ([]Offer, error)
	GetByID(ctx context.Context, id string) (Offer, error)
	Create(ctx context.Context, o Offer) (Offer, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	offers []Offer
}

func NewInMemoryRepository(seed []Offer) *InMemoryRepository {
	return &InMemoryRepository{offers: append([]Offer(nil), seed...)}
}

func (r *InMemoryRepository) List(_ context.Context, limit, offset int) ([]Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sorted := append([]Offer(nil), r.offers...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if offset >= len(sorted) {
		return []Offer{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return Offer{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, o Offer) (Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers = append(r.offers, o)
	return o, nil
}
