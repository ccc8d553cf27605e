package review

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("review not found")

type Repository interface {
	Create(ctx context.Context, r Review) (Review, error)
	// ListApproved returns up to limit approved reviews, newest first.
	ListApproved(ctx context.Context, limit int) ([]Review, error)
	Approve(ctx context.Context, id string) (Review, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews map[string]Review
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{reviews: make(map[string]Review)}
}

func (r *InMemoryRepository) Create(_ context.Context, rv Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[rv.ID] = rv
	return rv, nil
}

func (r *InMemoryRepository) ListApproved(_ context.Context, limit int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, 0, len(r.reviews))
	for _, rv := range r.reviews {
		if rv.Approved {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Approve(_ context.Context, id string) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	rv.Approved = true
	r.reviews[id] = rv
	return rv, nil
}
