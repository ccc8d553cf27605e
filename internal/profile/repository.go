package profile

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	Get(ctx context.Context, userID string) (Profile, error)
	// Upsert creates the profile or replaces its editable fields.
	Upsert(ctx context.Context, p Profile) (Profile, error)
	// List returns all profiles, newest first.
	List(ctx context.Context) ([]Profile, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{profiles: make(map[string]Profile)}
}

func (r *InMemoryRepository) Get(_ context.Context, userID string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *InMemoryRepository) Upsert(_ context.Context, p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[p.UserID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	r.profiles[p.UserID] = p
	return p, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
