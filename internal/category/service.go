package category

import "context"

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to limit categories; out-of-range limits fall back to the default.
func (s *Service) List(ctx context.Context, limit int) ([]Category, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return s.repo.List(ctx, limit)
}
