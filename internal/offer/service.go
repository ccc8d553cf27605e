package offer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultLimit = 12
	maxLimit     = 100
)

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns one page of offers. Bad paging values fall back to the first page.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Offer, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) GetByID(ctx context.Context, id string) (Offer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Offer{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, o Offer) (Offer, error) {
	o.Name = strings.TrimSpace(o.Name)
	if err := o.Validate(); err != nil {
		return Offer{}, err
	}
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, o)
}
