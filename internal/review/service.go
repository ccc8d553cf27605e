package review

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wichananm65/mitrro-backend/internal/validate"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores a new review awaiting moderation.
func (s *Service) Submit(ctx context.Context, rv Review) (Review, error) {
	rv.CustomerName = strings.TrimSpace(rv.CustomerName)
	rv.Comment = strings.TrimSpace(rv.Comment)
	if err := validate.Struct(rv); err != nil {
		return Review{}, err
	}
	rv.ID = uuid.NewString()
	rv.Approved = false
	rv.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, rv)
}

func (s *Service) ListApproved(ctx context.Context, limit int) ([]Review, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return s.repo.ListApproved(ctx, limit)
}

func (s *Service) Approve(ctx context.Context, id string) (Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Review{}, ErrNotFound
	}
	return s.repo.Approve(ctx, id)
}
