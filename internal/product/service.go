package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be >= 0")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category string) ([]Product, error) {
	return s.repo.List(ctx, category)
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	// ids are uuids; anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	return s.repo.ListByIDs(ctx, valid)
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	if p.Quantity < 0 {
		return Product{}, ErrInvalidQuantity
	}
	p.ID = uuid.NewString()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) SetStock(ctx context.Context, id string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.repo.SetStock(ctx, id, quantity)
}

// Stock returns the current catalog quantity for id.
func (s *Service) Stock(ctx context.Context, id string) (int, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Quantity, nil
}

// DecrementStock reads the current quantity and writes back quantity-qty.
// The read and the write are separate statements; two sessions decrementing
// the same product concurrently can both succeed against the same read.
func (s *Service) DecrementStock(ctx context.Context, id string, qty int) (int, error) {
	current, err := s.Stock(ctx, id)
	if err != nil {
		return 0, err
	}
	remaining := current - qty
	if err := s.repo.SetStock(ctx, id, remaining); err != nil {
		return 0, fmt.Errorf("decrement stock for %s: %w", id, err)
	}
	return remaining, nil
}
