package wishlist

import (
	"context"
	"errors"

	"github.com/wichananm65/mitrro-backend/internal/product"
)

// Catalog resolves saved ids to products.
type Catalog interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]product.Product, error)
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) Add(ctx context.Context, userID, productID string) error {
	if _, err := s.catalog.GetByID(ctx, productID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	return s.repo.Remove(ctx, userID, productID)
}

// Products returns the saved products; ids whose product is gone are skipped.
func (s *Service) Products(ctx context.Context, userID string) ([]product.Product, error) {
	ids, err := s.repo.ProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.catalog.ListByIDs(ctx, ids)
}
