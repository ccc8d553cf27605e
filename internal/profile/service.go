package profile

import (
	"context"
	"strings"
	"time"

	"github.com/wichananm65/mitrro-backend/internal/validate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return s.repo.Get(ctx, userID)
}

// Save validates u and writes it as userID's profile. Blank optional fields are cleared.
func (s *Service) Save(ctx context.Context, userID string, u Update) (Profile, error) {
	u.FullName = strings.TrimSpace(u.FullName)
	u.Phone = strings.TrimSpace(u.Phone)
	u.ShippingAddress = strings.TrimSpace(u.ShippingAddress)
	if err := validate.Struct(u); err != nil {
		return Profile{}, err
	}

	now := time.Now().UTC()
	p := Profile{UserID: userID, FullName: u.FullName, CreatedAt: now, UpdatedAt: now}
	if u.Phone != "" {
		p.Phone = &u.Phone
	}
	if u.ShippingAddress != "" {
		p.ShippingAddress = &u.ShippingAddress
	}
	return s.repo.Upsert(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}
