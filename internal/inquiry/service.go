package inquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wichananm65/mitrro-backend/internal/validate"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Submit sanitizes and stores an inquiry. An empty phone is stored as null.
func (s *Service) Submit(ctx context.Context, f Form) (Inquiry, error) {
	f = f.Sanitized()

	var details []string
	if f.BrandName == "" {
		details = append(details, "brandName is required")
	}
	if f.CustomerName == "" {
		details = append(details, "customerName is required")
	}
	if f.CustomerEmail == "" {
		details = append(details, "customerEmail is required")
	} else if !validate.Email(f.CustomerEmail) {
		details = append(details, "customerEmail must be a valid email")
	}
	if f.Message == "" {
		details = append(details, "message is required")
	}
	if len(details) > 0 {
		return Inquiry{}, &validate.Error{Details: details}
	}

	in := Inquiry{
		ID:            uuid.NewString(),
		BrandName:     f.BrandName,
		CustomerName:  f.CustomerName,
		CustomerEmail: f.CustomerEmail,
		Message:       f.Message,
		CreatedAt:     time.Now().UTC(),
	}
	if f.CustomerPhone != "" {
		phone := f.CustomerPhone
		in.CustomerPhone = &phone
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Str("brand", in.BrandName).Msg("failed to store brand inquiry")
		return Inquiry{}, err
	}
	s.logger.Info().Str("inquiry_id", created.ID).Str("brand", created.BrandName).Msg("brand inquiry received")
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Inquiry, error) {
	return s.repo.List(ctx)
}
