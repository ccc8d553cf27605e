package inquiry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/mitrro-backend/internal/validate"
)

func TestSubmit_SanitizesFields(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, zerolog.Nop())

	in, err := svc.Submit(context.Background(), Form{
		BrandName:     "  " + strings.Repeat("b", 130),
		CustomerName:  " Kiran ",
		CustomerEmail: "kiran@herbalife.example ",
		CustomerPhone: "   ",
		Message:       strings.Repeat("m", 1200),
	})
	require.NoError(t, err)
	assert.Len(t, in.BrandName, 120)
	assert.Equal(t, "Kiran", in.CustomerName)
	assert.Equal(t, "kiran@herbalife.example", in.CustomerEmail)
	assert.Nil(t, in.CustomerPhone, "blank phone is stored as null")
	assert.Len(t, in.Message, 1000)
	assert.NotEmpty(t, in.ID)

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestSubmit_KeepsPhone(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), zerolog.Nop())
	in, err := svc.Submit(context.Background(), Form{
		BrandName: "Dabur", CustomerName: "Neha", CustomerEmail: "neha@dabur.example",
		CustomerPhone: " +91 98765 43210 ", Message: "We would like to list our range.",
	})
	require.NoError(t, err)
	require.NotNil(t, in.CustomerPhone)
	assert.Equal(t, "+91 98765 43210", *in.CustomerPhone)
}

func TestSubmit_Rejects(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), zerolog.Nop())

	_, err := svc.Submit(context.Background(), Form{CustomerEmail: "not-an-email"})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{
		"brandName is required",
		"customerName is required",
		"customerEmail must be a valid email",
		"message is required",
	}, verr.Details)
}
