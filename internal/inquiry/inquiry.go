package inquiry

import (
	"strings"
	"time"
)

// Field limits, counted in characters.
const (
	maxBrandName = 120
	maxName      = 100
	maxEmail     = 255
	maxPhone     = 30
	maxMessage   = 1000
)

// Inquiry is a brand's request to be stocked in the store.
type Inquiry struct {
	ID            string    `json:"id"`
	BrandName     string    `json:"brandName"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone *string   `json:"customerPhone"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Form is the submitted payload before sanitizing.
type Form struct {
	BrandName     string `json:"brandName"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Message       string `json:"message"`
}

func sanitize(s string, max int) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > max {
		s = strings.TrimSpace(string(r[:max]))
	}
	return s
}

// Sanitized trims and truncates every field.
func (f Form) Sanitized() Form {
	return Form{
		BrandName:     sanitize(f.BrandName, maxBrandName),
		CustomerName:  sanitize(f.CustomerName, maxName),
		CustomerEmail: sanitize(f.CustomerEmail, maxEmail),
		CustomerPhone: sanitize(f.CustomerPhone, maxPhone),
		Message:       sanitize(f.Message, maxMessage),
	}
}
