package review

import "time"

// Review is a customer testimonial. Only approved reviews are shown publicly.
type Review struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName" validate:"required,max=100"`
	Rating       int       `json:"rating" validate:"gte=1,lte=5"`
	Comment      string    `json:"comment" validate:"required,max=2000"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"createdAt"`
}
