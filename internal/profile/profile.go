package profile

import "time"

// Profile holds contact details a signed-in customer keeps between orders.
// Identity itself lives with the token issuer; UserID is the token subject.
type Profile struct {
	UserID          string    `json:"userId"`
	FullName        string    `json:"fullName"`
	Phone           *string   `json:"phone,omitempty"`
	ShippingAddress *string   `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Update is the editable part of a profile.
type Update struct {
	FullName        string `json:"fullName" validate:"required,min=2,max=100"`
	Phone           string `json:"phone" validate:"omitempty,min=10,max=15"`
	ShippingAddress string `json:"shippingAddress" validate:"omitempty,max=500"`
}
