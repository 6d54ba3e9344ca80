package model

import "time"

// Client is a directory entry for a customer. Validation tags are enforced
// by the storage layer before any write.
type Client struct {
	CreatedAt  time.Time `json:"createdAt"`
	ID         string    `json:"id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	SpouseName string    `json:"spouseName,omitempty"`
	Email      string    `json:"email" validate:"omitempty,email"`
	Phone      string    `json:"phone" validate:"required"`
	Address    string    `json:"address"`
}
