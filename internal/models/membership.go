package models

import "time"

// Membership represents a subscription plan sold by the gym. The type label
// drives expiration computation and is compared case-insensitively.
type Membership struct {
	ID        string    `db:"id" json:"id"`
	Type      string    `db:"type" json:"type"`
	Price     float64   `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
