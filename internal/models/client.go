package models

import "time"

// Client represents a gym member. Every client references exactly one
// membership; the class reference is optional, and a nil ClassID is the
// "no class" state.
type Client struct {
	ID           string    `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	DNI          string    `db:"dni" json:"dni"`
	Phone        string    `db:"phone" json:"phone"`
	Email        string    `db:"email" json:"email"`
	Address      string    `db:"address" json:"address"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
	MembershipID string    `db:"membership_id" json:"membership_id"`
	ClassID      *string   `db:"class_id" json:"class_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ClientRecord extends a client with membership details resolved by a join,
// so callers get the type label without a second round trip.
type ClientRecord struct {
	Client
	MembershipType  *string  `db:"membership_type" json:"membership_type,omitempty"`
	MembershipPrice *float64 `db:"membership_price" json:"membership_price,omitempty"`
}
