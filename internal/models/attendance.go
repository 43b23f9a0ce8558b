package models

import "time"

// Attendance represents a single check-in. Rows are append-only: the register
// operation never updates or deduplicates them.
type Attendance struct {
	ID        string    `db:"id" json:"id"`
	ClientID  string    `db:"client_id" json:"client_id"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
