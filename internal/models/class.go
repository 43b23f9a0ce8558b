package models

import "time"

// Class represents a scheduled group activity run by one trainer. The
// schedule slot is unique across classes.
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Schedule  string    `db:"schedule" json:"schedule"`
	TrainerID string    `db:"trainer_id" json:"trainer_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassRecord extends a class with its trainer's name for list views.
type ClassRecord struct {
	Class
	TrainerName *string `db:"trainer_name" json:"trainer_name,omitempty"`
}
