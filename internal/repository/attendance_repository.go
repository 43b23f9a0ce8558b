package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gymadmin/gym-api/internal/models"
)

// AttendanceRepository manages the append-only attendance log.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListDatesByClient returns every attendance date recorded for a client,
// oldest first.
func (r *AttendanceRepository) ListDatesByClient(ctx context.Context, clientID string) ([]time.Time, error) {
	const query = `SELECT date FROM attendances WHERE client_id = $1 ORDER BY date`
	var dates []time.Time
	if err := r.db.SelectContext(ctx, &dates, query, clientID); err != nil {
		return nil, fmt.Errorf("list attendance dates: %w", err)
	}
	return dates, nil
}

// Create appends a new attendance row.
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	if attendance.ID == "" {
		attendance.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if attendance.Date.IsZero() {
		attendance.Date = now
	}
	if attendance.CreatedAt.IsZero() {
		attendance.CreatedAt = now
	}

	const query = `INSERT INTO attendances (id, client_id, date, created_at)
		VALUES (:id, :client_id, :date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}
