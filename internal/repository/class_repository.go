package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gymadmin/gym-api/internal/models"
)

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns every class joined with its trainer name.
func (r *ClassRepository) List(ctx context.Context) ([]models.ClassRecord, error) {
	const query = `SELECT c.id, c.name, c.schedule, c.trainer_id, c.created_at, c.updated_at, t.full_name AS trainer_name
		FROM classes c
		LEFT JOIN trainers t ON c.trainer_id = t.id
		ORDER BY c.created_at`
	var classes []models.ClassRecord
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID fetches a class by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT id, name, schedule, trainer_id, created_at, updated_at FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// ExistsBySchedule checks whether another class occupies the same slot.
func (r *ClassRepository) ExistsBySchedule(ctx context.Context, schedule string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM classes WHERE schedule = $1"
	args := []interface{}{schedule}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check class schedule: %w", err)
	}
	return true, nil
}

// CountByTrainer counts classes run by the given trainer.
func (r *ClassRepository) CountByTrainer(ctx context.Context, trainerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM classes WHERE trainer_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, trainerID); err != nil {
		return 0, fmt.Errorf("count classes by trainer: %w", err)
	}
	return count, nil
}

// Create inserts a new class record.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	const query = `INSERT INTO classes (id, name, schedule, trainer_id, created_at, updated_at)
		VALUES (:id, :name, :schedule, :trainer_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return wrapWriteError("create class", err)
	}
	return nil
}

// Update modifies an existing class record.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classes SET name = :name, schedule = :schedule, trainer_id = :trainer_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return wrapWriteError("update class", err)
	}
	return nil
}

// Delete removes a class record.
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM classes WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}
