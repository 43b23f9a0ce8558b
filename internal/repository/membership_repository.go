package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gymadmin/gym-api/internal/models"
)

// MembershipRepository manages persistence for membership plans.
type MembershipRepository struct {
	db *sqlx.DB
}

// NewMembershipRepository constructs a MembershipRepository.
func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// List returns every membership plan.
func (r *MembershipRepository) List(ctx context.Context) ([]models.Membership, error) {
	const query = `SELECT id, type, price, created_at, updated_at FROM memberships ORDER BY created_at`
	var memberships []models.Membership
	if err := r.db.SelectContext(ctx, &memberships, query); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}

// FindByID fetches a membership by ID.
func (r *MembershipRepository) FindByID(ctx context.Context, id string) (*models.Membership, error) {
	const query = `SELECT id, type, price, created_at, updated_at FROM memberships WHERE id = $1`
	var membership models.Membership
	if err := r.db.GetContext(ctx, &membership, query, id); err != nil {
		return nil, err
	}
	return &membership, nil
}

// Create inserts a new membership plan.
func (r *MembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	if membership.ID == "" {
		membership.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = now
	}
	membership.UpdatedAt = now

	const query = `INSERT INTO memberships (id, type, price, created_at, updated_at)
		VALUES (:id, :type, :price, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, membership); err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// Update modifies an existing membership plan.
func (r *MembershipRepository) Update(ctx context.Context, membership *models.Membership) error {
	membership.UpdatedAt = time.Now().UTC()
	const query = `UPDATE memberships SET type = :type, price = :price, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, membership); err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	return nil
}

// Delete removes a membership plan.
func (r *MembershipRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM memberships WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}
