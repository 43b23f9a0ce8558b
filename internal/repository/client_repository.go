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

// ClientRepository manages persistence for gym clients.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository constructs a ClientRepository.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// List returns every client joined with membership details.
func (r *ClientRepository) List(ctx context.Context) ([]models.ClientRecord, error) {
	const query = `SELECT c.id, c.full_name, c.dni, c.phone, c.email, c.address, c.registered_at,
			c.membership_id, c.class_id, c.created_at, c.updated_at,
			m.type AS membership_type, m.price AS membership_price
		FROM clients c
		LEFT JOIN memberships m ON c.membership_id = m.id
		ORDER BY c.created_at`
	var clients []models.ClientRecord
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// FindByID fetches a client by ID.
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*models.Client, error) {
	const query = `SELECT id, full_name, dni, phone, email, address, registered_at, membership_id, class_id, created_at, updated_at
		FROM clients WHERE id = $1`
	var client models.Client
	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByDNI fetches a client by national ID.
func (r *ClientRepository) FindByDNI(ctx context.Context, dni string) (*models.Client, error) {
	const query = `SELECT id, full_name, dni, phone, email, address, registered_at, membership_id, class_id, created_at, updated_at
		FROM clients WHERE dni = $1`
	var client models.Client
	if err := r.db.GetContext(ctx, &client, query, dni); err != nil {
		return nil, err
	}
	return &client, nil
}

// ExistsByDNI checks if another client uses the same national ID.
func (r *ClientRepository) ExistsByDNI(ctx context.Context, dni string, excludeID string) (bool, error) {
	return r.existsBy(ctx, "dni", dni, excludeID)
}

// ExistsByPhone checks if another client uses the same phone number.
func (r *ClientRepository) ExistsByPhone(ctx context.Context, phone string, excludeID string) (bool, error) {
	return r.existsBy(ctx, "phone", phone, excludeID)
}

// ExistsByEmail checks if another client uses the same email.
func (r *ClientRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	return r.existsBy(ctx, "email", email, excludeID)
}

func (r *ClientRepository) existsBy(ctx context.Context, column, value, excludeID string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM clients WHERE %s = $1", column)
	args := []interface{}{value}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check client %s: %w", column, err)
	}
	return true, nil
}

// CountByMembership counts clients referencing the given membership.
func (r *ClientRepository) CountByMembership(ctx context.Context, membershipID string) (int, error) {
	const query = `SELECT COUNT(*) FROM clients WHERE membership_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, membershipID); err != nil {
		return 0, fmt.Errorf("count clients by membership: %w", err)
	}
	return count, nil
}

// CountByClass counts clients enrolled in the given class.
func (r *ClientRepository) CountByClass(ctx context.Context, classID string) (int, error) {
	const query = `SELECT COUNT(*) FROM clients WHERE class_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID); err != nil {
		return 0, fmt.Errorf("count clients by class: %w", err)
	}
	return count, nil
}

// Create inserts a new client record.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if client.RegisteredAt.IsZero() {
		client.RegisteredAt = now
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	const query = `INSERT INTO clients (id, full_name, dni, phone, email, address, registered_at, membership_id, class_id, created_at, updated_at)
		VALUES (:id, :full_name, :dni, :phone, :email, :address, :registered_at, :membership_id, :class_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, client); err != nil {
		return wrapWriteError("create client", err)
	}
	return nil
}

// Update modifies an existing client record.
func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	client.UpdatedAt = time.Now().UTC()
	const query = `UPDATE clients SET full_name = :full_name, dni = :dni, phone = :phone, email = :email,
		address = :address, membership_id = :membership_id, class_id = :class_id, updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, client); err != nil {
		return wrapWriteError("update client", err)
	}
	return nil
}

// Delete removes a client record.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM clients WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
