// Package organizations persists organization records.
package organizations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventboard/backend/internal/models"
)

// Repository handles organization persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an organizations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new organization. Returns models.ErrDuplicateEmail when
// the email is already registered.
func (r *Repository) Create(ctx context.Context, org *models.Organization) error {
	const q = `INSERT INTO organizations (id, name, email, password_hash, verified, description, website)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, org.Name, org.Email, org.Password, org.Verified, org.Description, org.Website).
		Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return models.ErrDuplicateEmail
	}
	return err
}

// GetByEmail returns an organization by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Organization, error) {
	const q = `SELECT id, name, email, password_hash, verified, description, website, created_at, updated_at
		FROM organizations WHERE email = $1`
	var org models.Organization
	err := r.pool.QueryRow(ctx, q, email).Scan(&org.ID, &org.Name, &org.Email, &org.Password,
		&org.Verified, &org.Description, &org.Website, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByID returns an organization by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	const q = `SELECT id, name, email, password_hash, verified, description, website, created_at, updated_at
		FROM organizations WHERE id = $1`
	var org models.Organization
	err := r.pool.QueryRow(ctx, q, id).Scan(&org.ID, &org.Name, &org.Email, &org.Password,
		&org.Verified, &org.Description, &org.Website, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// SetVerified atomically updates the verified flag. Returns models.ErrNotFound
// when the id matches no organization.
func (r *Repository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	const q = `UPDATE organizations SET verified = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.pool.Exec(ctx, q, verified, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
