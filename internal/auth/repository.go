package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventboard/backend/internal/models"
)

// Repository handles admin persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetAdminByEmail returns an admin by email.
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const q = `SELECT id, email, password_hash, name, created_at FROM admins WHERE email = $1`
	var a models.Admin
	err := r.pool.QueryRow(ctx, q, email).Scan(&a.ID, &a.Email, &a.Password, &a.Name, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAdmin inserts a new admin.
func (r *Repository) CreateAdmin(ctx context.Context, email, passwordHash string, name *string) (*models.Admin, error) {
	const q = `INSERT INTO admins (id, email, password_hash, name)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id, email, password_hash, name, created_at`
	var a models.Admin
	err := r.pool.QueryRow(ctx, q, email, passwordHash, name).
		Scan(&a.ID, &a.Email, &a.Password, &a.Name, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
