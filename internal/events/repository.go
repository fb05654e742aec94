package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventboard/backend/internal/models"
)

const eventColumns = `id, title, description, poster_url, google_form_url, venue,
	event_start, event_end, registration_start, registration_end, category,
	organization_id, organization_name, approved, approved_by, is_org_verified,
	created_at, updated_at`

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert creates a new event.
func (r *Repository) Insert(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (id, title, description, poster_url, google_form_url, venue,
		event_start, event_end, registration_start, registration_end, category,
		organization_id, organization_name, approved, approved_by, is_org_verified)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q,
		e.Title, e.Description, e.PosterURL, e.GoogleFormURL, e.Venue,
		e.EventStart, e.EventEnd, e.RegistrationStart, e.RegistrationEnd, e.Category,
		e.OrganizationID, e.OrganizationName, e.Approved, e.ApprovedBy, e.IsOrgVerified).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// ListApproved returns approved events narrowed by the filter, sorted and
// capped at limit. Unknown filter values fall back to no window condition and
// the store's natural order.
func (r *Repository) ListApproved(ctx context.Context, f ListFilter, now time.Time, limit int) ([]models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE approved = TRUE`
	args := []interface{}{}

	if f.Category != "" {
		args = append(args, f.Category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	switch f.Window {
	case "open":
		args = append(args, now)
		q += fmt.Sprintf(" AND registration_start <= $%d", len(args))
		args = append(args, now)
		q += fmt.Sprintf(" AND registration_end >= $%d", len(args))
	case "upcoming":
		args = append(args, now)
		q += fmt.Sprintf(" AND registration_start > $%d", len(args))
	case "closed":
		args = append(args, now)
		q += fmt.Sprintf(" AND registration_end < $%d", len(args))
	}

	switch f.Sort {
	case "time":
		q += " ORDER BY registration_start ASC, event_start ASC"
	case "recent":
		q += " ORDER BY created_at DESC"
	}

	args = append(args, limit)
	q += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.PosterURL, &e.GoogleFormURL, &e.Venue,
			&e.EventStart, &e.EventEnd, &e.RegistrationStart, &e.RegistrationEnd, &e.Category,
			&e.OrganizationID, &e.OrganizationName, &e.Approved, &e.ApprovedBy, &e.IsOrgVerified,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// SetApproval atomically updates the approved flag, recording the moderation
// marker in approved_by. Returns models.ErrNotFound when the id matches no
// event. The is_org_verified snapshot is never touched here.
func (r *Repository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	const q = `UPDATE events SET approved = $1, approved_by = 'admin', updated_at = NOW() WHERE id = $2`
	tag, err := r.pool.Exec(ctx, q, approved, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DistinctCategories returns the distinct non-empty categories of approved
// events in ascending lexical order.
func (r *Repository) DistinctCategories(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT category FROM events
		WHERE approved = TRUE AND category IS NOT NULL AND category <> ''
		ORDER BY category ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
