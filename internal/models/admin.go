package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin can verify organizations and approve events. There is no role model;
// any admin may moderate anything.
type Admin struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // sha256 hex digest
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
