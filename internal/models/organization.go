// Package models defines the persisted entities and shared store errors.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization can create events once registered; its events become publicly
// visible only after admin approval, or immediately when the organization is
// verified at creation time.
type Organization struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"` // sha256 hex digest
	Verified    bool      `json:"verified"`
	Description *string   `json:"description,omitempty"`
	Website     *string   `json:"website,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
