package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a postable item with an event window and a registration window,
// gated by the approved flag.
//
// OrganizationName and IsOrgVerified are snapshots taken at creation time;
// they are deliberately never recomputed when the organization is later
// renamed or re-verified. Approved and IsOrgVerified stay independent after
// creation: approving an event does not touch IsOrgVerified and verifying an
// organization does not retroactively approve its existing events.
//
// No ordering is enforced between RegistrationStart/RegistrationEnd or
// EventStart/EventEnd.
type Event struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	PosterURL         *string    `json:"poster_url,omitempty"`
	GoogleFormURL     *string    `json:"google_form_url,omitempty"`
	Venue             string     `json:"venue"`
	EventStart        time.Time  `json:"event_start"`
	EventEnd          *time.Time `json:"event_end,omitempty"`
	RegistrationStart time.Time  `json:"registration_start"`
	RegistrationEnd   time.Time  `json:"registration_end"`
	Category          string     `json:"category"`
	OrganizationID    uuid.UUID  `json:"organization_id"`
	OrganizationName  string     `json:"organization_name"`
	Approved          bool       `json:"approved"`
	ApprovedBy        *string    `json:"approved_by,omitempty"`
	IsOrgVerified     bool       `json:"is_org_verified"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
