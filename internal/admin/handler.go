// Package admin implements the moderation endpoints: verifying organizations
// and approving events. Both are single atomic field updates, and both keep a
// strict distinction between a malformed id (400) and a well-formed id that
// matches no record (404).
package admin

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventboard/backend/internal/models"
	"github.com/eventboard/backend/pkg/response"
)

// OrganizationVerifier updates an organization's verified flag.
type OrganizationVerifier interface {
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

// EventApprover updates an event's approved flag.
type EventApprover interface {
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) error
}

// VerifyOrgRequest is the body for POST /admin/verify-organization.
// verified defaults to true when omitted.
type VerifyOrgRequest struct {
	OrgID    string `json:"org_id" binding:"required"`
	Verified *bool  `json:"verified"`
}

// ApproveEventRequest is the body for POST /admin/approve-event.
// approve defaults to true when omitted.
type ApproveEventRequest struct {
	EventID string `json:"event_id" binding:"required"`
	Approve *bool  `json:"approve"`
}

// Handler handles admin moderation endpoints.
type Handler struct {
	orgs   OrganizationVerifier
	events EventApprover
	logger *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(orgs OrganizationVerifier, events EventApprover, logger *zap.Logger) *Handler {
	return &Handler{orgs: orgs, events: events, logger: logger}
}

// VerifyOrganization handles POST /admin/verify-organization.
func (h *Handler) VerifyOrganization(c *gin.Context) {
	var req VerifyOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	id, err := uuid.Parse(req.OrgID)
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}

	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}

	err = h.orgs.SetVerified(c.Request.Context(), id, verified)
	if errors.Is(err, models.ErrNotFound) {
		response.NotFound(c, "organization not found")
		return
	}
	if err != nil {
		h.logger.Error("verify organization", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}
	response.OK(c, gin.H{"success": true})
}

// ApproveEvent handles POST /admin/approve-event.
func (h *Handler) ApproveEvent(c *gin.Context) {
	var req ApproveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	id, err := uuid.Parse(req.EventID)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	approve := true
	if req.Approve != nil {
		approve = *req.Approve
	}

	err = h.events.SetApproval(c.Request.Context(), id, approve)
	if errors.Is(err, models.ErrNotFound) {
		response.NotFound(c, "event not found")
		return
	}
	if err != nil {
		h.logger.Error("approve event", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}
	response.OK(c, gin.H{"success": true})
}
