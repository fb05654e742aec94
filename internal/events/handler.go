// Package events implements event creation, the public listing with its
// visibility and bucketing pipeline, and the category directory.
package events

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventboard/backend/internal/models"
	"github.com/eventboard/backend/pkg/response"
)

// Store is the event persistence used by the handler.
type Store interface {
	Insert(ctx context.Context, e *models.Event) error
	ListApproved(ctx context.Context, f ListFilter, now time.Time, limit int) ([]models.Event, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

// OrganizationGetter resolves an organization token (its store id).
type OrganizationGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// CreateRequest is the body for POST /events. organization_token is the id
// returned by org login.
type CreateRequest struct {
	Title             string  `json:"title" binding:"required"`
	Description       string  `json:"description" binding:"required"`
	PosterURL         *string `json:"poster_url"`
	GoogleFormURL     *string `json:"google_form_url"`
	Venue             string  `json:"venue" binding:"required"`
	EventStart        string  `json:"event_start" binding:"required"`
	EventEnd          *string `json:"event_end"`
	RegistrationStart string  `json:"registration_start" binding:"required"`
	RegistrationEnd   string  `json:"registration_end" binding:"required"`
	Category          string  `json:"category" binding:"required"`
	OrganizationToken string  `json:"organization_token" binding:"required"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	store  Store
	orgs   OrganizationGetter
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates an events handler.
func NewHandler(store Store, orgs OrganizationGetter, logger *zap.Logger) *Handler {
	return &Handler{store: store, orgs: orgs, logger: logger, now: time.Now}
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// Create handles POST /events. The event is auto-approved when the owning
// organization is verified at this instant; otherwise it stays pending. The
// organization's name and verified flag are snapshotted onto the event and
// never recomputed afterwards.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	orgID, err := uuid.Parse(req.OrganizationToken)
	if err != nil {
		response.Unauthorized(c, "invalid organization token")
		return
	}
	org, err := h.orgs.GetByID(c.Request.Context(), orgID)
	if errors.Is(err, models.ErrNotFound) {
		response.Unauthorized(c, "invalid organization token")
		return
	}
	if err != nil {
		h.logger.Error("organization lookup", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}

	eventStart, err := parseTime(req.EventStart)
	if err != nil {
		response.BadRequest(c, "invalid event_start")
		return
	}
	var eventEnd *time.Time
	if req.EventEnd != nil {
		t, err := parseTime(*req.EventEnd)
		if err != nil {
			response.BadRequest(c, "invalid event_end")
			return
		}
		eventEnd = &t
	}
	regStart, err := parseTime(req.RegistrationStart)
	if err != nil {
		response.BadRequest(c, "invalid registration_start")
		return
	}
	regEnd, err := parseTime(req.RegistrationEnd)
	if err != nil {
		response.BadRequest(c, "invalid registration_end")
		return
	}

	e := &models.Event{
		Title:             req.Title,
		Description:       req.Description,
		PosterURL:         req.PosterURL,
		GoogleFormURL:     req.GoogleFormURL,
		Venue:             req.Venue,
		EventStart:        eventStart,
		EventEnd:          eventEnd,
		RegistrationStart: regStart,
		RegistrationEnd:   regEnd,
		Category:          req.Category,
		OrganizationID:    org.ID,
		OrganizationName:  org.Name,
		Approved:          org.Verified,
		ApprovedBy:        nil,
		IsOrgVerified:     org.Verified,
	}
	if err := h.store.Insert(c.Request.Context(), e); err != nil {
		h.logger.Error("event insert", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}

	response.OK(c, gin.H{"id": e.ID.String(), "approved": e.Approved})
}

// List handles GET /events. Approved events are narrowed by category and
// registration window, sorted, capped, then bucketed into open, upcoming, and
// closed relative to the same instant.
func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		Category: c.Query("category"),
		Window:   c.Query("registration_window"),
		Sort:     c.DefaultQuery("sort", "time"),
	}
	limit := DefaultLimit
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	limit = ClampLimit(limit)

	now := h.now().UTC()
	list, err := h.store.ListApproved(c.Request.Context(), f, now, limit)
	if err != nil {
		h.logger.Error("event list", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}

	docs := make([]Doc, 0, len(list))
	for _, e := range list {
		docs = append(docs, ToDoc(e))
	}
	response.OK(c, Bucket(docs, now))
}

// Categories handles GET /events/categories.
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.store.DistinctCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("categories", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}
	response.OK(c, categories)
}
