// Package auth implements login, registration, and admin seeding. There is no
// session layer: the "token" returned on login is the record's store id, by
// contract with the existing frontend.
package auth

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventboard/backend/internal/models"
	"github.com/eventboard/backend/pkg/response"
	"github.com/eventboard/backend/pkg/utils"
)

// AdminStore is the admin persistence used by the handler.
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, email, passwordHash string, name *string) (*models.Admin, error)
}

// OrganizationStore is the organization persistence used by the handler.
type OrganizationStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Organization, error)
	Create(ctx context.Context, org *models.Organization) error
}

// LoginRequest is the body for the login endpoints.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterOrgRequest is the body for POST /auth/org/register.
type RegisterOrgRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	admins AdminStore
	orgs   OrganizationStore
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(admins AdminStore, orgs OrganizationStore, logger *zap.Logger) *Handler {
	return &Handler{admins: admins, orgs: orgs, logger: logger}
}

// AdminLogin handles POST /auth/admin/login.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	admin, err := h.admins.GetAdminByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, models.ErrNotFound) {
		response.Unauthorized(c, "invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error("admin lookup", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}
	if !utils.CheckPassword(req.Password, admin.Password) {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	response.OK(c, gin.H{"token": admin.ID.String(), "email": admin.Email, "name": admin.Name})
}

// RegisterOrg handles POST /auth/org/register.
func (h *Handler) RegisterOrg(c *gin.Context) {
	var req RegisterOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	_, err := h.orgs.GetByEmail(c.Request.Context(), req.Email)
	if err == nil {
		response.BadRequest(c, "email already registered")
		return
	}
	if !errors.Is(err, models.ErrNotFound) {
		h.logger.Error("organization lookup", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}

	org := &models.Organization{
		Name:        req.Name,
		Email:       req.Email,
		Password:    utils.HashPassword(req.Password),
		Verified:    false,
		Description: req.Description,
		Website:     req.Website,
	}
	if err := h.orgs.Create(c.Request.Context(), org); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			response.BadRequest(c, "email already registered")
			return
		}
		h.logger.Error("organization create", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}

	response.OK(c, gin.H{"id": org.ID.String(), "verified": false})
}

// OrgLogin handles POST /auth/org/login.
func (h *Handler) OrgLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	org, err := h.orgs.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, models.ErrNotFound) {
		response.Unauthorized(c, "invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error("organization lookup", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}
	if !utils.CheckPassword(req.Password, org.Password) {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	response.OK(c, gin.H{
		"token":    org.ID.String(),
		"email":    org.Email,
		"verified": org.Verified,
		"name":     org.Name,
	})
}

// SeedAdmin handles POST /seed-admin. Parameters come in the query string.
// Idempotent: a second call with the same email is a no-op.
func (h *Handler) SeedAdmin(c *gin.Context) {
	email := c.Query("email")
	password := c.Query("password")
	if email == "" || password == "" {
		response.BadRequest(c, "email and password are required")
		return
	}
	var name *string
	if n := c.Query("name"); n != "" {
		name = &n
	}

	_, err := h.admins.GetAdminByEmail(c.Request.Context(), email)
	if err == nil {
		response.OK(c, gin.H{"created": false})
		return
	}
	if !errors.Is(err, models.ErrNotFound) {
		h.logger.Error("admin lookup", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}

	admin, err := h.admins.CreateAdmin(c.Request.Context(), email, utils.HashPassword(password), name)
	if err != nil {
		h.logger.Error("admin create", zap.Error(err))
		response.ServiceUnavailable(c, "store unavailable")
		return
	}
	response.OK(c, gin.H{"created": true, "id": admin.ID.String()})
}
