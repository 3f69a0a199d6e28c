package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/auth"
	"github.com/lalith-99/propmaster/internal/middleware"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/repository"
	"github.com/lalith-99/propmaster/internal/store"
	"go.uber.org/zap"
)

// AuthHandler handles login and the user directory. There is no public
// signup: managers create portal accounts for their tenants.
type AuthHandler struct {
	store     *store.Store
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthHandler(s *store.Store, users repository.UserRepository, jwtSecret string, ttl time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: s, users: users, jwtSecret: jwtSecret, tokenTTL: ttl, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		h.logger.Error("failed to find user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	// Same answer for unknown email and wrong password.
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(*user, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	h.store.RecordAudit(ctx, actorName(*user), "Login", fmt.Sprintf("User %s logged in.", user.Email))
	c.JSON(http.StatusOK, authResponse{Token: token, User: *user})
}

// Logout handles POST /v1/auth/logout. Tokens are stateless; this only
// records the event.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.RecordAudit(c.Request.Context(), middleware.GetActor(c), "Logout",
		fmt.Sprintf("User %s logged out.", middleware.GetEmail(c)))
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":   middleware.GetUserID(c),
		"email":     middleware.GetEmail(c),
		"name":      middleware.GetActor(c),
		"role":      middleware.GetRole(c),
		"tenant_id": middleware.GetTenantID(c),
	})
}

type createUserRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"required,oneof=admin manager tenant"`
	TenantID string      `json:"tenant_id"`
}

// CreateUser handles POST /v1/users. A tenant account must name a live
// tenant record.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	switch req.Role {
	case models.RoleTenant:
		t, ok := h.store.Tenant(req.TenantID)
		if !ok || t.IsArchived() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "tenant_id must name a live tenant"})
			return
		}
	default:
		req.TenantID = ""
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user, err := h.users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		TenantID:     req.TenantID,
		PasswordHash: hash,
	})
	if err != nil {
		writeError(c, h.logger, "failed to create user", err)
		return
	}

	h.store.RecordAudit(ctx, middleware.GetActor(c), "Add User",
		fmt.Sprintf("Created %s account for %s.", user.Role, user.Email))
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "failed to list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func actorName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
