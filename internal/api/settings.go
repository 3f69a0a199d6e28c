package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/middleware"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/settings"
	"github.com/lalith-99/propmaster/internal/store"
	"go.uber.org/zap"
)

// SettingsHandler edits workspace preferences. Every change lands in the
// audit trail under the "Settings" action.
type SettingsHandler struct {
	store  *store.Store
	prefs  *settings.Preferences
	logger *zap.Logger
}

func NewSettingsHandler(s *store.Store, prefs *settings.Preferences, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: s, prefs: prefs, logger: logger}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"owner":    h.prefs.OwnerSettings(ctx),
		"language": h.prefs.Language(ctx),
		"theme":    h.prefs.Theme(ctx),
	})
}

func (h *SettingsHandler) SaveOwner(c *gin.Context) {
	var req models.OwnerSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.prefs.SaveOwnerSettings(ctx, req); err != nil {
		writeError(c, h.logger, "failed to save owner settings", err)
		return
	}
	h.store.RecordAudit(ctx, middleware.GetActor(c), "Settings", "Updated owner settings.")
	c.JSON(http.StatusOK, req)
}

type languageRequest struct {
	Language models.Language `json:"language" binding:"required"`
}

func (h *SettingsHandler) SaveLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.prefs.SaveLanguage(ctx, req.Language); err != nil {
		writeError(c, h.logger, "failed to save language", err)
		return
	}
	h.store.RecordAudit(ctx, middleware.GetActor(c), "Settings", fmt.Sprintf("Changed language to %s.", req.Language))
	c.JSON(http.StatusOK, req)
}

type themeRequest struct {
	Theme models.Theme `json:"theme" binding:"required"`
}

func (h *SettingsHandler) SaveTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.prefs.SaveTheme(ctx, req.Theme); err != nil {
		writeError(c, h.logger, "failed to save theme", err)
		return
	}
	h.store.RecordAudit(ctx, middleware.GetActor(c), "Settings", fmt.Sprintf("Changed theme to %s.", req.Theme))
	c.JSON(http.StatusOK, req)
}

// AuditLog handles GET /v1/audit-log, newest first.
func (h *SettingsHandler) AuditLog(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.AuditLog())
}
