package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/middleware"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/store"
	"go.uber.org/zap"
)

// ArchiveHandler serves the deleted log, the archive view and raw intent
// dispatch.
type ArchiveHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewArchiveHandler(s *store.Store, logger *zap.Logger) *ArchiveHandler {
	return &ArchiveHandler{store: s, logger: logger}
}

// Deleted handles GET /v1/archive/deleted, newest first.
func (h *ArchiveHandler) Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.DeletedLog())
}

// Archived handles GET /v1/archive/archived.
func (h *ArchiveHandler) Archived(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ArchivedRecords())
}

func (h *ArchiveHandler) RestoreDeleted(c *gin.Context) {
	h.apply(c, lifecycle.OpRestoreDeleted)
}

func (h *ArchiveHandler) RestoreArchived(c *gin.Context) {
	h.apply(c, lifecycle.OpRestoreArchived)
}

func (h *ArchiveHandler) apply(c *gin.Context, op lifecycle.Op) {
	kind, ok := models.ParseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown record kind: " + c.Param("kind")})
		return
	}
	res, err := h.store.Apply(c.Request.Context(), lifecycle.Intent{
		Op:    op,
		Kind:  kind,
		ID:    c.Param("id"),
		Actor: middleware.GetActor(c),
	})
	if err != nil {
		writeError(c, h.logger, "restore failed", err)
		return
	}
	writeResult(c, res)
}

// Apply handles POST /v1/intents: {"op": "...", "kind": "...", "id": "..."}.
// The actor always comes from the token, never the body.
func (h *ArchiveHandler) Apply(c *gin.Context) {
	var in lifecycle.Intent
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if kind, ok := models.ParseKind(string(in.Kind)); ok {
		in.Kind = kind
	}
	in.Actor = middleware.GetActor(c)

	res, err := h.store.Apply(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, "intent failed", err)
		return
	}
	writeResult(c, res)
}
