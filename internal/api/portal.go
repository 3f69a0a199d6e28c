package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/derived"
	"github.com/lalith-99/propmaster/internal/middleware"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/store"
	"go.uber.org/zap"
)

// PortalHandler is the tenant-facing side. Every route is scoped to the
// tenant record bound to the caller's token.
type PortalHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewPortalHandler(s *store.Store, logger *zap.Logger) *PortalHandler {
	return &PortalHandler{store: s, logger: logger}
}

// tenant resolves the caller's tenant record, writing 403 or 404 when
// there is none.
func (h *PortalHandler) tenant(c *gin.Context) (models.Tenant, bool) {
	id := middleware.GetTenantID(c)
	if id == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "account is not linked to a tenant"})
		return models.Tenant{}, false
	}
	t, ok := h.store.Tenant(id)
	if !ok || t.IsArchived() {
		notFound(c, "tenant")
		return models.Tenant{}, false
	}
	return t, true
}

func (h *PortalHandler) history(t models.Tenant) derived.History {
	return derived.TenantHistory(t.ID, h.store.Transactions(), h.store.Maintenance())
}

func (h *PortalHandler) Me(c *gin.Context) {
	t, ok := h.tenant(c)
	if !ok {
		return
	}
	body := gin.H{"tenant": t, "history": h.history(t)}
	if a, found := h.store.Apartment(t.ApartmentID); found {
		body["apartment"] = a
	}
	c.JSON(http.StatusOK, body)
}

func (h *PortalHandler) Transactions(c *gin.Context) {
	if t, ok := h.tenant(c); ok {
		c.JSON(http.StatusOK, h.history(t).Transactions)
	}
}

func (h *PortalHandler) Maintenance(c *gin.Context) {
	if t, ok := h.tenant(c); ok {
		c.JSON(http.StatusOK, h.history(t).Maintenance)
	}
}

// SubmitPayment handles POST /v1/portal/payments.
func (h *PortalHandler) SubmitPayment(c *gin.Context) {
	t, ok := h.tenant(c)
	if !ok {
		return
	}
	var req store.PaymentSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tx, found, err := h.store.SubmitPayment(c.Request.Context(), t.ID, req, t.Name)
	if err != nil {
		writeError(c, h.logger, "failed to submit payment", err)
		return
	}
	if !found {
		notFound(c, "open invoice")
		return
	}
	c.JSON(http.StatusAccepted, tx)
}

// OpenMaintenance handles POST /v1/portal/maintenance.
func (h *PortalHandler) OpenMaintenance(c *gin.Context) {
	t, ok := h.tenant(c)
	if !ok {
		return
	}
	var req models.MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	m, err := h.store.AddMaintenanceFromPortal(c.Request.Context(), t.ID, req, t.Name)
	if err != nil {
		writeError(c, h.logger, "failed to open maintenance request", err)
		return
	}
	c.JSON(http.StatusCreated, m)
}
