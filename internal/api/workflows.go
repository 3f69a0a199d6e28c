package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/middleware"
	"github.com/lalith-99/propmaster/internal/store"
	"go.uber.org/zap"
)

type WorkflowHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewWorkflowHandler(s *store.Store, logger *zap.Logger) *WorkflowHandler {
	return &WorkflowHandler{store: s, logger: logger}
}

// Renew handles POST /v1/contracts/:id/renew.
func (h *WorkflowHandler) Renew(c *gin.Context) {
	var req store.Renewal
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	contract, invoice, ok, err := h.store.RenewContract(c.Request.Context(), c.Param("id"), req, middleware.GetActor(c))
	if err != nil {
		writeError(c, h.logger, "failed to renew contract", err)
		return
	}
	if !ok {
		notFound(c, "contract")
		return
	}
	body := gin.H{"contract": contract}
	if invoice != nil {
		body["invoice"] = invoice
	}
	c.JSON(http.StatusOK, body)
}

type reviewRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// ReviewPayment handles POST /v1/transactions/:id/review.
func (h *WorkflowHandler) ReviewPayment(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tx, ok, err := h.store.ReviewPayment(c.Request.Context(), c.Param("id"), *req.Approve, middleware.GetActor(c))
	if err != nil {
		writeError(c, h.logger, "failed to review payment", err)
		return
	}
	if !ok {
		notFound(c, "transaction")
		return
	}
	c.JSON(http.StatusOK, tx)
}
