package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lalith-99/propmaster/internal/events"
	"github.com/lalith-99/propmaster/internal/middleware"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewActivityHandler(hub *events.Hub, origins []string, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{hub: hub, upgrader: newUpgrader(origins), logger: logger}
}

// Serve handles GET /v1/ws/activity. The upgrader writes its own error
// response when the handshake fails.
func (h *ActivityHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("activity websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Serve(conn, middleware.GetUserID(c))
}
