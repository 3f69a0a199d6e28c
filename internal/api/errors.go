package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/repository"
	"github.com/lalith-99/propmaster/internal/settings"
	"github.com/lalith-99/propmaster/internal/store"
	"go.uber.org/zap"
)

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a bare 500.
func writeError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lifecycle.ErrUnsupported),
		errors.Is(err, store.ErrInvalidInput),
		errors.Is(err, settings.ErrInvalidValue):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrDanglingReference):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrInvalidState),
		errors.Is(err, repository.ErrDuplicateEmail):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// writeResult reports a lifecycle outcome. A no-op is still a 200: the
// request was valid, there was just nothing to do.
func writeResult(c *gin.Context, res lifecycle.Result) {
	if !res.Changed {
		c.JSON(http.StatusOK, gin.H{"changed": false, "reason": res.Reason})
		return
	}
	body := gin.H{"changed": true, "audit": res.Audit}
	if res.Deleted != nil {
		body["deleted"] = res.Deleted
	}
	c.JSON(http.StatusOK, body)
}
