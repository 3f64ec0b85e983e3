package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminStatus describes the active snapshot
func (h *Handler) AdminStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Status(c.Request.Context()))
}

// AdminRefresh reloads every source. On failure the previous snapshot stays
// active and its status is returned alongside the error.
func (h *Handler) AdminRefresh(c *gin.Context) {
	status, err := h.catalog.Reload(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), gin.H{
			"error":    err.Error(),
			"snapshot": status,
		})
		return
	}

	h.logger.Info("snapshot refreshed by admin",
		zap.Uint64("generation", status.Generation),
		zap.String("request_id", c.GetString(requestIDKey)),
	)
	c.JSON(http.StatusOK, status)
}
