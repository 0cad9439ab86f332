package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/gin-gonic/gin"
)

// Pinger checks a backing store
type Pinger func(ctx context.Context) error

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	service  string
	selector *tenant.Selector
	ping     Pinger
}

// NewHealthHandler creates a new health handler. A nil ping skips the
// database check.
func NewHealthHandler(service string, selector *tenant.Selector, ping Pinger) *HealthHandler {
	return &HealthHandler{service: service, selector: selector, ping: ping}
}

func (h *HealthHandler) Check(c *gin.Context) {
	body := gin.H{
		"status":   "ok",
		"service":  h.service,
		"database": h.selector.Current(),
	}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			body["status"] = "degraded"
			body["error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}

	c.JSON(http.StatusOK, body)
}
