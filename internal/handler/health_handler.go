package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// readinessTimeout bounds the database ping so a hung pool reports
// unavailable instead of stalling the probe.
const readinessTimeout = 2 * time.Second

// HealthHandler serves the orchestration probes.
type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /healthz. It only proves the process is serving;
// dependency health belongs to readiness.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "invoicegen"})
}

// Readiness handles GET /readyz and checks the database within a bounded
// window, so traffic is routed away while postgres is unreachable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"checks": gin.H{"postgres": err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": gin.H{"postgres": "ok"},
	})
}
