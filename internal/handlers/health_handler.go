package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now().UTC()}
}

// @Summary Health Check
// @Description Liveness probe for load balancers and the admin dashboard
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"service":        "fintera-homes",
		"version":        apiVersion,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}
