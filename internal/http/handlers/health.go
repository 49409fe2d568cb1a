// Health endpoint.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status      string  `json:"status" example:"OK"`
	TimeStamp   string  `json:"timeStamp" example:"2025-11-03T10:15:04Z"`
	Uptime      float64 `json:"uptime" example:"1523.4"`
	Environment string  `json:"environment" example:"development"`
}

// Health godoc
// @ID          health
// @Summary     Liveness check
// @Description Returns process status, current timestamp, uptime in seconds, and deployment environment.
// @Tags        Health
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	now := time.Now().UTC()
	ok(c, http.StatusOK, HealthResponse{
		Status:      "OK",
		TimeStamp:   now.Format(time.RFC3339),
		Uptime:      now.Sub(h.startedAt).Seconds(),
		Environment: h.env,
	})
}
