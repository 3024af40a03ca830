package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by anything that can report its own liveness,
// in practice the database pool.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Handler returns a gin handler reporting process and database health.
func Handler(db Pinger, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{Status: "ok"}

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
			defer cancel()

			if err := db.HealthCheck(ctx); err != nil {
				response.Status = "degraded"
				response.Database = "unreachable"
				c.JSON(http.StatusServiceUnavailable, response)
				return
			}
			response.Database = "ok"
		}

		c.JSON(http.StatusOK, response)
	}
}
