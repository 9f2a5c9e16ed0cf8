package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
)

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	version string
	checks  map[string]Pinger
	logger  *logger.Logger
}

// NewHealthHandler probes each named dependency on every request. Nil entries are skipped.
func NewHealthHandler(version string, checks map[string]Pinger, logger *logger.Logger) *HealthHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthHandler{
		version: version,
		checks:  active,
		logger:  logger,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	components := make(map[string]string, len(h.checks))

	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.logger.WithError(err).WithField("component", name).Warn("Health check failed")
			components[name] = "unhealthy"
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		components[name] = "healthy"
	}

	c.JSON(code, gin.H{
		"status":     status,
		"version":    h.version,
		"timestamp":  utils.FormatTimeISO(time.Now().UTC()),
		"components": components,
	})
}
