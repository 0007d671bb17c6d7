// api/handlers/health_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/llm"
)

const (
	serviceName    = "Ask-Lytics Backend"
	serviceVersion = "1.0"
)

// HealthHandler reports service identity and which model is wired in.
type HealthHandler struct {
	Cfg     *config.Config
	Backend llm.Backend
}

func NewHealthHandler(cfg *config.Config, backend llm.Backend) *HealthHandler {
	return &HealthHandler{Cfg: cfg, Backend: backend}
}

// Health handles GET /.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "running",
		"service": serviceName,
		"version": serviceVersion,
		"backend": h.Backend.Name(),
		"model":   h.Backend.Model(),
	})
}
