package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/tron-block-api/internal/apperr"
)

const ServiceName = "tronScan-api"

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

// HealthHandler reports liveness. It does not call the node.
type HealthHandler struct {
	client  BlockFetcher
	version string
	now     func() time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(client BlockFetcher, version string) *HealthHandler {
	return &HealthHandler{
		client:  client,
		version: version,
		now:     time.Now,
	}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Get)
}

// Get returns the service status
// GET /health
func (h *HealthHandler) Get(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Success: false,
			Error:   ErrorBody{Message: "tron client not initialized", Type: apperr.ServerError},
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Service:   ServiceName,
		Version:   h.version,
	})
}
