package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	historyEnabled bool
	logsEnabled    bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(historyEnabled, logsEnabled bool) *HealthHandler {
	return &HealthHandler{
		historyEnabled: historyEnabled,
		logsEnabled:    logsEnabled,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Features struct {
		History bool `json:"history"`
		Logs    bool `json:"logs"`
	} `json:"features"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: Version,
	}
	response.Features.History = h.historyEnabled
	response.Features.Logs = h.logsEnabled

	c.JSON(http.StatusOK, response)
}
