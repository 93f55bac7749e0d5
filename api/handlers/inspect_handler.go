package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/clipgenius-go/internal/app"
	"github.com/yourusername/clipgenius-go/internal/domain"
	"go.uber.org/zap"
)

// InspectHandler serves video metadata and filename suggestions
type InspectHandler struct {
	downloads *app.DownloadManager
	logger    *zap.Logger
}

// NewInspectHandler creates a new inspect handler
func NewInspectHandler(downloads *app.DownloadManager, logger *zap.Logger) *InspectHandler {
	return &InspectHandler{
		downloads: downloads,
		logger:    logger,
	}
}

// InspectRequest asks for a video's details
type InspectRequest struct {
	URL     string `json:"url" binding:"required"`
	Formats bool   `json:"formats,omitempty"`
}

// InspectResponse is the human-facing view of a video
type InspectResponse struct {
	URL               string                    `json:"url"`
	Platform          domain.Platform           `json:"platform"`
	Metadata          *domain.VideoMetadata     `json:"metadata"`
	Duration          string                    `json:"duration"`
	Views             string                    `json:"views"`
	SuggestedFilename string                    `json:"suggested_filename"`
	Formats           []domain.FormatDescriptor `json:"formats,omitempty"`
}

// Inspect handles POST /api/v1/inspect
func (h *InspectHandler) Inspect(c *gin.Context) {
	var req InspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.IsValidURL(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidURL.Error()})
		return
	}

	meta, err := h.downloads.FetchMetadata(c.Request.Context(), req.URL)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMetadataUnavailable) {
			status = http.StatusUnprocessableEntity
		}
		h.logger.Warn("Failed to inspect video", zap.String("url", req.URL), zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	response := InspectResponse{
		URL:               req.URL,
		Platform:          domain.PlatformHint(req.URL),
		Metadata:          meta,
		Duration:          domain.FormatDuration(meta.DurationSeconds()),
		Views:             domain.FormatCount(meta.Views()),
		SuggestedFilename: domain.SuggestFilename(meta),
	}
	if req.Formats {
		response.Formats = h.downloads.ListFormats(c.Request.Context(), req.URL)
	}

	c.JSON(http.StatusOK, response)
}

// FilenameRequest carries metadata to name, or a user-supplied name to sanitize
type FilenameRequest struct {
	Metadata *domain.VideoMetadata `json:"metadata,omitempty"`
	Name     string                `json:"name,omitempty"`
}

// SuggestFilename handles POST /api/v1/filename
func (h *InspectHandler) SuggestFilename(c *gin.Context) {
	var req FilenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		c.JSON(http.StatusOK, gin.H{"filename": domain.SanitizeFilename(req.Name)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": domain.SuggestFilename(req.Metadata)})
}
