package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/clipgenius-go/internal/domain"
)

// URLHandler handles URL validation and discovery requests
type URLHandler struct {
	links domain.LinkSource
}

// NewURLHandler creates a new URL handler
func NewURLHandler(links domain.LinkSource) *URLHandler {
	return &URLHandler{links: links}
}

// URLRequest carries a single URL
type URLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ValidateResponse describes a URL
type ValidateResponse struct {
	URL          string          `json:"url"`
	Valid        bool            `json:"valid"`
	Platform     domain.Platform `json:"platform"`
	PlatformName string          `json:"platform_name"`
	LikelyVideo  bool            `json:"likely_video"`
}

// Validate handles POST /api/v1/validate
func (h *URLHandler) Validate(c *gin.Context) {
	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform := domain.PlatformHint(req.URL)
	c.JSON(http.StatusOK, ValidateResponse{
		URL:          req.URL,
		Valid:        domain.IsValidURL(req.URL),
		Platform:     platform,
		PlatformName: platform.DisplayName(),
		LikelyVideo:  domain.IsLikelyVideoURL(req.URL),
	})
}

// ParseURLsRequest carries a newline or comma separated URL list
type ParseURLsRequest struct {
	Text string `json:"text"`
}

// ParseURLs handles POST /api/v1/urls/parse
func (h *URLHandler) ParseURLs(c *gin.Context) {
	var req ParseURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	urls := domain.ParseURLList(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"count": len(urls),
		"urls":  urls,
	})
}

// ExtractLinks handles POST /api/v1/links
func (h *URLHandler) ExtractLinks(c *gin.Context) {
	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.IsValidURL(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidURL.Error()})
		return
	}

	urls := h.links.ExtractVideoLinks(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, gin.H{
		"page":  req.URL,
		"count": len(urls),
		"urls":  urls,
	})
}
