package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/C-Senanayake/CVision/internal/github"
	"github.com/C-Senanayake/CVision/internal/repository"
	"github.com/C-Senanayake/CVision/internal/service"
)

// GitHubHandler handles enrichment endpoints.
type GitHubHandler struct {
	docs   *repository.DocumentRepository
	enrich *service.EnrichService
	client *github.Client
}

// NewGitHubHandler creates a new GitHub enrichment handler.
// Parameters:
//   - docs: document repository.
//   - enrich: enrichment orchestrator.
//   - client: GitHub API client, used for the quota endpoint.
// Returns:
//   - *GitHubHandler: initialized handler.
func NewGitHubHandler(docs *repository.DocumentRepository, enrich *service.EnrichService, client *github.Client) *GitHubHandler {
	return &GitHubHandler{docs: docs, enrich: enrich, client: client}
}

// Enrich handles POST /api/v1/github/enrich/:cv_id. An already enriched
// document short-circuits unless force_refresh=true.
func (h *GitHubHandler) Enrich(c *gin.Context) {
	doc, err := h.docs.GetByID(c.Request.Context(), c.Param("cv_id"))
	if errors.Is(err, repository.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch CV: " + err.Error()})
		return
	}

	force := c.Query("force_refresh") == "true"
	if doc.GitHubData != nil && !force {
		c.JSON(http.StatusOK, gin.H{
			"cvId":       doc.ID,
			"cached":     true,
			"githubData": doc.GitHubData,
		})
		return
	}

	profile := h.enrich.Enrich(c.Request.Context(), doc.ResumeContent)
	if profile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No resolvable GitHub URL in this CV"})
		return
	}

	doc.GitHubData = profile
	if err := h.docs.Update(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist enrichment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cvId":       doc.ID,
		"cached":     false,
		"githubData": profile,
	})
}

// validateURLRequest carries one candidate profile URL.
type validateURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ValidateURL handles POST /api/v1/github/validate_url and reports whether
// a username can be resolved from the input.
func (h *GitHubHandler) ValidateURL(c *gin.Context) {
	var req validateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	username, ok := github.ResolveUsername(req.URL)
	c.JSON(http.StatusOK, gin.H{
		"valid":    ok,
		"username": username,
	})
}

// Status handles GET /api/v1/github/status/:cv_id.
func (h *GitHubHandler) Status(c *gin.Context) {
	doc, err := h.docs.GetByID(c.Request.Context(), c.Param("cv_id"))
	if errors.Is(err, repository.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch CV: " + err.Error()})
		return
	}

	if doc.GitHubData == nil {
		c.JSON(http.StatusOK, gin.H{"cvId": doc.ID, "status": "not_enriched"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cvId":      doc.ID,
		"status":    doc.GitHubData.FetchStatus,
		"error":     doc.GitHubData.Error,
		"fetchedAt": doc.GitHubData.FetchedAt,
	})
}

// RateLimit handles GET /api/v1/github/rate_limit.
func (h *GitHubHandler) RateLimit(c *gin.Context) {
	limit, err := h.client.CheckRateLimit(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to check rate limit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, limit)
}
