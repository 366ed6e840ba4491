package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/C-Senanayake/CVision/internal/repository"
	"github.com/C-Senanayake/CVision/internal/service"
)

// ScoreHandler handles scoring endpoints.
type ScoreHandler struct {
	docs  *repository.DocumentRepository
	jobs  *repository.JobRepository
	score *service.ScoreService
}

// NewScoreHandler creates a new scoring handler.
// Parameters:
//   - docs: document repository.
//   - jobs: job repository.
//   - score: score aggregation service.
// Returns:
//   - *ScoreHandler: initialized handler.
func NewScoreHandler(docs *repository.DocumentRepository, jobs *repository.JobRepository, score *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{docs: docs, jobs: jobs, score: score}
}

// ScoreJob handles POST /api/v1/score/job/:job_id. Unscored documents are
// scored; force=true re-scores everything, replacing prior marks.
func (h *ScoreHandler) ScoreJob(c *gin.Context) {
	force := c.Query("force") == "true"

	result, err := h.score.ScoreJob(c.Request.Context(), c.Param("job_id"), force)
	if errors.Is(err, repository.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scoring run failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ScoreCV handles POST /api/v1/score/cv/:cv_id and scores one document
// against its attached job.
func (h *ScoreHandler) ScoreCV(c *gin.Context) {
	doc, err := h.docs.GetByID(c.Request.Context(), c.Param("cv_id"))
	if errors.Is(err, repository.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch CV: " + err.Error()})
		return
	}
	if doc.JobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CV is not attached to a job"})
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), doc.JobID)
	if errors.Is(err, repository.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job: " + err.Error()})
		return
	}

	if err := h.score.ScoreDocument(c.Request.Context(), doc, job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scoring failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cvId":              doc.ID,
		"finalMark":         doc.FinalMark,
		"selected":          doc.Selected,
		"comparisonResults": doc.Comparison,
	})
}
