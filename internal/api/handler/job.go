package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/C-Senanayake/CVision/internal/repository"
)

// JobHandler handles job posting endpoints.
type JobHandler struct {
	jobs *repository.JobRepository
}

// NewJobHandler creates a new job handler.
// Parameters:
//   - jobs: job repository.
// Returns:
//   - *JobHandler: initialized handler.
func NewJobHandler(jobs *repository.JobRepository) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// createJobRequest carries a new job posting.
type createJobRequest struct {
	JobName        string             `json:"jobName" binding:"required"`
	JobDescription string             `json:"jobDescription"`
	Division       string             `json:"division"`
	Criteria       domain.CriteriaMap `json:"criteria"`
	SelectionMark  float64            `json:"selectionMark"`
}

// Create handles POST /api/v1/job.
func (h *JobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	for name, max := range req.Criteria {
		if max < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Criterion " + name + " has a negative maximum mark"})
			return
		}
	}

	job := &domain.JobPosting{
		ID:             uuid.New().String(),
		JobName:        req.JobName,
		JobDescription: req.JobDescription,
		Division:       req.Division,
		Criteria:       req.Criteria,
		SelectionMark:  req.SelectionMark,
	}

	err := h.jobs.Create(c.Request.Context(), job)
	if errors.Is(err, repository.ErrJobNameTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// List handles GET /api/v1/jobs with an optional division filter.
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context(), c.Query("division"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// Get handles GET /api/v1/job/:id.
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, job)
}

// updateJobRequest carries the mutable fields of a job posting.
type updateJobRequest struct {
	JobName        *string            `json:"jobName"`
	JobDescription *string            `json:"jobDescription"`
	Division       *string            `json:"division"`
	Criteria       domain.CriteriaMap `json:"criteria"`
	SelectionMark  *float64           `json:"selectionMark"`
}

// Update handles PUT /api/v1/job/:id.
func (h *JobHandler) Update(c *gin.Context) {
	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job: " + err.Error()})
		return
	}

	if req.JobName != nil {
		job.JobName = *req.JobName
	}
	if req.JobDescription != nil {
		job.JobDescription = *req.JobDescription
	}
	if req.Division != nil {
		job.Division = *req.Division
	}
	if req.Criteria != nil {
		job.Criteria = req.Criteria
	}
	if req.SelectionMark != nil {
		job.SelectionMark = *req.SelectionMark
	}

	if err := h.jobs.Update(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /api/v1/job/:id. Deletion is a soft-delete and
// leaves the job's documents untouched.
func (h *JobHandler) Delete(c *gin.Context) {
	err := h.jobs.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
