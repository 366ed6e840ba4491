package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/C-Senanayake/CVision/internal/repository"
	"github.com/C-Senanayake/CVision/internal/service"
	"github.com/C-Senanayake/CVision/internal/storage"
)

// CVHandler handles CV document endpoints.
type CVHandler struct {
	docs   *repository.DocumentRepository
	ingest *service.IngestService
	blobs  storage.BlobStore
}

// NewCVHandler creates a new CV handler.
// Parameters:
//   - docs: document repository.
//   - ingest: batch ingestion service.
//   - blobs: blob store serving original PDF bytes.
// Returns:
//   - *CVHandler: initialized handler.
func NewCVHandler(docs *repository.DocumentRepository, ingest *service.IngestService, blobs storage.BlobStore) *CVHandler {
	return &CVHandler{docs: docs, ingest: ingest, blobs: blobs}
}

// Upload handles POST /api/v1/upload_cv. It accepts multipart uploads of
// PDFs and ZIP archives under the "files" field plus job attribution form
// fields, and runs the full ingestion pipeline.
func (h *CVHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded under the 'files' field"})
		return
	}

	files := make([]service.BatchFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open " + fh.Filename + ": " + err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read " + fh.Filename + ": " + err.Error()})
			return
		}
		files = append(files, service.BatchFile{Name: fh.Filename, Data: data})
	}

	jobCtx := service.JobContext{
		JobID:    c.PostForm("jobId"),
		JobName:  c.PostForm("jobName"),
		Division: c.PostForm("division"),
	}

	result, err := h.ingest.Ingest(c.Request.Context(), files, jobCtx)
	if err != nil {
		// Intake validation failures are client errors
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"succeeded":      result.Succeeded,
		"failed":         result.Failed,
		"succeededCount": len(result.Succeeded),
		"failedCount":    len(result.Failed),
	})
}

// List handles GET /api/v1/fetch_cvs with optional jobId, jobName,
// candidateName, and division filters. Soft-deleted documents are never
// returned.
func (h *CVHandler) List(c *gin.Context) {
	docs, err := h.docs.List(c.Request.Context(), repository.DocumentFilter{
		JobID:         c.Query("jobId"),
		JobName:       c.Query("jobName"),
		CandidateName: c.Query("candidateName"),
		Division:      c.Query("division"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list CVs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cvs": docs, "count": len(docs)})
}

// Get handles GET /api/v1/cv/:id.
func (h *CVHandler) Get(c *gin.Context) {
	doc, err := h.docs.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch CV: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// updateCVRequest carries the mutable fields of a document. Pointer fields
// distinguish "absent" from "set to zero value".
type updateCVRequest struct {
	CandidateName *string `json:"candidateName"`
	JobID         *string `json:"jobId"`
	JobName       *string `json:"jobName"`
	Division      *string `json:"division"`
	Selected      *bool   `json:"selected"`
}

// Update handles PUT /api/v1/cv/:id.
func (h *CVHandler) Update(c *gin.Context) {
	var req updateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doc, err := h.docs.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch CV: " + err.Error()})
		return
	}

	if req.CandidateName != nil {
		doc.CandidateName = *req.CandidateName
	}
	if req.JobID != nil {
		doc.JobID = *req.JobID
	}
	if req.JobName != nil {
		doc.JobName = *req.JobName
	}
	if req.Division != nil {
		doc.Division = *req.Division
	}
	if req.Selected != nil {
		doc.Selected = *req.Selected
	}

	if err := h.docs.Update(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update CV: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /api/v1/cv/:id. Deletion is a soft-delete; the
// record and its stored bytes remain.
func (h *CVHandler) Delete(c *gin.Context) {
	err := h.docs.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete CV: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "CV deleted"})
}

// Download handles GET /api/v1/cv/:id/download and streams the original
// PDF bytes from the blob store.
func (h *CVHandler) Download(c *gin.Context) {
	doc, err := h.docs.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch CV: " + err.Error()})
		return
	}

	data, err := storage.DownloadBytes(c.Request.Context(), h.blobs, doc.BlobKey())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file not found: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.CVName+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
