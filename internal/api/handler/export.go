package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/C-Senanayake/CVision/internal/repository"
	"github.com/C-Senanayake/CVision/internal/service"
)

// ExportHandler handles spreadsheet export endpoints.
type ExportHandler struct {
	export *service.ExportService
}

// NewExportHandler creates a new export handler.
// Parameters:
//   - export: export service.
// Returns:
//   - *ExportHandler: initialized handler.
func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// ExportJob handles GET /api/v1/export/job/:job_id and streams an Excel
// workbook of the job's CVs.
func (h *ExportHandler) ExportJob(c *gin.Context) {
	data, filename, err := h.export.ExportJob(c.Request.Context(), c.Param("job_id"))
	if errors.Is(err, repository.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
