package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/C-Senanayake/CVision/internal/logger"
	"github.com/C-Senanayake/CVision/internal/repository"
	"github.com/C-Senanayake/CVision/internal/service"
)

// MailingHandler handles candidate notification endpoints.
type MailingHandler struct {
	docs *repository.DocumentRepository
	mail *service.MailService
}

// NewMailingHandler creates a new mailing handler.
// Parameters:
//   - docs: document repository.
//   - mail: mail orchestration service.
// Returns:
//   - *MailingHandler: initialized handler.
func NewMailingHandler(docs *repository.DocumentRepository, mail *service.MailService) *MailingHandler {
	return &MailingHandler{docs: docs, mail: mail}
}

// batchMailRequest names the documents whose candidates are notified.
type batchMailRequest struct {
	CVIDs []string `json:"cvIds" binding:"required"`
}

// mailOutcome reports one recipient's result.
type mailOutcome struct {
	CVID   string `json:"cvId"`
	Reason string `json:"reason,omitempty"`
}

// SendReceived handles POST /api/v1/mailing/received. Unlike the
// acknowledgement the ingestion pipeline sends on its own, an explicit
// request sends even when automatic mail is disabled, and a recipient
// without an address is reported as failed.
func (h *MailingHandler) SendReceived(c *gin.Context) {
	h.sendBatch(c, h.mail.SendReceived)
}

// SendSelected handles POST /api/v1/mailing/selected.
func (h *MailingHandler) SendSelected(c *gin.Context) {
	h.sendBatch(c, h.mail.SendSelected)
}

// SendRejected handles POST /api/v1/mailing/rejected.
func (h *MailingHandler) SendRejected(c *gin.Context) {
	h.sendBatch(c, h.mail.SendRejected)
}

// sendBatch delivers one notification kind to every named document,
// collecting per-recipient outcomes. One failed recipient never aborts the
// rest.
func (h *MailingHandler) sendBatch(c *gin.Context, send func(context.Context, *domain.Document) error) {
	var req batchMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	var sent, failed []mailOutcome
	for _, id := range req.CVIDs {
		doc, err := h.docs.GetByID(ctx, id)
		if err != nil {
			failed = append(failed, mailOutcome{CVID: id, Reason: err.Error()})
			continue
		}
		if err := send(logger.WithField(ctx, logger.FieldDocumentID, id), doc); err != nil {
			logger.CtxWarn(ctx, "Mail to document %s failed: %v", id, err)
			failed = append(failed, mailOutcome{CVID: id, Reason: err.Error()})
			continue
		}
		sent = append(sent, mailOutcome{CVID: id})
	}

	c.JSON(http.StatusOK, gin.H{
		"sent":        sent,
		"failed":      failed,
		"sentCount":   len(sent),
		"failedCount": len(failed),
	})
}

// interviewRequest carries the schedule for one candidate's interview.
type interviewRequest struct {
	CVID          string   `json:"cvId" binding:"required"`
	Name          string   `json:"interviewName" binding:"required"`
	Location      string   `json:"interviewLocation"`
	Attendees     []string `json:"interviewAttendees"`
	StartDatetime string   `json:"interviewStartDatetime" binding:"required"`
	EndDatetime   string   `json:"interviewEndDatetime" binding:"required"`
}

// ScheduleInterview handles POST /api/v1/mailing/interview. It sends a
// calendar invite and stores the interview sub-record on the document.
func (h *MailingHandler) ScheduleInterview(c *gin.Context) {
	var req interviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doc, err := h.docs.GetByID(c.Request.Context(), req.CVID)
	if errors.Is(err, repository.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch CV: " + err.Error()})
		return
	}

	event := &domain.InterviewEvent{
		Name:          req.Name,
		Location:      req.Location,
		Attendees:     req.Attendees,
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
	}
	if err := h.mail.SendInterviewScheduled(c.Request.Context(), doc, event); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to schedule interview: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cvId":           doc.ID,
		"mailStatus":     doc.MailStatus,
		"interviewEvent": doc.Interview,
	})
}
