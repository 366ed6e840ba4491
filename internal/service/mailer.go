package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/C-Senanayake/CVision/internal/config"
	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/C-Senanayake/CVision/internal/logger"
)

// Sender delivers one rendered message. GraphSender implements it; tests
// substitute fakes.
type Sender interface {
	SendMail(ctx context.Context, to, subject, htmlBody string) error
	SendCalendarInvite(ctx context.Context, to, subject, htmlBody string, event *domain.InterviewEvent) error
}

// GraphSender sends mail through a Microsoft Graph style REST API.
type GraphSender struct {
	client  *resty.Client
	baseURL string
}

// NewGraphSender creates a new Graph mail sender.
// Parameters:
//   - cfg: mail configuration including endpoint and bearer token.
//
// Returns:
//   - *GraphSender: initialized sender.
func NewGraphSender(cfg *config.MailConfig) *GraphSender {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.Token)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = "https://graph.microsoft.com/v1.0"
	}

	return &GraphSender{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type graphAddress struct {
	Address string `json:"address"`
}

type graphRecipient struct {
	EmailAddress graphAddress `json:"emailAddress"`
}

type graphBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphMessage struct {
	Subject      string           `json:"subject"`
	Body         graphBody        `json:"body"`
	ToRecipients []graphRecipient `json:"toRecipients"`
}

type graphSendRequest struct {
	Message graphMessage `json:"message"`
}

type graphDateTime struct {
	DateTime string `json:"dateTime"`
}

type graphLocation struct {
	DisplayName string `json:"displayName"`
}

type graphAttendee struct {
	EmailAddress graphAddress `json:"emailAddress"`
	Type         string       `json:"type"`
}

type graphEventRequest struct {
	Subject           string          `json:"subject"`
	Body              graphBody       `json:"body"`
	Start             graphDateTime   `json:"start"`
	End               graphDateTime   `json:"end"`
	Location          graphLocation   `json:"location"`
	Attendees         []graphAttendee `json:"attendees"`
	ResponseRequested bool            `json:"responseRequested"`
}

// SendMail posts one HTML message to the sendMail endpoint.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - to: recipient address.
//   - subject: message subject.
//   - htmlBody: rendered HTML body.
//
// Returns:
//   - error: non-nil if the API rejects the message.
func (g *GraphSender) SendMail(ctx context.Context, to, subject, htmlBody string) error {
	req := graphSendRequest{
		Message: graphMessage{
			Subject:      subject,
			Body:         graphBody{ContentType: "HTML", Content: htmlBody},
			ToRecipients: []graphRecipient{{EmailAddress: graphAddress{Address: to}}},
		},
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(g.baseURL + "/me/sendMail")
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// SendCalendarInvite creates a calendar event with the recipient and the
// interview attendees as required participants.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - to: candidate address.
//   - subject: event subject.
//   - htmlBody: rendered HTML body.
//   - event: interview schedule details.
//
// Returns:
//   - error: non-nil if the API rejects the event.
func (g *GraphSender) SendCalendarInvite(ctx context.Context, to, subject, htmlBody string, event *domain.InterviewEvent) error {
	attendees := []graphAttendee{
		{EmailAddress: graphAddress{Address: to}, Type: "required"},
	}
	for _, addr := range event.Attendees {
		attendees = append(attendees, graphAttendee{
			EmailAddress: graphAddress{Address: addr},
			Type:         "required",
		})
	}

	req := graphEventRequest{
		Subject:           subject,
		Body:              graphBody{ContentType: "HTML", Content: htmlBody},
		Start:             graphDateTime{DateTime: event.StartDatetime},
		End:               graphDateTime{DateTime: event.EndDatetime},
		Location:          graphLocation{DisplayName: event.Location},
		Attendees:         attendees,
		ResponseRequested: true,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(g.baseURL + "/me/events")
	if err != nil {
		return fmt.Errorf("calendar request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("calendar API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// MailService renders candidate notifications and records each outcome on
// the document. It implements Notifier for the ingestion pipeline.
type MailService struct {
	sender  Sender
	docs    DocumentStore
	enabled bool
}

// NewMailService creates a new mail orchestration service.
// Parameters:
//   - cfg: mail configuration; Enabled false suppresses the automatic
//     acknowledgement mail. Explicitly requested sends always go out.
//   - sender: message delivery backend.
//   - docs: document record store for status updates.
//
// Returns:
//   - *MailService: initialized service.
func NewMailService(cfg *config.MailConfig, sender Sender, docs DocumentStore) *MailService {
	return &MailService{sender: sender, docs: docs, enabled: cfg.Enabled}
}

// candidateAddress returns the candidate's email or empty when none was
// extracted.
func candidateAddress(doc *domain.Document) string {
	return strings.TrimSpace(doc.ResumeContent.PersonalInfo.Email)
}

// NotifyReceived is the best-effort acknowledgement hook the ingestion
// pipeline calls after each document. A disabled mail service or a missing
// candidate address is a silent no-op; only actual delivery problems
// surface.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: document whose candidate is notified.
//
// Returns:
//   - error: non-nil if rendering or sending fails.
func (m *MailService) NotifyReceived(ctx context.Context, doc *domain.Document) error {
	if !m.enabled {
		return nil
	}
	if candidateAddress(doc) == "" {
		logger.CtxDebug(ctx, "No candidate email extracted, skipping acknowledgement mail")
		return nil
	}
	return m.SendReceived(ctx, doc)
}

// SendReceived sends the acknowledgement mail and records the outcome. It
// is the explicitly requested variant: it sends regardless of the Enabled
// flag and a missing candidate address is an error.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: document whose candidate is notified.
//
// Returns:
//   - error: non-nil if no address exists or rendering or sending fails.
func (m *MailService) SendReceived(ctx context.Context, doc *domain.Document) error {
	to := candidateAddress(doc)
	if to == "" {
		return fmt.Errorf("document %s has no candidate email address", doc.ID)
	}

	body, err := renderMailTemplate("received", mailVars{
		Name:     doc.CandidateName,
		Email:    to,
		Position: doc.JobName,
	})
	if err != nil {
		return err
	}

	subject := "Application Received - " + doc.JobName
	if err := m.sender.SendMail(ctx, to, subject, body); err != nil {
		if statusErr := m.docs.SetMailStatus(ctx, doc.ID, domain.MailStatusReceivedFailed); statusErr != nil {
			logger.CtxError(ctx, "Failed to record mail failure: %v", statusErr)
		}
		doc.MailStatus = domain.MailStatusReceivedFailed
		return err
	}

	if err := m.docs.SetMailStatus(ctx, doc.ID, domain.MailStatusReceivedSent); err != nil {
		return err
	}
	doc.MailStatus = domain.MailStatusReceivedSent
	return nil
}

// SendSelected sends the selection mail and records the outcome.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: document whose candidate is notified.
//
// Returns:
//   - error: non-nil if no address exists or the send fails.
func (m *MailService) SendSelected(ctx context.Context, doc *domain.Document) error {
	return m.sendOutcome(ctx, doc, "selected",
		"Congratulations! You've Been Selected - "+doc.JobName,
		domain.MailStatusSelectionSent)
}

// SendRejected sends the rejection mail and records the outcome.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: document whose candidate is notified.
//
// Returns:
//   - error: non-nil if no address exists or the send fails.
func (m *MailService) SendRejected(ctx context.Context, doc *domain.Document) error {
	return m.sendOutcome(ctx, doc, "rejected",
		"Application Update - "+doc.JobName,
		domain.MailStatusRejectionSent)
}

func (m *MailService) sendOutcome(ctx context.Context, doc *domain.Document, templateName, subject, status string) error {
	to := candidateAddress(doc)
	if to == "" {
		return fmt.Errorf("document %s has no candidate email address", doc.ID)
	}

	body, err := renderMailTemplate(templateName, mailVars{
		Name:     doc.CandidateName,
		Email:    to,
		Position: doc.JobName,
	})
	if err != nil {
		return err
	}

	if err := m.sender.SendMail(ctx, to, subject, body); err != nil {
		return err
	}

	if err := m.docs.SetMailStatus(ctx, doc.ID, status); err != nil {
		return err
	}
	doc.MailStatus = status
	return nil
}

// SendInterviewScheduled sends a calendar invite and stores the interview
// sub-record on the document.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: document whose candidate is invited.
//   - event: interview schedule details.
//
// Returns:
//   - error: non-nil if no address exists or the send or persist fails.
func (m *MailService) SendInterviewScheduled(ctx context.Context, doc *domain.Document, event *domain.InterviewEvent) error {
	to := candidateAddress(doc)
	if to == "" {
		return fmt.Errorf("document %s has no candidate email address", doc.ID)
	}

	body, err := renderMailTemplate("interview", mailVars{
		Name:          doc.CandidateName,
		Email:         to,
		Position:      doc.JobName,
		Event:         event.Name,
		Location:      event.Location,
		StartDatetime: event.StartDatetime,
	})
	if err != nil {
		return err
	}

	subject := "Interview Scheduled - " + doc.JobName
	if err := m.sender.SendCalendarInvite(ctx, to, subject, body, event); err != nil {
		return err
	}

	doc.Interview = event
	doc.MailStatus = domain.MailStatusInterviewScheduled
	return m.docs.Update(ctx, doc)
}
