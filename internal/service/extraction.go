package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/C-Senanayake/CVision/internal/config"
	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/C-Senanayake/CVision/internal/prompts"
)

// ExtractionService reduces CV PDFs to structured fields through an
// OpenAI-compatible chat completions endpoint.
type ExtractionService struct {
	client   *resty.Client
	model    string
	endpoint string
}

// NewExtractionService creates a new extraction service.
// Parameters:
//   - cfg: LLM configuration including model, API key, and base URL.
//
// Returns:
//   - *ExtractionService: initialized client wrapper.
func NewExtractionService(cfg *config.LLMConfig) *ExtractionService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	client.SetTimeout(timeout)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &ExtractionService{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
	}
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string for system, []interface{} for user with files
}

type chatTextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatFileContent struct {
	Type string      `json:"type"`
	File chatFileRef `json:"file"`
}

type chatFileRef struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Extract sends the PDF with the structuring prompt and decodes the
// returned JSON document. The classified links ride along as extra context
// so the model can attribute URLs it cannot read from the PDF text itself.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - pdfData: raw PDF bytes.
//   - links: classified hyperlinks discovered in the document.
//
// Returns:
//   - domain.ExtractedFields: structured extraction result.
//   - error: non-nil if the API call fails or no JSON can be recovered.
func (s *ExtractionService) Extract(ctx context.Context, pdfData []byte, links domain.ClassifiedLinks) (domain.ExtractedFields, error) {
	var fields domain.ExtractedFields

	dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfData)

	userContent := []interface{}{
		chatFileContent{
			Type: "file",
			File: chatFileRef{Filename: "cv.pdf", FileData: dataURL},
		},
	}
	if !links.IsEmpty() {
		linksJSON, err := json.Marshal(links)
		if err == nil {
			userContent = append(userContent, chatTextContent{
				Type: "text",
				Text: "Hyperlinks found in this document, grouped by category:\n" + string(linksJSON),
			})
		}
	}

	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.CVExtraction},
			{Role: "user", Content: userContent},
		},
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)
	if err != nil {
		return fields, fmt.Errorf("extraction request failed: %w", err)
	}
	if httpResp.IsError() {
		return fields, fmt.Errorf("extraction API returned status %d: %s", httpResp.StatusCode(), httpResp.String())
	}
	if resp.Error != nil {
		return fields, fmt.Errorf("extraction API error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return fields, fmt.Errorf("extraction API returned no choices")
	}

	payload, err := recoverJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return fields, err
	}
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return fields, fmt.Errorf("failed to decode extraction result: %w", err)
	}
	return fields, nil
}

// recoverJSON cuts the substring from the first '{' to the last '}' so
// surrounding prose or code fences from the model do not break decoding.
func recoverJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in model response")
	}
	return text[start : end+1], nil
}
