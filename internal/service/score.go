package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jaytaylor/html2text"

	"github.com/C-Senanayake/CVision/internal/config"
	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/C-Senanayake/CVision/internal/logger"
	"github.com/C-Senanayake/CVision/internal/prompts"
)

// noProfileExplanation is recorded for the github_profile criterion when a
// document carries no usable enrichment.
const noProfileExplanation = "No GitHub profile data was available for this candidate."

// ScoreRequest bundles everything the oracle judges a document on.
type ScoreRequest struct {
	JobDescription string // plain text, markup already stripped
	Criteria       domain.CriteriaMap
	Extracted      domain.ExtractedFields
	Enrichment     *domain.ExternalProfile
}

// ScoreOracle judges one document against a criteria set. Every criterion
// key in the request must appear in the returned map.
type ScoreOracle interface {
	Score(ctx context.Context, req *ScoreRequest) (domain.ScoreMap, error)
}

// LLMScoreOracle implements ScoreOracle over an OpenAI-compatible chat
// completions endpoint.
type LLMScoreOracle struct {
	client   *resty.Client
	model    string
	endpoint string
}

// NewLLMScoreOracle creates a new LLM-backed scoring oracle.
// Parameters:
//   - cfg: LLM configuration including model, API key, and base URL.
//
// Returns:
//   - *LLMScoreOracle: initialized oracle.
func NewLLMScoreOracle(cfg *config.LLMConfig) *LLMScoreOracle {
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

	return &LLMScoreOracle{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
	}
}

// Score asks the model to mark the document and decodes the returned
// criterion map.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - req: scoring inputs.
//
// Returns:
//   - domain.ScoreMap: per-criterion marks as returned by the model.
//   - error: non-nil if the API call fails or no JSON can be recovered.
func (o *LLMScoreOracle) Score(ctx context.Context, req *ScoreRequest) (domain.ScoreMap, error) {
	criteriaJSON, err := json.Marshal(req.Criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to encode criteria: %w", err)
	}
	cvJSON, err := json.Marshal(req.Extracted)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extracted fields: %w", err)
	}

	userText := fmt.Sprintf("Job description:\n%s\n\nEvaluation criteria with maximum marks:\n%s\n\nCandidate CV data:\n%s",
		req.JobDescription, criteriaJSON, cvJSON)
	if req.Enrichment.Usable() {
		statsJSON, err := json.Marshal(req.Enrichment.Statistics)
		if err == nil {
			userText += "\n\nCandidate GitHub statistics:\n" + string(statsJSON)
		}
	}

	body := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.CriteriaScoring},
			{Role: "user", Content: userText},
		},
	}

	var resp chatResponse
	httpResp, err := o.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&resp).
		Post(o.endpoint)
	if err != nil {
		return nil, fmt.Errorf("scoring request failed: %w", err)
	}
	if httpResp.IsError() {
		return nil, fmt.Errorf("scoring API returned status %d: %s", httpResp.StatusCode(), httpResp.String())
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("scoring API error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("scoring API returned no choices")
	}

	payload, err := recoverJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	var scores domain.ScoreMap
	if err := json.Unmarshal([]byte(payload), &scores); err != nil {
		return nil, fmt.Errorf("failed to decode scoring result: %w", err)
	}
	return scores, nil
}

// ScoreJobResult summarizes one scoring run over a job's documents.
type ScoreJobResult struct {
	Scored  []string       `json:"scored"`
	Skipped []string       `json:"skipped"`
	Failed  []ScoreFailure `json:"failed"`
}

// ScoreFailure records one document that could not be scored.
type ScoreFailure struct {
	DocumentID string `json:"documentId"`
	Reason     string `json:"reason"`
}

// ScoreService aggregates oracle marks into a document's final score.
type ScoreService struct {
	docs   DocumentStore
	jobs   JobStore
	oracle ScoreOracle
}

// NewScoreService creates a new score aggregation service.
// Parameters:
//   - docs: document record store.
//   - jobs: job posting store.
//   - oracle: per-criterion judgment backend.
//
// Returns:
//   - *ScoreService: initialized service.
func NewScoreService(docs DocumentStore, jobs JobStore, oracle ScoreOracle) *ScoreService {
	return &ScoreService{docs: docs, jobs: jobs, oracle: oracle}
}

// ScoreDocument marks one document against a job and persists the result.
// Re-scoring replaces the previous score map and selection flag wholesale.
// The final mark is the raw sum of per-criterion marks; criteria with
// different maximums are summed in absolute mark units.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: document to score; updated in place on success.
//   - job: job posting supplying criteria and the selection threshold.
//
// Returns:
//   - error: non-nil if the oracle fails, omits a criterion, or the
//     persist fails.
func (s *ScoreService) ScoreDocument(ctx context.Context, doc *domain.Document, job *domain.JobPosting) error {
	if len(job.Criteria) == 0 {
		return fmt.Errorf("job %s has no criteria to score against", job.JobName)
	}

	plainDescription, err := html2text.FromString(job.JobDescription)
	if err != nil {
		// Fall back to the raw description rather than blocking scoring
		logger.CtxWarn(ctx, "Failed to strip markup from job description: %v", err)
		plainDescription = job.JobDescription
	}

	returned, err := s.oracle.Score(ctx, &ScoreRequest{
		JobDescription: plainDescription,
		Criteria:       job.Criteria,
		Extracted:      doc.ResumeContent,
		Enrichment:     doc.GitHubData,
	})
	if err != nil {
		return fmt.Errorf("scoring oracle failed: %w", err)
	}

	scores := make(domain.ScoreMap, len(job.Criteria))
	total := 0.0
	for name, maxMark := range job.Criteria {
		entry, ok := returned[name]
		if !ok {
			return fmt.Errorf("scoring oracle omitted criterion %q", name)
		}
		entry.MaxMark = maxMark
		if name == domain.CriterionGitHubProfile && !doc.GitHubData.Usable() {
			entry = domain.CriterionScore{Mark: 0, MaxMark: maxMark, Explanation: noProfileExplanation}
		}
		scores[name] = entry
		total += entry.Mark
	}

	selected := total >= job.SelectionMark
	if err := s.docs.SetScores(ctx, doc.ID, scores, total, selected); err != nil {
		return fmt.Errorf("failed to persist scores: %w", err)
	}

	doc.Comparison = scores
	doc.FinalMark = total
	doc.MarkGenerated = true
	doc.Selected = selected

	logger.CtxInfo(ctx, "Scored document: final mark %.2f, selected=%t", total, selected)
	return nil
}

// ScoreJob scores every live document attached to a job. Documents already
// scored are skipped unless force is set.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: job posting ID.
//   - force: re-score documents that already carry marks.
//
// Returns:
//   - *ScoreJobResult: per-document outcome lists.
//   - error: non-nil if the job or its documents cannot be loaded.
func (s *ScoreService) ScoreJob(ctx context.Context, jobID string, force bool) (*ScoreJobResult, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docs.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for job %s: %w", jobID, err)
	}

	result := &ScoreJobResult{}
	for i := range docs {
		doc := &docs[i]
		docCtx := logger.WithField(ctx, logger.FieldDocumentID, doc.ID)

		if doc.MarkGenerated && !force {
			result.Skipped = append(result.Skipped, doc.ID)
			continue
		}
		if err := s.ScoreDocument(docCtx, doc, job); err != nil {
			logger.CtxError(docCtx, "Failed to score document: %v", err)
			result.Failed = append(result.Failed, ScoreFailure{DocumentID: doc.ID, Reason: err.Error()})
			continue
		}
		result.Scored = append(result.Scored, doc.ID)
	}
	return result, nil
}
