package service

import (
	"context"

	"github.com/C-Senanayake/CVision/internal/domain"
)

// DocumentStore is the record-store surface the pipeline depends on.
// *repository.DocumentRepository satisfies it; tests substitute in-memory
// fakes.
type DocumentStore interface {
	Create(ctx context.Context, doc *domain.Document) error
	Update(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByJobID(ctx context.Context, jobID string) ([]domain.Document, error)
	SetScores(ctx context.Context, id string, scores domain.ScoreMap, finalMark float64, selected bool) error
	SetMailStatus(ctx context.Context, id, status string) error
}

// JobStore is the job-posting lookup surface.
type JobStore interface {
	GetByID(ctx context.Context, id string) (*domain.JobPosting, error)
	GetByName(ctx context.Context, name string) (*domain.JobPosting, error)
}

// Extractor turns raw CV bytes into the structured field record.
type Extractor interface {
	Extract(ctx context.Context, pdfData []byte, links domain.ClassifiedLinks) (domain.ExtractedFields, error)
}

// LinkExtractor discovers raw hyperlink strings in a document.
type LinkExtractor interface {
	ExtractLinks(data []byte) ([]string, error)
}

// Enricher resolves and fetches the external profile for an extraction
// result. A nil return means no usable enrichment, which is not an error.
type Enricher interface {
	Enrich(ctx context.Context, fields domain.ExtractedFields) *domain.ExternalProfile
}

// Scorer marks one document against its job posting.
type Scorer interface {
	ScoreDocument(ctx context.Context, doc *domain.Document, job *domain.JobPosting) error
}

// Notifier sends the candidate-facing acknowledgement mail. Implementations
// record the outcome on the document themselves; callers only log failures.
type Notifier interface {
	NotifyReceived(ctx context.Context, doc *domain.Document) error
}
