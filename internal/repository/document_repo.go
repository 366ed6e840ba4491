package repository

import (
	"context"
	"errors"

	"github.com/C-Senanayake/CVision/internal/domain"
	"gorm.io/gorm"
)

// ErrDocumentNotFound is returned when a lookup matches no live document.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentFilter narrows List results. Empty fields are ignored.
type DocumentFilter struct {
	JobID         string
	JobName       string
	CandidateName string
	Division      string
}

// DocumentRepository handles CV document persistence.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *DocumentRepository: repository instance bound to db.
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: document record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// Update saves the full document record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: document record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *DocumentRepository) Update(ctx context.Context, doc *domain.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// GetByID retrieves a live document by its ID. Soft-deleted documents are
// treated as absent.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: document ID.
// Returns:
//   - *domain.Document: document record if found.
//   - error: ErrDocumentNotFound if no live record matches.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.WithContext(ctx).
		First(&doc, "id = ? AND is_deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List retrieves live documents matching the filter, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: optional field filters; zero value returns all live documents.
// Returns:
//   - []domain.Document: matching document records.
//   - error: non-nil if the query fails.
func (r *DocumentRepository) List(ctx context.Context, filter DocumentFilter) ([]domain.Document, error) {
	query := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if filter.JobID != "" {
		query = query.Where("job_id = ?", filter.JobID)
	}
	if filter.JobName != "" {
		query = query.Where("job_name = ?", filter.JobName)
	}
	if filter.CandidateName != "" {
		query = query.Where("candidate_name = ?", filter.CandidateName)
	}
	if filter.Division != "" {
		query = query.Where("division = ?", filter.Division)
	}

	var docs []domain.Document
	if err := query.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// ListByJobID retrieves all live documents attached to a job.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: job posting ID.
// Returns:
//   - []domain.Document: matching document records.
//   - error: non-nil if the query fails.
func (r *DocumentRepository) ListByJobID(ctx context.Context, jobID string) ([]domain.Document, error) {
	return r.List(ctx, DocumentFilter{JobID: jobID})
}

// SetScores overwrites a document's scoring fields in one update. Any
// previous comparison results are replaced wholesale.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: document ID.
//   - scores: per-criterion results.
//   - finalMark: sum of the per-criterion marks.
//   - selected: whether the final mark met the selection threshold.
// Returns:
//   - error: non-nil if the update fails.
func (r *DocumentRepository) SetScores(ctx context.Context, id string, scores domain.ScoreMap, finalMark float64, selected bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"comparison_results": scores,
			"final_mark":         finalMark,
			"mark_generated":     true,
			"selected":           selected,
		}).Error
}

// SetMailStatus records the outcome of a notification attempt.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: document ID.
//   - status: one of the domain.MailStatus values.
// Returns:
//   - error: non-nil if the update fails.
func (r *DocumentRepository) SetMailStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("id = ?", id).
		Update("mail_status", status).Error
}

// Delete soft-deletes a document. The row and its blob remain in place.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: document ID to delete.
// Returns:
//   - error: ErrDocumentNotFound if no live record matches.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
