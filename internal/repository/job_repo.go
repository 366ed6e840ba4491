package repository

import (
	"context"
	"errors"

	"github.com/C-Senanayake/CVision/internal/domain"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to handlers as client-facing failures.
var (
	ErrJobNotFound  = errors.New("job not found")
	ErrJobNameTaken = errors.New("a job with this name already exists")
)

// JobRepository handles job posting persistence.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *JobRepository: repository instance bound to db.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job posting. Job names are unique among live jobs.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - job: job posting to persist.
// Returns:
//   - error: ErrJobNameTaken if the name is already used, non-nil on other failures.
func (r *JobRepository) Create(ctx context.Context, job *domain.JobPosting) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.JobPosting{}).
		Where("job_name = ? AND is_deleted = ?", job.JobName, false).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrJobNameTaken
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// Update saves the full job posting record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - job: job posting with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *JobRepository) Update(ctx context.Context, job *domain.JobPosting) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// GetByID retrieves a live job posting by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job posting ID.
// Returns:
//   - *domain.JobPosting: job record if found.
//   - error: ErrJobNotFound if no live record matches.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	var job domain.JobPosting
	err := r.db.WithContext(ctx).
		First(&job, "id = ? AND is_deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByName retrieves a live job posting by its unique name.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: job name.
// Returns:
//   - *domain.JobPosting: job record if found.
//   - error: ErrJobNotFound if no live record matches.
func (r *JobRepository) GetByName(ctx context.Context, name string) (*domain.JobPosting, error) {
	var job domain.JobPosting
	err := r.db.WithContext(ctx).
		First(&job, "job_name = ? AND is_deleted = ?", name, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List retrieves all live job postings, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - division: optional division filter; empty means all.
// Returns:
//   - []domain.JobPosting: matching job records.
//   - error: non-nil if the query fails.
func (r *JobRepository) List(ctx context.Context, division string) ([]domain.JobPosting, error) {
	query := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if division != "" {
		query = query.Where("division = ?", division)
	}
	var jobs []domain.JobPosting
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Delete soft-deletes a job posting. Documents attached to the job are
// left untouched.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job posting ID to delete.
// Returns:
//   - error: ErrJobNotFound if no live record matches.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.JobPosting{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
