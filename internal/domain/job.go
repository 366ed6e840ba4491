package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// CriterionGitHubProfile is the synthetic criterion populated from GitHub
// enrichment results rather than from the structured-extraction step.
const CriterionGitHubProfile = "github_profile"

// CriteriaMap maps a criterion name to its maximum mark. Values are
// non-negative. Stored as a JSON column.
type CriteriaMap map[string]float64

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded representation of the map.
//   - error: non-nil if marshaling fails.
func (m CriteriaMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (m *CriteriaMap) Scan(value interface{}) error {
	if value == nil {
		*m = CriteriaMap{}
		return nil
	}
	return scanJSON(value, m)
}

// JobPosting is the evaluation target a document batch is scored against.
// JobDescription may contain markup and must be reduced to plain text
// before it is handed to the scoring oracle.
type JobPosting struct {
	ID             string      `gorm:"type:text;primaryKey" json:"id"`
	// Uniqueness among live rows is enforced in the repository; a plain
	// index keeps soft-deleted names reusable.
	JobName        string      `gorm:"type:text;not null;index:idx_jobs_name" json:"jobName"`
	JobDescription string      `gorm:"type:text" json:"jobDescription"`
	Division       string      `gorm:"type:text;index:idx_jobs_division" json:"division"`
	Criteria       CriteriaMap `gorm:"type:text" json:"criteria"`
	SelectionMark  float64     `gorm:"default:0" json:"selectionMark"`
	IsDeleted      bool        `gorm:"default:false;index:idx_jobs_deleted" json:"isDeleted"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// TableName returns the database table name for JobPosting.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (JobPosting) TableName() string {
	return "jobs"
}
