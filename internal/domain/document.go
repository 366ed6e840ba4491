package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// MailStatus values recorded on a document after notification attempts.
const (
	MailStatusNone               = ""
	MailStatusReceivedSent       = "received_email_sent"
	MailStatusReceivedFailed     = "received_email_failed"
	MailStatusSelectionSent      = "selection_email_sent"
	MailStatusRejectionSent      = "rejection_email_sent"
	MailStatusInterviewScheduled = "interview_scheduled_email_sent"
)

// scanJSON decodes a JSON database value into dst, accepting both []byte
// and string column representations.
func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported column type for JSON scan")
		}
		b = []byte(s)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

// ScoreMap maps a criterion name to its assessed score. Stored as a JSON
// column.
type ScoreMap map[string]CriterionScore

// CriterionScore is the assessed mark for one evaluation criterion.
type CriterionScore struct {
	Mark        float64 `json:"mark"`
	MaxMark     float64 `json:"max_mark"`
	Explanation string  `json:"explanation"`
}

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded representation of the map.
//   - error: non-nil if marshaling fails.
func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
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
func (m *ScoreMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// InterviewEvent is the interview-schedule sub-record attached to a
// document once an interview email has been sent.
type InterviewEvent struct {
	Name          string   `json:"interviewName"`
	Location      string   `json:"interviewLocation"`
	Attendees     []string `json:"interviewAttendees"`
	StartDatetime string   `json:"interviewStartDatetime"`
	EndDatetime   string   `json:"interviewEndDatetime"`
}

// Document represents one uploaded CV, the unit of ingestion. It is
// created with placeholder fields at upload time and mutated as the
// pipeline progresses; deletion only ever sets IsDeleted.
type Document struct {
	ID            string           `gorm:"type:text;primaryKey" json:"id"`
	CVName        string           `gorm:"type:text;not null" json:"cvName"`
	CandidateName string           `gorm:"type:text;index:idx_cvs_candidate" json:"candidateName"`
	JobID         string           `gorm:"type:text;index:idx_cvs_job" json:"jobId"`
	JobName       string           `gorm:"type:text" json:"jobName"`
	Division      string           `gorm:"type:text;index:idx_cvs_division" json:"division"`
	Links         ClassifiedLinks  `gorm:"type:text" json:"links"`
	ResumeContent ExtractedFields  `gorm:"type:text" json:"resumeContent"`
	GitHubData    *ExternalProfile `gorm:"type:text;serializer:json" json:"githubData,omitempty"`
	Comparison    ScoreMap         `gorm:"column:comparison_results;type:text" json:"comparisonResults,omitempty"`
	FinalMark     float64          `gorm:"default:0" json:"finalMark"`
	MarkGenerated bool             `gorm:"default:false" json:"markGenerated"`
	Selected      bool             `gorm:"default:false" json:"selected"`
	IsDeleted     bool             `gorm:"default:false;index:idx_cvs_deleted" json:"isDeleted"`
	MailStatus    string           `gorm:"type:text" json:"mailStatus,omitempty"`
	Interview     *InterviewEvent  `gorm:"column:interview_event;type:text;serializer:json" json:"interviewEvent,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// TableName returns the database table name for Document.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Document) TableName() string {
	return "cvs"
}

// BlobKey returns the blob-store key for the document's raw bytes.
// Downstream retrieval depends on this exact format.
func (d *Document) BlobKey() string {
	return d.ID + "_" + d.CVName
}
