package domain

import (
	"database/sql/driver"
	"encoding/json"
)

// PersonalInfo is the candidate contact block of an extraction result.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	GitHub   string `json:"github"`
	Medium   string `json:"medium"`
}

// WorkExperience is one employment entry.
type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Education is one education entry. University and school entries share
// the type; unused fields stay empty.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree,omitempty"`
	Field          string `json:"field,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
	GPA            string `json:"gpa,omitempty"`
	Class          string `json:"class,omitempty"`
	Results        string `json:"results,omitempty"`
	Year           string `json:"year,omitempty"`
}

// Skills groups the skill lists of an extraction result.
type Skills struct {
	Technical []string `json:"technical_skills"`
	Soft      []string `json:"soft_skills"`
	Languages []string `json:"languages"`
}

// Project is one project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Repository   string   `json:"repository"`
	URL          string   `json:"url"`
}

// Publication is one research or publication entry.
type Publication struct {
	Name         string `json:"name"`
	Duration     string `json:"duration,omitempty"`
	KeyAreas     string `json:"key_areas,omitempty"`
	Achievements string `json:"achievements,omitempty"`
	Links        string `json:"links,omitempty"`
}

// Reference is one referee entry.
type Reference struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// publicationsKey is the wire name the extraction service uses for the
// publications list.
const publicationsKey = "researchs and publications"

// ExtractedFields is the structured record returned by the extraction
// service for one document. Keys the service returns beyond the known set
// are preserved verbatim so nothing is lost across re-serialization.
type ExtractedFields struct {
	PersonalInfo        PersonalInfo     `json:"-"`
	ProfessionalSummary string           `json:"-"`
	WorkExperience      []WorkExperience `json:"-"`
	Education           []Education      `json:"-"`
	Skills              Skills           `json:"-"`
	Certifications      []string         `json:"-"`
	Projects            []Project        `json:"-"`
	Publications        []Publication    `json:"-"`
	Interests           []string         `json:"-"`
	Volunteer           []string         `json:"-"`
	Achievements        []string         `json:"-"`
	References          []Reference      `json:"-"`

	extra map[string]json.RawMessage
}

// knownFields enumerates the wire keys bound to typed fields; everything
// else lands in extra.
func (f *ExtractedFields) knownFields() map[string]interface{} {
	return map[string]interface{}{
		"personal_info":        &f.PersonalInfo,
		"professional_summary": &f.ProfessionalSummary,
		"work_experience":      &f.WorkExperience,
		"education":            &f.Education,
		"skills":               &f.Skills,
		"certifications":       &f.Certifications,
		"projects":             &f.Projects,
		publicationsKey:        &f.Publications,
		"interest":             &f.Interests,
		"volunteer":            &f.Volunteer,
		"achievements":         &f.Achievements,
		"references":           &f.References,
	}
}

// UnmarshalJSON decodes an extraction payload, binding known keys to
// typed fields and retaining unknown keys opaquely.
func (f *ExtractedFields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := f.knownFields()
	for key, val := range raw {
		dst, ok := known[key]
		if !ok {
			if f.extra == nil {
				f.extra = make(map[string]json.RawMessage)
			}
			f.extra[key] = val
			continue
		}
		// Tolerate mistyped values from the extraction service; a bad
		// sub-record should not discard the rest of the document.
		if err := json.Unmarshal(val, dst); err != nil {
			if f.extra == nil {
				f.extra = make(map[string]json.RawMessage)
			}
			f.extra[key] = val
		}
	}
	return nil
}

// MarshalJSON re-serializes the record, merging typed fields with the
// preserved unknown keys. Preserved raw values are written last: a key
// only lands in extra when it could not bind to its typed field, so the
// raw form is the faithful one.
func (f ExtractedFields) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(f.extra)+12)
	out["personal_info"] = f.PersonalInfo
	out["professional_summary"] = f.ProfessionalSummary
	out["work_experience"] = f.WorkExperience
	out["education"] = f.Education
	out["skills"] = f.Skills
	out["certifications"] = f.Certifications
	out["projects"] = f.Projects
	out[publicationsKey] = f.Publications
	out["interest"] = f.Interests
	out["volunteer"] = f.Volunteer
	out["achievements"] = f.Achievements
	out["references"] = f.References
	for key, val := range f.extra {
		out[key] = val
	}
	return json.Marshal(out)
}

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded representation of the record.
//   - error: non-nil if marshaling fails.
func (f ExtractedFields) Value() (driver.Value, error) {
	b, err := json.Marshal(f)
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
func (f *ExtractedFields) Scan(value interface{}) error {
	return scanJSON(value, f)
}
