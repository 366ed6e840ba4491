package domain

import (
	"database/sql/driver"
	"encoding/json"
)

// ProfileLinks groups candidate profile URLs by the site they point at.
type ProfileLinks struct {
	GitHub   []string `json:"github,omitempty"`
	LinkedIn []string `json:"linkedin,omitempty"`
	Medium   []string `json:"medium,omitempty"`
	Website  []string `json:"website,omitempty"`
}

// ClassifiedLinks holds the hyperlinks discovered in a document, bucketed
// by semantic category. Each bucket is deduplicated and sorted so
// classification is deterministic for a fixed input set.
type ClassifiedLinks struct {
	Profiles     ProfileLinks `json:"profiles"`
	Repositories []string     `json:"repositories,omitempty"`
	Certificates []string     `json:"certificates,omitempty"`
	Emails       []string     `json:"emails,omitempty"`
	Other        []string     `json:"other,omitempty"`
}

// IsEmpty reports whether no link ended up in any bucket.
func (c ClassifiedLinks) IsEmpty() bool {
	return len(c.Profiles.GitHub) == 0 &&
		len(c.Profiles.LinkedIn) == 0 &&
		len(c.Profiles.Medium) == 0 &&
		len(c.Profiles.Website) == 0 &&
		len(c.Repositories) == 0 &&
		len(c.Certificates) == 0 &&
		len(c.Emails) == 0 &&
		len(c.Other) == 0
}

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded representation of the buckets.
//   - error: non-nil if marshaling fails.
func (c ClassifiedLinks) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
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
func (c *ClassifiedLinks) Scan(value interface{}) error {
	return scanJSON(value, c)
}
