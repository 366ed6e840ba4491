package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtractedFieldsPreservesUnknownKeys(t *testing.T) {
	payload := []byte(`{
		"personal_info": {"name": "Alice", "email": "alice@example.com"},
		"skills": {"technical_skills": ["Go"], "soft_skills": [], "languages": []},
		"custom_assessment": {"verdict": "strong", "score": 9},
		"certifications": {"oops": "object where a list belongs"}
	}`)

	var fields ExtractedFields
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fields.PersonalInfo.Name != "Alice" {
		t.Errorf("name = %q, want Alice", fields.PersonalInfo.Name)
	}
	if len(fields.Skills.Technical) != 1 || fields.Skills.Technical[0] != "Go" {
		t.Errorf("technical skills = %v, want [Go]", fields.Skills.Technical)
	}
	// The mistyped certifications value must not fail the whole document
	if len(fields.Certifications) != 0 {
		t.Errorf("certifications = %v, want empty after a mistyped value", fields.Certifications)
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(encoded, &got); err != nil {
		t.Fatalf("re-encoded document is not valid JSON: %v", err)
	}

	wantAssessment := map[string]interface{}{"verdict": "strong", "score": float64(9)}
	if !reflect.DeepEqual(got["custom_assessment"], wantAssessment) {
		t.Errorf("custom_assessment = %v, want %v preserved verbatim", got["custom_assessment"], wantAssessment)
	}
	wantCerts := map[string]interface{}{"oops": "object where a list belongs"}
	if !reflect.DeepEqual(got["certifications"], wantCerts) {
		t.Errorf("certifications = %v, want the original mistyped value %v", got["certifications"], wantCerts)
	}
	if gotName, ok := got["personal_info"].(map[string]interface{}); !ok || gotName["name"] != "Alice" {
		t.Errorf("personal_info = %v, want the typed field re-encoded", got["personal_info"])
	}
}

func TestExtractedFieldsRoundTripIsStable(t *testing.T) {
	payload := []byte(`{
		"personal_info": {"name": "Bob"},
		"researchs and publications": [{"name": "On Indexing"}],
		"recruiter_notes": "keep"
	}`)

	var first ExtractedFields
	if err := json.Unmarshal(payload, &first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Publications) != 1 || first.Publications[0].Name != "On Indexing" {
		t.Fatalf("publications = %+v, want the entry bound from its wire key", first.Publications)
	}

	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var second ExtractedFields
	if err := json.Unmarshal(encoded, &second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Publications) != 1 || second.Publications[0].Name != "On Indexing" {
		t.Errorf("publications lost across a round trip: %+v", second.Publications)
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &got); err != nil {
		t.Fatalf("re-encoded document is not valid JSON: %v", err)
	}
	if _, ok := got["researchs and publications"]; !ok {
		t.Error("publications must keep their wire key")
	}
	var note string
	if err := json.Unmarshal(got["recruiter_notes"], &note); err != nil || note != "keep" {
		t.Errorf("recruiter_notes = %s, want the unknown key preserved", got["recruiter_notes"])
	}
}
