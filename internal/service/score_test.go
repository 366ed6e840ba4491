package service

import (
	"strings"
	"testing"

	"github.com/C-Senanayake/CVision/internal/domain"
)

func scoringJob() *domain.JobPosting {
	return &domain.JobPosting{
		ID:             "job-1",
		JobName:        "Backend Engineer",
		JobDescription: "<p>We build <strong>Go</strong> services.</p>",
		Criteria: domain.CriteriaMap{
			"A":                           10,
			"B":                           20,
			domain.CriterionGitHubProfile: 5,
		},
		SelectionMark: 20,
	}
}

func TestScoreDocumentAggregation(t *testing.T) {
	docs := newFakeDocStore()
	job := scoringJob()
	doc := &domain.Document{ID: "doc-1", JobID: job.ID}
	docs.Create(t.Context(), doc)

	oracle := &fakeOracle{outputs: []domain.ScoreMap{{
		"A":                           {Mark: 8, MaxMark: 10, Explanation: "solid"},
		"B":                           {Mark: 15, MaxMark: 20, Explanation: "good"},
		domain.CriterionGitHubProfile: {Mark: 3, MaxMark: 5, Explanation: "active"},
	}}}
	svc := NewScoreService(docs, newFakeJobStore(job), oracle)

	if err := svc.ScoreDocument(t.Context(), doc, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := docs.GetByID(t.Context(), "doc-1")
	// Without usable enrichment the profile criterion is forced to zero,
	// so the total is the raw sum 8 + 15 + 0
	if stored.FinalMark != 23 {
		t.Errorf("final mark = %v, want 23", stored.FinalMark)
	}
	if !stored.Selected {
		t.Error("23 >= 20 must select the candidate")
	}
	if !stored.MarkGenerated {
		t.Error("mark_generated flag not set")
	}
	profileScore := stored.Comparison[domain.CriterionGitHubProfile]
	if profileScore.Mark != 0 {
		t.Errorf("profile mark = %v, want forced 0 without enrichment", profileScore.Mark)
	}
	if profileScore.Explanation != noProfileExplanation {
		t.Errorf("profile explanation = %q, want the fixed string", profileScore.Explanation)
	}
	if profileScore.MaxMark != 5 {
		t.Errorf("profile max mark = %v, want 5", profileScore.MaxMark)
	}
}

func TestScoreDocumentUsesEnrichmentWhenAvailable(t *testing.T) {
	docs := newFakeDocStore()
	job := scoringJob()
	doc := &domain.Document{
		ID:    "doc-1",
		JobID: job.ID,
		GitHubData: &domain.ExternalProfile{
			FetchStatus: domain.FetchStatusSuccess,
			Statistics:  &domain.ProfileStats{},
		},
	}
	docs.Create(t.Context(), doc)

	oracle := &fakeOracle{outputs: []domain.ScoreMap{{
		"A":                           {Mark: 2},
		"B":                           {Mark: 4},
		domain.CriterionGitHubProfile: {Mark: 4, Explanation: "strong open source record"},
	}}}
	svc := NewScoreService(docs, newFakeJobStore(job), oracle)

	if err := svc.ScoreDocument(t.Context(), doc, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := docs.GetByID(t.Context(), "doc-1")
	if got := stored.Comparison[domain.CriterionGitHubProfile].Mark; got != 4 {
		t.Errorf("profile mark = %v, want the oracle's 4", got)
	}
	if stored.FinalMark != 10 {
		t.Errorf("final mark = %v, want 10", stored.FinalMark)
	}
	if stored.Selected {
		t.Error("10 < 20 must not select the candidate")
	}
}

func TestScoreDocumentOmittedCriterion(t *testing.T) {
	docs := newFakeDocStore()
	job := scoringJob()
	doc := &domain.Document{ID: "doc-1", JobID: job.ID}
	docs.Create(t.Context(), doc)

	oracle := &fakeOracle{outputs: []domain.ScoreMap{{
		"A": {Mark: 8},
		// B missing
		domain.CriterionGitHubProfile: {Mark: 0},
	}}}
	svc := NewScoreService(docs, newFakeJobStore(job), oracle)

	err := svc.ScoreDocument(t.Context(), doc, job)
	if err == nil || !strings.Contains(err.Error(), `"B"`) {
		t.Fatalf("err = %v, want omitted-criterion error naming B", err)
	}

	stored, _ := docs.GetByID(t.Context(), "doc-1")
	if stored.MarkGenerated {
		t.Error("a failed scoring run must not persist marks")
	}
}

func TestRescoreOverwritesWholesale(t *testing.T) {
	docs := newFakeDocStore()
	job := &domain.JobPosting{
		ID:            "job-1",
		JobName:       "Backend Engineer",
		Criteria:      domain.CriteriaMap{"A": 10},
		SelectionMark: 5,
	}
	doc := &domain.Document{ID: "doc-1", JobID: job.ID}
	docs.Create(t.Context(), doc)

	oracle := &fakeOracle{outputs: []domain.ScoreMap{
		{"A": {Mark: 9, Explanation: "first pass"}},
		{"A": {Mark: 2, Explanation: "second pass"}},
	}}
	svc := NewScoreService(docs, newFakeJobStore(job), oracle)

	if err := svc.ScoreDocument(t.Context(), doc, job); err != nil {
		t.Fatal(err)
	}
	if err := svc.ScoreDocument(t.Context(), doc, job); err != nil {
		t.Fatal(err)
	}

	stored, _ := docs.GetByID(t.Context(), "doc-1")
	if len(stored.Comparison) != 1 {
		t.Fatalf("score map has %d entries, want 1 (no merge)", len(stored.Comparison))
	}
	if got := stored.Comparison["A"]; got.Mark != 2 || got.Explanation != "second pass" {
		t.Errorf("stored score = %+v, want only the second run's entry", got)
	}
	if stored.FinalMark != 2 {
		t.Errorf("final mark = %v, want 2", stored.FinalMark)
	}
	if stored.Selected {
		t.Error("2 < 5: selection flag must be overwritten, not kept from the first run")
	}
}

func TestScoreJobSkipsAlreadyScored(t *testing.T) {
	docs := newFakeDocStore()
	job := &domain.JobPosting{
		ID:       "job-1",
		JobName:  "Backend Engineer",
		Criteria: domain.CriteriaMap{"A": 10},
	}
	docs.Create(t.Context(), &domain.Document{ID: "fresh", JobID: job.ID})
	docs.Create(t.Context(), &domain.Document{ID: "scored", JobID: job.ID, MarkGenerated: true})

	oracle := &fakeOracle{outputs: []domain.ScoreMap{{"A": {Mark: 5}}}}
	svc := NewScoreService(docs, newFakeJobStore(job), oracle)

	result, err := svc.ScoreJob(t.Context(), job.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Scored) != 1 || result.Scored[0] != "fresh" {
		t.Errorf("scored = %v, want only the unscored document", result.Scored)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "scored" {
		t.Errorf("skipped = %v, want the already scored document", result.Skipped)
	}

	result, err = svc.ScoreJob(t.Context(), job.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Scored) != 2 {
		t.Errorf("force re-score scored %d documents, want 2", len(result.Scored))
	}
}
