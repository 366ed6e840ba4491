package service

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/C-Senanayake/CVision/internal/domain"
)

func testFields(name, email string) domain.ExtractedFields {
	var fields domain.ExtractedFields
	fields.PersonalInfo = domain.PersonalInfo{Name: name, Email: email}
	return fields
}

func newTestIngestService(docs *fakeDocStore, blobs *fakeBlobStore, extractor *fakeExtractor, scorer *fakeScorer, notifier *fakeNotifier) *IngestService {
	jobs := newFakeJobStore(&domain.JobPosting{
		ID:       "job-1",
		JobName:  "Backend Engineer",
		Criteria: domain.CriteriaMap{"experience": 10},
	})
	return NewIngestService(
		docs,
		jobs,
		blobs,
		&fakeLinkExtractor{links: []string{"https://github.com/alice"}},
		extractor,
		&fakeEnricher{},
		scorer,
		notifier,
	)
}

func TestIngestBatchIsolation(t *testing.T) {
	docs := newFakeDocStore()
	blobs := newFakeBlobStore()
	extractor := &fakeExtractor{
		fields: testFields("Alice", "alice@example.com"),
		failOn: map[string]bool{"pdf-two": true},
	}
	scorer := &fakeScorer{}
	svc := newTestIngestService(docs, blobs, extractor, scorer, nil)

	result, err := svc.Ingest(t.Context(), []BatchFile{
		{Name: "one.pdf", Data: []byte("pdf-one")},
		{Name: "two.pdf", Data: []byte("pdf-two")},
		{Name: "three.pdf", Data: []byte("pdf-three")},
	}, JobContext{JobID: "job-1", JobName: "Backend Engineer"})
	if err != nil {
		t.Fatalf("unexpected batch error: %v", err)
	}

	if len(result.Succeeded) != 2 {
		t.Fatalf("succeeded = %d, want 2", len(result.Succeeded))
	}
	if result.Succeeded[0].FileName != "one.pdf" || result.Succeeded[1].FileName != "three.pdf" {
		t.Errorf("succeeded order = %v, want encounter order one.pdf, three.pdf", result.Succeeded)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed = %d, want 1", len(result.Failed))
	}
	if result.Failed[0].FileName != "two.pdf" {
		t.Errorf("failed filename = %q, want two.pdf", result.Failed[0].FileName)
	}
	if result.Failed[0].Reason == "" {
		t.Error("failure must carry the error text")
	}

	// The failed document's placeholder is a documented partial artifact
	if result.Failed[0].ID == "" {
		t.Fatal("failure after placeholder creation must reference the record")
	}
	if _, err := docs.GetByID(t.Context(), result.Failed[0].ID); err != nil {
		t.Errorf("placeholder record for the failed document must persist: %v", err)
	}
	if docs.count() != 3 {
		t.Errorf("store holds %d records, want 3 (two complete, one placeholder)", docs.count())
	}
	if scorer.calls != 2 {
		t.Errorf("scorer calls = %d, want 2 (failed document never reaches scoring)", scorer.calls)
	}
}

func TestIngestRejectsUnsupportedSuffix(t *testing.T) {
	docs := newFakeDocStore()
	svc := newTestIngestService(docs, newFakeBlobStore(), &fakeExtractor{}, nil, nil)

	_, err := svc.Ingest(t.Context(), []BatchFile{
		{Name: "good.pdf", Data: []byte("pdf")},
		{Name: "notes.txt", Data: []byte("text")},
	}, JobContext{})
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("err = %v, want ErrUnsupportedFile", err)
	}
	if docs.count() != 0 {
		t.Error("intake validation must reject the whole batch before any processing")
	}
}

func TestIngestExpandsArchives(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, member := range []struct{ name, body string }{
		{"cvs/beta.pdf", "pdf-beta"},
		{"cvs/readme.txt", "ignored"},
		{"cvs/alpha.pdf", "pdf-alpha"},
	} {
		w, err := zw.Create(member.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(member.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	docs := newFakeDocStore()
	blobs := newFakeBlobStore()
	extractor := &fakeExtractor{fields: testFields("Bob", "")}
	svc := newTestIngestService(docs, blobs, extractor, nil, nil)

	result, err := svc.Ingest(t.Context(), []BatchFile{
		{Name: "batch.zip", Data: buf.Bytes()},
	}, JobContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Succeeded) != 2 {
		t.Fatalf("succeeded = %d, want 2 (txt member ignored)", len(result.Succeeded))
	}
	// Archive members keep the archive's internal order
	if result.Succeeded[0].FileName != "beta.pdf" || result.Succeeded[1].FileName != "alpha.pdf" {
		t.Errorf("member order = %v, want beta.pdf then alpha.pdf", result.Succeeded)
	}

	key := result.Succeeded[0].ID + "_beta.pdf"
	if ok, _ := blobs.Exists(t.Context(), key); !ok {
		t.Errorf("raw bytes not stored under key %q", key)
	}
}

func TestIngestMalformedArchiveRejectsBatch(t *testing.T) {
	docs := newFakeDocStore()
	svc := newTestIngestService(docs, newFakeBlobStore(), &fakeExtractor{}, nil, nil)

	_, err := svc.Ingest(t.Context(), []BatchFile{
		{Name: "broken.zip", Data: []byte("this is not a zip")},
	}, JobContext{})
	if err == nil {
		t.Fatal("expected a validation error for a malformed archive")
	}
	if docs.count() != 0 {
		t.Error("no records may be created for a rejected batch")
	}
}

func TestIngestMailFailureDoesNotFailDocument(t *testing.T) {
	docs := newFakeDocStore()
	notifier := &fakeNotifier{err: errors.New("mail relay down")}
	extractor := &fakeExtractor{fields: testFields("Carol", "carol@example.com")}
	svc := newTestIngestService(docs, newFakeBlobStore(), extractor, nil, notifier)

	result, err := svc.Ingest(t.Context(), []BatchFile{
		{Name: "carol.pdf", Data: []byte("pdf-carol")},
	}, JobContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.calls != 1 {
		t.Errorf("notifier calls = %d, want 1", notifier.calls)
	}
	if len(result.Succeeded) != 1 || len(result.Failed) != 0 {
		t.Errorf("mail failure must stay best-effort: %+v", result)
	}
}

func TestIngestMergesExtractionAndEnrichment(t *testing.T) {
	docs := newFakeDocStore()
	profile := &domain.ExternalProfile{FetchStatus: domain.FetchStatusSuccess, Statistics: &domain.ProfileStats{}}
	jobs := newFakeJobStore()
	svc := NewIngestService(
		docs,
		jobs,
		newFakeBlobStore(),
		&fakeLinkExtractor{links: []string{"https://github.com/dave", "mailto:dave@example.com"}},
		&fakeExtractor{fields: testFields("Dave", "dave@example.com")},
		&fakeEnricher{profile: profile},
		nil,
		nil,
	)

	result, err := svc.Ingest(t.Context(), []BatchFile{
		{Name: "dave.pdf", Data: []byte("pdf-dave")},
	}, JobContext{Division: "Engineering"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := docs.GetByID(t.Context(), result.Succeeded[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if doc.CandidateName != "Dave" {
		t.Errorf("candidate name = %q, want Dave", doc.CandidateName)
	}
	if doc.Division != "Engineering" {
		t.Errorf("division = %q, want Engineering", doc.Division)
	}
	if len(doc.Links.Profiles.GitHub) != 1 || len(doc.Links.Emails) != 1 {
		t.Errorf("classified links not merged: %+v", doc.Links)
	}
	if !doc.GitHubData.Usable() {
		t.Error("enrichment result not merged into the record")
	}
}
