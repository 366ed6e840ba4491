package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/C-Senanayake/CVision/internal/domain"
)

// fakeDocStore is an in-memory DocumentStore.
type fakeDocStore struct {
	mu   sync.Mutex
	docs map[string]*domain.Document
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: make(map[string]*domain.Document)}
}

func (f *fakeDocStore) Create(_ context.Context, doc *domain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocStore) Update(_ context.Context, doc *domain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocStore) GetByID(_ context.Context, id string) (*domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s not found", id)
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeDocStore) ListByJobID(_ context.Context, jobID string) ([]domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Document
	for _, doc := range f.docs {
		if doc.JobID == jobID && !doc.IsDeleted {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (f *fakeDocStore) SetScores(_ context.Context, id string, scores domain.ScoreMap, finalMark float64, selected bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return fmt.Errorf("document %s not found", id)
	}
	doc.Comparison = scores
	doc.FinalMark = finalMark
	doc.MarkGenerated = true
	doc.Selected = selected
	return nil
}

func (f *fakeDocStore) SetMailStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return fmt.Errorf("document %s not found", id)
	}
	doc.MailStatus = status
	return nil
}

func (f *fakeDocStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// fakeJobStore is an in-memory JobStore.
type fakeJobStore struct {
	jobs map[string]*domain.JobPosting
}

func newFakeJobStore(jobs ...*domain.JobPosting) *fakeJobStore {
	s := &fakeJobStore{jobs: make(map[string]*domain.JobPosting)}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

func (f *fakeJobStore) GetByID(_ context.Context, id string) (*domain.JobPosting, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s not found", id)
	}
	return job, nil
}

func (f *fakeJobStore) GetByName(_ context.Context, name string) (*domain.JobPosting, error) {
	for _, job := range f.jobs {
		if job.JobName == name {
			return job, nil
		}
	}
	return nil, fmt.Errorf("job %s not found", name)
}

// fakeBlobStore is an in-memory BlobStore.
type fakeBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
	return nil
}

func (f *fakeBlobStore) Download(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blobs[key]
	return ok, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, key)
	return nil
}

func (f *fakeBlobStore) GetURL(string) string { return "" }

// fakeLinkExtractor returns a fixed link set.
type fakeLinkExtractor struct {
	links []string
}

func (f *fakeLinkExtractor) ExtractLinks([]byte) ([]string, error) {
	return f.links, nil
}

// fakeExtractor fails for file contents registered in failOn and returns
// fields for everything else.
type fakeExtractor struct {
	fields domain.ExtractedFields
	failOn map[string]bool
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, pdfData []byte, _ domain.ClassifiedLinks) (domain.ExtractedFields, error) {
	f.calls++
	if f.failOn[string(pdfData)] {
		return domain.ExtractedFields{}, fmt.Errorf("upstream extraction service returned garbage")
	}
	return f.fields, nil
}

// fakeEnricher returns a fixed profile.
type fakeEnricher struct {
	profile *domain.ExternalProfile
}

func (f *fakeEnricher) Enrich(context.Context, domain.ExtractedFields) *domain.ExternalProfile {
	return f.profile
}

// fakeScorer counts invocations.
type fakeScorer struct {
	calls int
	err   error
}

func (f *fakeScorer) ScoreDocument(_ context.Context, _ *domain.Document, _ *domain.JobPosting) error {
	f.calls++
	return f.err
}

// fakeNotifier counts invocations and optionally fails.
type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) NotifyReceived(context.Context, *domain.Document) error {
	f.calls++
	return f.err
}

// fakeOracle returns queued score maps in order, repeating the last one.
type fakeOracle struct {
	outputs []domain.ScoreMap
	calls   int
	err     error
}

func (f *fakeOracle) Score(context.Context, *ScoreRequest) (domain.ScoreMap, error) {
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls
	if idx >= len(f.outputs) {
		idx = len(f.outputs) - 1
	}
	f.calls++
	return f.outputs[idx], nil
}

// fakeSender records sent messages.
type fakeSender struct {
	mails   int
	invites int
	err     error
	lastTo  string
}

func (f *fakeSender) SendMail(_ context.Context, to, _, _ string) error {
	f.mails++
	f.lastTo = to
	return f.err
}

func (f *fakeSender) SendCalendarInvite(_ context.Context, to, _, _ string, _ *domain.InterviewEvent) error {
	f.invites++
	f.lastTo = to
	return f.err
}
