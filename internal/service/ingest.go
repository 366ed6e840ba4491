package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/C-Senanayake/CVision/internal/links"
	"github.com/C-Senanayake/CVision/internal/logger"
	"github.com/C-Senanayake/CVision/internal/storage"
)

// ErrUnsupportedFile rejects a batch containing a file that is neither a
// PDF nor a ZIP archive. Intake validation is all or nothing: nothing is
// processed when any file fails it.
var ErrUnsupportedFile = errors.New("only .pdf and .zip files are supported")

// BatchFile is one uploaded file of an ingestion request.
type BatchFile struct {
	Name string
	Data []byte
}

// JobContext carries the job attribution applied to every document of a
// batch.
type JobContext struct {
	JobID    string
	JobName  string
	Division string
}

// IngestedDocument identifies one successfully processed document.
type IngestedDocument struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
}

// IngestFailure records one document that failed during processing. When
// the failure happened after placeholder creation, ID points at the
// partial record left behind.
type IngestFailure struct {
	ID       string `json:"id,omitempty"`
	FileName string `json:"fileName"`
	Reason   string `json:"reason"`
}

// IngestResult is the outcome of one batch, in encounter order.
type IngestResult struct {
	Succeeded []IngestedDocument `json:"succeeded"`
	Failed    []IngestFailure    `json:"failed"`
}

// IngestService drives the per-document pipeline: placeholder create, blob
// put, link extraction and classification, structured extraction,
// enrichment, merge, best-effort mail, synchronous scoring. One bad
// document never aborts the batch.
type IngestService struct {
	docs      DocumentStore
	jobs      JobStore
	blobs     storage.BlobStore
	linkExt   LinkExtractor
	extractor Extractor
	enricher  Enricher
	scorer    Scorer
	notifier  Notifier
}

// NewIngestService creates a new batch ingestion service.
// Parameters:
//   - docs: document record store.
//   - jobs: job posting store.
//   - blobs: blob store for raw PDF bytes.
//   - linkExt: hyperlink discovery backend.
//   - extractor: structured extraction backend.
//   - enricher: GitHub enrichment orchestrator.
//   - scorer: score aggregation backend; nil skips the scoring stage.
//   - notifier: acknowledgement mail sender; nil skips the mail stage.
//
// Returns:
//   - *IngestService: initialized service.
func NewIngestService(
	docs DocumentStore,
	jobs JobStore,
	blobs storage.BlobStore,
	linkExt LinkExtractor,
	extractor Extractor,
	enricher Enricher,
	scorer Scorer,
	notifier Notifier,
) *IngestService {
	return &IngestService{
		docs:      docs,
		jobs:      jobs,
		blobs:     blobs,
		linkExt:   linkExt,
		extractor: extractor,
		enricher:  enricher,
		scorer:    scorer,
		notifier:  notifier,
	}
}

// Ingest validates and processes one uploaded batch.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - files: uploaded files, PDFs or ZIP archives of PDFs.
//   - jobCtx: job attribution for every document in the batch.
//
// Returns:
//   - *IngestResult: succeeded and failed documents in encounter order.
//   - error: ErrUnsupportedFile or a malformed-archive error before any
//     processing starts; document-local failures never surface here.
func (s *IngestService) Ingest(ctx context.Context, files []BatchFile, jobCtx JobContext) (*IngestResult, error) {
	for _, f := range files {
		if !hasSuffixFold(f.Name, ".pdf") && !hasSuffixFold(f.Name, ".zip") {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, f.Name)
		}
	}

	// Expand archives up front so a broken ZIP rejects the batch before
	// anything is persisted.
	docs, err := expandBatch(files)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldBatchID: batchID,
		logger.FieldJobID:   jobCtx.JobID,
	})
	logger.CtxInfo(ctx, "Starting batch ingestion: %d documents", len(docs))

	result := &IngestResult{}
	for _, item := range docs {
		id, err := s.processDocument(ctx, item, jobCtx)
		if err != nil {
			logger.CtxError(ctx, "Document %s failed: %v", item.Name, err)
			result.Failed = append(result.Failed, IngestFailure{
				ID:       id,
				FileName: item.Name,
				Reason:   err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, IngestedDocument{ID: id, FileName: item.Name})
	}

	logger.CtxInfo(ctx, "Batch ingestion finished: %d succeeded, %d failed",
		len(result.Succeeded), len(result.Failed))
	return result, nil
}

// expandBatch flattens archives into their PDF members, preserving
// encounter order and each archive's internal member order. Non-PDF
// archive members are ignored.
func expandBatch(files []BatchFile) ([]BatchFile, error) {
	var docs []BatchFile
	for _, f := range files {
		if hasSuffixFold(f.Name, ".pdf") {
			docs = append(docs, f)
			continue
		}

		r, err := zip.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
		if err != nil {
			return nil, fmt.Errorf("invalid ZIP archive %s: %w", f.Name, err)
		}
		for _, member := range r.File {
			if member.FileInfo().IsDir() || !hasSuffixFold(member.Name, ".pdf") {
				continue
			}
			data, err := readZipMember(member)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s from archive %s: %w", member.Name, f.Name, err)
			}
			docs = append(docs, BatchFile{Name: baseName(member.Name), Data: data})
		}
	}
	return docs, nil
}

func readZipMember(member *zip.File) ([]byte, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// processDocument runs all pipeline stages for one document. The returned
// ID is non-empty once the placeholder record exists, even on failure.
func (s *IngestService) processDocument(ctx context.Context, item BatchFile, jobCtx JobContext) (string, error) {
	doc := &domain.Document{
		ID:       uuid.New().String(),
		CVName:   item.Name,
		JobID:    jobCtx.JobID,
		JobName:  jobCtx.JobName,
		Division: jobCtx.Division,
	}
	ctx = logger.WithField(ctx, logger.FieldDocumentID, doc.ID)

	// (a) placeholder record; a later failure leaves it behind as a
	// documented partial artifact
	if err := s.docs.Create(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to create document record: %w", err)
	}

	// (b) raw bytes under the {id}_{originalName} key
	if err := s.blobs.Upload(ctx, doc.BlobKey(), bytes.NewReader(item.Data), int64(len(item.Data)), "application/pdf"); err != nil {
		return doc.ID, fmt.Errorf("failed to store document bytes: %w", err)
	}

	// (c) hyperlink discovery
	rawLinks, err := s.linkExt.ExtractLinks(item.Data)
	if err != nil {
		return doc.ID, fmt.Errorf("failed to extract hyperlinks: %w", err)
	}

	// (d) classification
	classified := links.Classify(rawLinks)

	// (e) structured extraction
	fields, err := s.extractor.Extract(ctx, item.Data, classified)
	if err != nil {
		return doc.ID, fmt.Errorf("structured extraction failed: %w", err)
	}

	// (f) enrichment, never an error
	var profile *domain.ExternalProfile
	if s.enricher != nil {
		profile = s.enricher.Enrich(ctx, fields)
	}

	// (g) merge into the placeholder
	doc.Links = classified
	doc.ResumeContent = fields
	doc.CandidateName = fields.PersonalInfo.Name
	doc.GitHubData = profile
	if err := s.docs.Update(ctx, doc); err != nil {
		return doc.ID, fmt.Errorf("failed to update document record: %w", err)
	}

	// (h) best-effort acknowledgement mail
	if s.notifier != nil {
		if err := s.notifier.NotifyReceived(ctx, doc); err != nil {
			logger.CtxWarn(ctx, "Acknowledgement mail failed: %v", err)
		}
	}

	// (i) synchronous scoring on the merged record
	if s.scorer != nil && jobCtx.JobID != "" {
		job, err := s.jobs.GetByID(ctx, jobCtx.JobID)
		if err != nil {
			return doc.ID, fmt.Errorf("failed to load job for scoring: %w", err)
		}
		if err := s.scorer.ScoreDocument(ctx, doc, job); err != nil {
			return doc.ID, fmt.Errorf("scoring failed: %w", err)
		}
	}

	return doc.ID, nil
}

func hasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), suffix)
}

// baseName strips any archive directory prefix from a member path.
func baseName(name string) string {
	if idx := strings.LastIndexAny(name, "/\\"); idx != -1 {
		return name[idx+1:]
	}
	return name
}
