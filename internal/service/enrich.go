package service

import (
	"context"
	"strings"

	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/C-Senanayake/CVision/internal/github"
	"github.com/C-Senanayake/CVision/internal/logger"
)

// ProfileFetcher is the aggregation surface the orchestrator needs.
// *github.Aggregator satisfies it.
type ProfileFetcher interface {
	Fetch(ctx context.Context, username string) *domain.ExternalProfile
}

// EnrichService drives GitHub enrichment for one extraction result. It
// never returns an error upward; every internal failure degrades to a nil
// return or an ExternalProfile carrying an error status.
type EnrichService struct {
	fetcher ProfileFetcher
}

// NewEnrichService creates a new enrichment orchestrator.
// Parameters:
//   - fetcher: profile aggregation backend.
//
// Returns:
//   - *EnrichService: initialized orchestrator.
func NewEnrichService(fetcher ProfileFetcher) *EnrichService {
	return &EnrichService{fetcher: fetcher}
}

// Enrich pulls the candidate's GitHub URL from the extraction result,
// resolves a username, and fetches the profile. A nil return means
// enrichment is unavailable for this document, which is a valid outcome.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fields: structured extraction result for one document.
//
// Returns:
//   - *domain.ExternalProfile: fetch outcome, or nil when no URL is
//     present or no username can be resolved from it.
func (s *EnrichService) Enrich(ctx context.Context, fields domain.ExtractedFields) *domain.ExternalProfile {
	raw := strings.TrimSpace(fields.PersonalInfo.GitHub)
	if raw == "" {
		logger.CtxDebug(ctx, "No GitHub URL in extracted fields, skipping enrichment")
		return nil
	}

	username, ok := github.ResolveUsername(raw)
	if !ok {
		// Unresolvable input is distinct from a failed fetch: no request
		// is made, but the offending value is kept in the logs.
		logger.CtxWarn(ctx, "Could not resolve a GitHub username from %q", raw)
		return nil
	}

	ctx = logger.WithField(ctx, logger.FieldUsername, username)
	return s.fetcher.Fetch(ctx, username)
}
