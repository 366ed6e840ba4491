package github

import (
	"context"
	"errors"
	"time"

	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/C-Senanayake/CVision/internal/logger"
	"golang.org/x/sync/errgroup"
)

// persistedRepoLimit caps the repository list stored on the document,
// independent of the top-5-by-stars summary.
const persistedRepoLimit = 10

// Aggregator fetches and analyzes a complete GitHub profile for one
// username. The profile fetch gates everything: a not-found or failed
// profile lookup terminates the aggregation with nil statistics.
// Repository and event fetches degrade to empty lists on failure.
type Aggregator struct {
	client *Client
}

// NewAggregator creates an Aggregator on top of a GitHub client.
// Parameters:
//   - client: GitHub REST client.
// Returns:
//   - *Aggregator: initialized aggregator.
func NewAggregator(client *Client) *Aggregator {
	return &Aggregator{client: client}
}

// Fetch retrieves and analyzes the complete profile for a username. It
// never returns an error: the outcome is always encoded in the returned
// ExternalProfile's FetchStatus.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - username: GitHub username to aggregate.
// Returns:
//   - *domain.ExternalProfile: terminal fetch outcome.
func (a *Aggregator) Fetch(ctx context.Context, username string) *domain.ExternalProfile {
	now := time.Now().UTC()

	profile, err := a.client.GetUserProfile(ctx, username)
	if err != nil {
		status := domain.FetchStatusError
		if errors.Is(err, ErrUserNotFound) {
			status = domain.FetchStatusNotFound
		}
		if errors.Is(err, ErrRateLimited) {
			logger.CtxWarn(ctx, "GitHub quota exhausted while fetching %q", username)
		} else {
			logger.CtxWarn(ctx, "GitHub profile fetch failed for %q: %v", username, err)
		}
		return &domain.ExternalProfile{
			Repositories: []domain.GitHubRepository{},
			FetchStatus:  status,
			Error:        err.Error(),
			FetchedAt:    now,
		}
	}

	var (
		repos  []domain.GitHubRepository
		events []domain.GitHubEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := a.client.GetUserRepositories(gctx, username)
		if err != nil {
			logger.CtxWarn(gctx, "Repository fetch failed for %q, continuing without repos: %v", username, err)
			return nil
		}
		repos = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := a.client.GetUserEvents(gctx, username)
		if err != nil {
			logger.CtxWarn(gctx, "Event fetch failed for %q, continuing without events: %v", username, err)
			return nil
		}
		events = fetched
		return nil
	})
	// Both goroutines swallow their errors; Wait only orders completion.
	_ = g.Wait()

	ageDays, ageYears := AccountAge(profile.CreatedAt, now)
	stats := &domain.ProfileStats{
		Repositories:    AnalyzeRepositories(repos),
		Languages:       AnalyzeLanguages(repos),
		Activity:        AnalyzeActivity(events, now),
		AccountAgeDays:  ageDays,
		AccountAgeYears: ageYears,
	}

	persisted := repos
	if len(persisted) > persistedRepoLimit {
		persisted = persisted[:persistedRepoLimit]
	}

	return &domain.ExternalProfile{
		Profile:      profile,
		Statistics:   stats,
		Repositories: persisted,
		FetchStatus:  domain.FetchStatusSuccess,
		FetchedAt:    now,
	}
}
