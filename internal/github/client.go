// Package github talks to the GitHub REST API and turns profile,
// repository, and event data into the enrichment statistics attached to a
// document.
package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/C-Senanayake/CVision/internal/domain"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	defaultTimeout = 10 * time.Second

	defaultMaxRepos  = 100
	defaultMaxEvents = 100
)

var (
	// ErrUserNotFound signals that the username does not exist. The
	// profile fetch short-circuits the whole aggregation on this error.
	ErrUserNotFound = errors.New("github user not found")

	// ErrRateLimited signals an exhausted request quota. Handled like any
	// other fetch error for scoring, but kept distinguishable for logs.
	ErrRateLimited = errors.New("github API rate limit exceeded")
)

// Config holds GitHub client configuration.
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	MaxRepos  int
	MaxEvents int
}

// Client is a GitHub REST API client. Requests without a token share the
// unauthenticated 60 req/hour quota; supply a token for real workloads.
type Client struct {
	http      *resty.Client
	baseURL   string
	maxRepos  int
	maxEvents int
}

// NewClient creates a GitHub client.
// Parameters:
//   - cfg: client configuration; zero values fall back to defaults.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRepos := cfg.MaxRepos
	if maxRepos <= 0 {
		maxRepos = defaultMaxRepos
	}
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/vnd.github+json")
	client.SetHeader("X-GitHub-Api-Version", apiVersion)
	if cfg.Token != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.Token)
	}

	return &Client{
		http:      client,
		baseURL:   baseURL,
		maxRepos:  maxRepos,
		maxEvents: maxEvents,
	}
}

// userResponse is the wire shape of GET /users/{username}.
type userResponse struct {
	Login           string `json:"login"`
	Name            string `json:"name"`
	AvatarURL       string `json:"avatar_url"`
	Bio             string `json:"bio"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Email           string `json:"email"`
	Blog            string `json:"blog"`
	TwitterUsername string `json:"twitter_username"`
	PublicRepos     int    `json:"public_repos"`
	PublicGists     int    `json:"public_gists"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	Hireable        bool   `json:"hireable"`
	HTMLURL         string `json:"html_url"`
}

// repoResponse is the wire shape of one entry of GET /users/{username}/repos.
type repoResponse struct {
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Homepage        string   `json:"homepage"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	WatchersCount   int      `json:"watchers_count"`
	ForksCount      int      `json:"forks_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	PushedAt        string   `json:"pushed_at"`
	Size            int      `json:"size"`
	Topics          []string `json:"topics"`
	Fork            bool     `json:"fork"`
	Archived        bool     `json:"archived"`
}

// eventResponse is the wire shape of one entry of GET /users/{username}/events/public.
type eventResponse struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
	Public bool `json:"public"`
}

// GetUserProfile fetches the profile for a username. This call gates the
// whole aggregation: ErrUserNotFound and ErrRateLimited are returned as
// sentinel errors so callers can classify the terminal state.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - username: GitHub username.
// Returns:
//   - *domain.GitHubProfile: profile summary on success.
//   - error: sentinel or wrapped error on failure.
func (c *Client) GetUserProfile(ctx context.Context, username string) (*domain.GitHubProfile, error) {
	var user userResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&user).
		Get(c.baseURL + "/users/" + username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %q: %w", username, err)
	}

	switch {
	case resp.StatusCode() == 404:
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	case resp.StatusCode() == 403 || resp.StatusCode() == 429:
		return nil, ErrRateLimited
	case resp.StatusCode() != 200:
		return nil, fmt.Errorf("github API error: HTTP %d", resp.StatusCode())
	}

	return &domain.GitHubProfile{
		Username:        user.Login,
		Name:            user.Name,
		AvatarURL:       user.AvatarURL,
		Bio:             user.Bio,
		Company:         user.Company,
		Location:        user.Location,
		Email:           user.Email,
		Blog:            user.Blog,
		TwitterUsername: user.TwitterUsername,
		PublicRepos:     user.PublicRepos,
		PublicGists:     user.PublicGists,
		Followers:       user.Followers,
		Following:       user.Following,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
		Hireable:        user.Hireable,
		ProfileURL:      user.HTMLURL,
	}, nil
}

// GetUserRepositories fetches the user's public repositories, most
// recently updated first, bounded by the configured maximum.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - username: GitHub username.
// Returns:
//   - []domain.GitHubRepository: fetched repositories.
//   - error: non-nil if the request fails or returns a non-200 status.
func (c *Client) GetUserRepositories(ctx context.Context, username string) ([]domain.GitHubRepository, error) {
	perPage := c.maxRepos
	if perPage > 100 {
		perPage = 100
	}

	var repos []repoResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"per_page":  fmt.Sprintf("%d", perPage),
			"sort":      "updated",
			"direction": "desc",
		}).
		SetResult(&repos).
		Get(c.baseURL + "/users/" + username + "/repos")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for %q: %w", username, err)
	}
	if resp.StatusCode() == 403 || resp.StatusCode() == 429 {
		return nil, ErrRateLimited
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("github API error: HTTP %d", resp.StatusCode())
	}

	out := make([]domain.GitHubRepository, 0, len(repos))
	for _, repo := range repos {
		out = append(out, domain.GitHubRepository{
			Name:            repo.Name,
			FullName:        repo.FullName,
			Description:     repo.Description,
			HTMLURL:         repo.HTMLURL,
			Homepage:        repo.Homepage,
			Language:        repo.Language,
			StargazersCount: repo.StargazersCount,
			WatchersCount:   repo.WatchersCount,
			ForksCount:      repo.ForksCount,
			OpenIssuesCount: repo.OpenIssuesCount,
			CreatedAt:       repo.CreatedAt,
			UpdatedAt:       repo.UpdatedAt,
			PushedAt:        repo.PushedAt,
			Size:            repo.Size,
			Topics:          repo.Topics,
			IsFork:          repo.Fork,
			Archived:        repo.Archived,
		})
	}
	return out, nil
}

// GetUserEvents fetches the user's recent public activity events, newest
// first, bounded by the configured maximum.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - username: GitHub username.
// Returns:
//   - []domain.GitHubEvent: fetched events.
//   - error: non-nil if the request fails or returns a non-200 status.
func (c *Client) GetUserEvents(ctx context.Context, username string) ([]domain.GitHubEvent, error) {
	perPage := c.maxEvents
	if perPage > 100 {
		perPage = 100
	}

	var events []eventResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("per_page", fmt.Sprintf("%d", perPage)).
		SetResult(&events).
		Get(c.baseURL + "/users/" + username + "/events/public")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events for %q: %w", username, err)
	}
	if resp.StatusCode() == 403 || resp.StatusCode() == 429 {
		return nil, ErrRateLimited
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("github API error: HTTP %d", resp.StatusCode())
	}

	out := make([]domain.GitHubEvent, 0, len(events))
	for _, event := range events {
		out = append(out, domain.GitHubEvent{
			Type:      event.Type,
			CreatedAt: event.CreatedAt,
			Repo:      event.Repo.Name,
			Public:    event.Public,
		})
	}
	return out, nil
}

// rateLimitResponse is the wire shape of GET /rate_limit.
type rateLimitResponse struct {
	Resources struct {
		Core struct {
			Limit     int   `json:"limit"`
			Remaining int   `json:"remaining"`
			Used      int   `json:"used"`
			Reset     int64 `json:"reset"`
		} `json:"core"`
	} `json:"resources"`
}

// CheckRateLimit reads the current core request quota.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.RateLimit: quota snapshot.
//   - error: non-nil if the request fails.
func (c *Client) CheckRateLimit(ctx context.Context) (*domain.RateLimit, error) {
	var limits rateLimitResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&limits).
		Get(c.baseURL + "/rate_limit")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate limit: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("github API error: HTTP %d", resp.StatusCode())
	}

	core := limits.Resources.Core
	return &domain.RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Used:      core.Used,
		Reset:     core.Reset,
	}, nil
}
