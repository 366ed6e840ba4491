package domain

import "time"

// FetchStatus is the terminal classification of a GitHub profile fetch.
type FetchStatus string

const (
	FetchStatusSuccess  FetchStatus = "success"
	FetchStatusNotFound FetchStatus = "user_not_found"
	FetchStatusError    FetchStatus = "error"
)

// GitHubProfile is the profile summary block of an enrichment result.
type GitHubProfile struct {
	Username        string `json:"username"`
	Name            string `json:"name,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Company         string `json:"company,omitempty"`
	Location        string `json:"location,omitempty"`
	Email           string `json:"email,omitempty"`
	Blog            string `json:"blog,omitempty"`
	TwitterUsername string `json:"twitter_username,omitempty"`
	PublicRepos     int    `json:"public_repos"`
	PublicGists     int    `json:"public_gists"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
	Hireable        bool   `json:"hireable,omitempty"`
	ProfileURL      string `json:"profile_url"`
}

// GitHubRepository is one repository of the fetched repository list.
type GitHubRepository struct {
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description,omitempty"`
	HTMLURL         string   `json:"html_url"`
	Homepage        string   `json:"homepage,omitempty"`
	Language        string   `json:"language,omitempty"`
	StargazersCount int      `json:"stargazers_count"`
	WatchersCount   int      `json:"watchers_count"`
	ForksCount      int      `json:"forks_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
	PushedAt        string   `json:"pushed_at,omitempty"`
	Size            int      `json:"size"`
	Topics          []string `json:"topics,omitempty"`
	IsFork          bool     `json:"is_fork"`
	Archived        bool     `json:"archived"`
}

// GitHubEvent is one public activity event.
type GitHubEvent struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at,omitempty"`
	Repo      string `json:"repo,omitempty"`
	Public    bool   `json:"public"`
}

// LanguageUsage is the repository count for one programming language.
type LanguageUsage struct {
	Language  string `json:"language"`
	RepoCount int    `json:"repo_count"`
}

// LanguageStats is the derived language histogram.
type LanguageStats struct {
	Languages       []LanguageUsage `json:"languages"`
	TotalLanguages  int             `json:"total_languages"`
	PrimaryLanguage string          `json:"primary_language,omitempty"`
}

// TopRepository is a star-ranked repository summary.
type TopRepository struct {
	Name     string `json:"name"`
	Stars    int    `json:"stars"`
	Forks    int    `json:"forks"`
	Language string `json:"language,omitempty"`
	URL      string `json:"url"`
}

// RepositoryStats holds aggregate statistics over the fetched repository
// list.
type RepositoryStats struct {
	TotalRepositories    int             `json:"total_repositories"`
	TotalOriginalRepos   int             `json:"total_original_repos"`
	TotalForks           int             `json:"total_forks"`
	TotalStars           int             `json:"total_stars"`
	TotalRepositoryForks int             `json:"total_repository_forks"`
	TotalWatchers        int             `json:"total_watchers"`
	AverageStarsPerRepo  float64         `json:"average_stars_per_repo"`
	TopRepositories      []TopRepository `json:"top_repositories"`
	Topics               []string        `json:"topics"`
}

// ActivityStats holds aggregate statistics over the fetched event page.
type ActivityStats struct {
	TotalEvents        int            `json:"total_events"`
	RecentActivityDays int            `json:"recent_activity_days"`
	EventTypes         map[string]int `json:"event_types"`
	IsActive           bool           `json:"is_active"`
	LastActivity       string         `json:"last_activity,omitempty"`
}

// ProfileStats bundles the derived statistic blocks of an enrichment.
type ProfileStats struct {
	Repositories    RepositoryStats `json:"repositories"`
	Languages       LanguageStats   `json:"languages"`
	Activity        ActivityStats   `json:"activity"`
	AccountAgeDays  int             `json:"account_age_days"`
	AccountAgeYears float64         `json:"account_age_years"`
}

// ExternalProfile is the outcome of one GitHub fetch for one username.
// Exactly one of the following holds: FetchStatus is success and Statistics
// is populated, or FetchStatus is a failure status and Statistics is nil
// with Error explaining why.
type ExternalProfile struct {
	Profile      *GitHubProfile     `json:"profile"`
	Statistics   *ProfileStats      `json:"statistics"`
	Repositories []GitHubRepository `json:"repositories"`
	FetchStatus  FetchStatus        `json:"fetch_status"`
	Error        string             `json:"error,omitempty"`
	FetchedAt    time.Time          `json:"fetched_at"`
}

// Usable reports whether the enrichment carries statistics the scoring
// step can consume.
func (p *ExternalProfile) Usable() bool {
	return p != nil && p.FetchStatus == FetchStatusSuccess && p.Statistics != nil
}

// RateLimit is the directory service's quota snapshot.
type RateLimit struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Used      int   `json:"used"`
	Reset     int64 `json:"reset"`
}
