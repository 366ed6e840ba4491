package github

import (
	"testing"
	"time"

	"github.com/C-Senanayake/CVision/internal/domain"
)

func TestAnalyzeRepositories(t *testing.T) {
	repos := []domain.GitHubRepository{
		{Name: "alpha", StargazersCount: 5, ForksCount: 1, WatchersCount: 2, Language: "Go"},
		{Name: "beta", StargazersCount: 0, ForksCount: 0, WatchersCount: 0, Language: "Go", IsFork: true},
		{Name: "gamma", StargazersCount: 10, ForksCount: 3, WatchersCount: 4, Language: "Python"},
	}

	stats := AnalyzeRepositories(repos)

	if stats.TotalStars != 15 {
		t.Errorf("total stars = %d, want 15", stats.TotalStars)
	}
	if stats.TotalOriginalRepos != 2 {
		t.Errorf("original repos = %d, want 2", stats.TotalOriginalRepos)
	}
	if stats.TotalForks != 1 {
		t.Errorf("forks = %d, want 1", stats.TotalForks)
	}
	if stats.AverageStarsPerRepo != 5.0 {
		t.Errorf("average stars = %v, want 5.0", stats.AverageStarsPerRepo)
	}

	wantOrder := []string{"gamma", "alpha", "beta"}
	if len(stats.TopRepositories) != 3 {
		t.Fatalf("top repositories length = %d, want 3", len(stats.TopRepositories))
	}
	for i, want := range wantOrder {
		if stats.TopRepositories[i].Name != want {
			t.Errorf("top[%d] = %q, want %q", i, stats.TopRepositories[i].Name, want)
		}
	}
}

func TestAnalyzeRepositoriesEmpty(t *testing.T) {
	stats := AnalyzeRepositories(nil)

	if stats.AverageStarsPerRepo != 0 {
		t.Errorf("average stars for empty list = %v, want 0", stats.AverageStarsPerRepo)
	}
	if stats.TotalRepositories != 0 || stats.TotalStars != 0 {
		t.Errorf("unexpected totals: %+v", stats)
	}
}

func TestAnalyzeRepositoriesTopicsCap(t *testing.T) {
	var repos []domain.GitHubRepository
	for i := 0; i < 5; i++ {
		repos = append(repos, domain.GitHubRepository{
			Name:   "repo",
			Topics: []string{"go", "api", "cli", "web", "db", "ml"},
		})
	}
	repos = append(repos, domain.GitHubRepository{
		Topics: []string{
			"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10",
			"t11", "t12", "t13", "t14", "t15", "t16", "t17", "t18",
		},
	})

	stats := AnalyzeRepositories(repos)

	if len(stats.Topics) != 20 {
		t.Errorf("topics length = %d, want cap of 20", len(stats.Topics))
	}
	// Dedup keeps the first-seen instance of a repeated topic.
	if stats.Topics[0] != "go" {
		t.Errorf("topics[0] = %q, want %q", stats.Topics[0], "go")
	}
}

func TestAnalyzeLanguages(t *testing.T) {
	repos := []domain.GitHubRepository{
		{Language: "Go"},
		{Language: "Python"},
		{Language: "Go"},
		{Language: ""},
		{Language: "Rust"},
	}

	stats := AnalyzeLanguages(repos)

	if stats.PrimaryLanguage != "Go" {
		t.Errorf("primary language = %q, want Go", stats.PrimaryLanguage)
	}
	if stats.TotalLanguages != 3 {
		t.Errorf("total languages = %d, want 3", stats.TotalLanguages)
	}
	if stats.Languages[0].Language != "Go" || stats.Languages[0].RepoCount != 2 {
		t.Errorf("languages[0] = %+v, want Go with 2 repos", stats.Languages[0])
	}
	// Tie between Python and Rust is broken by first-seen order.
	if stats.Languages[1].Language != "Python" {
		t.Errorf("languages[1] = %q, want Python (first-seen tie break)", stats.Languages[1].Language)
	}
}

func TestAnalyzeActivity(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	events := []domain.GitHubEvent{
		{Type: "PushEvent", CreatedAt: "2026-01-25T10:00:00Z"},
		{Type: "PushEvent", CreatedAt: "2026-01-20T10:00:00Z"},
		{Type: "IssuesEvent", CreatedAt: "2026-01-05T10:00:00Z"},
	}

	stats := AnalyzeActivity(events, now)

	if stats.TotalEvents != 3 {
		t.Errorf("total events = %d, want 3", stats.TotalEvents)
	}
	if stats.EventTypes["PushEvent"] != 2 || stats.EventTypes["IssuesEvent"] != 1 {
		t.Errorf("event types = %v", stats.EventTypes)
	}
	if !stats.IsActive {
		t.Error("latest event is 7 days old, want is_active = true")
	}
	if stats.RecentActivityDays != 20 {
		t.Errorf("recent activity days = %d, want 20", stats.RecentActivityDays)
	}
	if stats.LastActivity != "2026-01-25T10:00:00Z" {
		t.Errorf("last activity = %q", stats.LastActivity)
	}
}

func TestAnalyzeActivityStale(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	events := []domain.GitHubEvent{
		{Type: "PushEvent", CreatedAt: "2025-11-01T10:00:00Z"},
	}

	stats := AnalyzeActivity(events, now)

	if stats.IsActive {
		t.Error("latest event is 3 months old, want is_active = false")
	}
}

func TestAnalyzeActivityEmpty(t *testing.T) {
	stats := AnalyzeActivity(nil, time.Now())

	if stats.TotalEvents != 0 || stats.IsActive || stats.RecentActivityDays != 0 {
		t.Errorf("unexpected stats for no events: %+v", stats)
	}
}

func TestAccountAge(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	days, years := AccountAge("2020-01-01T00:00:00Z", now)

	if days != 2192 {
		t.Errorf("days = %d, want 2192", days)
	}
	if years != 6.0 {
		t.Errorf("years = %v, want 6.0", years)
	}
}

func TestAccountAgeUnparseable(t *testing.T) {
	days, years := AccountAge("yesterday", time.Now())

	if days != 0 || years != 0 {
		t.Errorf("unparseable timestamp should yield zero age, got %d days %v years", days, years)
	}
}
