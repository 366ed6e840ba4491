package github

import (
	"math"
	"sort"
	"time"

	"github.com/C-Senanayake/CVision/internal/domain"
)

// activeWindow is the recency window for the "is active" flag.
const activeWindow = 30 * 24 * time.Hour

// AnalyzeLanguages builds the language histogram over the fetched
// repository list. Repositories without a language are ignored; ties are
// broken by first-seen order.
func AnalyzeLanguages(repos []domain.GitHubRepository) domain.LanguageStats {
	counts := make(map[string]int)
	var order []string
	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		if _, seen := counts[repo.Language]; !seen {
			order = append(order, repo.Language)
		}
		counts[repo.Language]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	stats := domain.LanguageStats{
		Languages:      make([]domain.LanguageUsage, 0, len(order)),
		TotalLanguages: len(order),
	}
	for _, lang := range order {
		stats.Languages = append(stats.Languages, domain.LanguageUsage{
			Language:  lang,
			RepoCount: counts[lang],
		})
	}
	if len(order) > 0 {
		stats.PrimaryLanguage = order[0]
	}
	return stats
}

// AnalyzeRepositories computes aggregate statistics over the fetched
// repository list: star/fork/watcher totals, the original-vs-fork split,
// the top 5 repositories by stars, and the first 20 unique topics.
func AnalyzeRepositories(repos []domain.GitHubRepository) domain.RepositoryStats {
	stats := domain.RepositoryStats{
		TotalRepositories: len(repos),
		TopRepositories:   []domain.TopRepository{},
		Topics:            []string{},
	}

	seenTopics := make(map[string]struct{})
	for _, repo := range repos {
		stats.TotalStars += repo.StargazersCount
		stats.TotalRepositoryForks += repo.ForksCount
		stats.TotalWatchers += repo.WatchersCount
		if !repo.IsFork {
			stats.TotalOriginalRepos++
		}
		for _, topic := range repo.Topics {
			if _, dup := seenTopics[topic]; dup {
				continue
			}
			seenTopics[topic] = struct{}{}
			if len(stats.Topics) < 20 {
				stats.Topics = append(stats.Topics, topic)
			}
		}
	}
	stats.TotalForks = len(repos) - stats.TotalOriginalRepos

	if len(repos) > 0 {
		avg := float64(stats.TotalStars) / float64(len(repos))
		stats.AverageStarsPerRepo = math.Round(avg*100) / 100
	}

	byStars := make([]domain.GitHubRepository, len(repos))
	copy(byStars, repos)
	sort.SliceStable(byStars, func(i, j int) bool {
		return byStars[i].StargazersCount > byStars[j].StargazersCount
	})
	top := byStars
	if len(top) > 5 {
		top = top[:5]
	}
	for _, repo := range top {
		stats.TopRepositories = append(stats.TopRepositories, domain.TopRepository{
			Name:     repo.Name,
			Stars:    repo.StargazersCount,
			Forks:    repo.ForksCount,
			Language: repo.Language,
			URL:      repo.HTMLURL,
		})
	}

	return stats
}

// AnalyzeActivity computes the event-type histogram, the one-shot span in
// days between the newest and oldest fetched events, and whether the most
// recent event falls inside the 30-day recency window. Events are expected
// newest-first, as the API returns them.
func AnalyzeActivity(events []domain.GitHubEvent, now time.Time) domain.ActivityStats {
	stats := domain.ActivityStats{
		TotalEvents: len(events),
		EventTypes:  make(map[string]int),
	}
	if len(events) == 0 {
		return stats
	}

	for _, event := range events {
		eventType := event.Type
		if eventType == "" {
			eventType = "Unknown"
		}
		stats.EventTypes[eventType]++
	}

	latest, okLatest := parseTimestamp(events[0].CreatedAt)
	oldest, okOldest := parseTimestamp(events[len(events)-1].CreatedAt)
	if okLatest && okOldest {
		stats.RecentActivityDays = int(latest.Sub(oldest).Hours() / 24)
	}
	if okLatest {
		stats.IsActive = now.Sub(latest) <= activeWindow
	}
	stats.LastActivity = events[0].CreatedAt

	return stats
}

// AccountAge converts a profile creation timestamp into an age in whole
// days and in years rounded to one decimal.
func AccountAge(createdAt string, now time.Time) (int, float64) {
	created, ok := parseTimestamp(createdAt)
	if !ok {
		return 0, 0
	}
	days := int(now.Sub(created).Hours() / 24)
	years := math.Round(float64(days)/365*10) / 10
	return days, years
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
