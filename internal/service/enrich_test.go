package service

import (
	"context"
	"testing"

	"github.com/C-Senanayake/CVision/internal/domain"
)

// countingFetcher records usernames it was asked for.
type countingFetcher struct {
	usernames []string
	profile   *domain.ExternalProfile
}

func (c *countingFetcher) Fetch(_ context.Context, username string) *domain.ExternalProfile {
	c.usernames = append(c.usernames, username)
	return c.profile
}

func TestEnrichSkipsWithoutURL(t *testing.T) {
	fetcher := &countingFetcher{}
	svc := NewEnrichService(fetcher)

	if got := svc.Enrich(t.Context(), testFields("Alice", "")); got != nil {
		t.Errorf("Enrich with no GitHub URL = %+v, want nil", got)
	}
	if len(fetcher.usernames) != 0 {
		t.Error("no fetch may happen without a URL")
	}
}

func TestEnrichSkipsUnresolvableURL(t *testing.T) {
	fetcher := &countingFetcher{}
	svc := NewEnrichService(fetcher)

	var fields domain.ExtractedFields
	fields.PersonalInfo.GitHub = "https://github.com/login"

	if got := svc.Enrich(t.Context(), fields); got != nil {
		t.Errorf("Enrich with a chrome URL = %+v, want nil", got)
	}
	if len(fetcher.usernames) != 0 {
		t.Error("no fetch may happen for an unresolvable URL")
	}
}

func TestEnrichResolvesAndFetches(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "full URL", input: "https://github.com/alice", want: "alice"},
		{name: "handle", input: "@bob", want: "bob"},
		{name: "no scheme", input: "github.com/carol", want: "carol"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := &domain.ExternalProfile{FetchStatus: domain.FetchStatusSuccess, Statistics: &domain.ProfileStats{}}
			fetcher := &countingFetcher{profile: profile}
			svc := NewEnrichService(fetcher)

			var fields domain.ExtractedFields
			fields.PersonalInfo.GitHub = tc.input

			got := svc.Enrich(t.Context(), fields)
			if got != profile {
				t.Errorf("Enrich must pass the fetch outcome through unchanged")
			}
			if len(fetcher.usernames) != 1 || fetcher.usernames[0] != tc.want {
				t.Errorf("fetched usernames = %v, want [%s]", fetcher.usernames, tc.want)
			}
		})
	}
}
