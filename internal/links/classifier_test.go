package links

import (
	"reflect"
	"testing"

	"github.com/C-Senanayake/CVision/internal/domain"
)

func TestClassifyBuckets(t *testing.T) {
	testCases := []struct {
		name   string
		link   string
		bucket func(c domain.ClassifiedLinks) []string
	}{
		{
			name:   "github profile",
			link:   "https://github.com/alice",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Profiles.GitHub },
		},
		{
			name:   "github repository",
			link:   "https://github.com/alice/myrepo",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Repositories },
		},
		{
			name:   "mailto unaltered",
			link:   "mailto:a@b.com",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Emails },
		},
		{
			name:   "linkedin profile",
			link:   "https://www.linkedin.com/in/alice",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Profiles.LinkedIn },
		},
		{
			name:   "linkedin non-profile path",
			link:   "https://www.linkedin.com/jobs/view/123",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Other },
		},
		{
			name:   "medium profile",
			link:   "https://medium.com/@alice",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Profiles.Medium },
		},
		{
			name:   "hackerrank certificate",
			link:   "https://www.hackerrank.com/certificates/abc123",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Certificates },
		},
		{
			name:   "coursera certificate",
			link:   "https://coursera.org/verify/XYZ",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Certificates },
		},
		{
			name:   "drive certificate",
			link:   "https://drive.google.com/file/d/abc/view",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Certificates },
		},
		{
			name:   "personal website",
			link:   "https://alice.dev/about",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Profiles.Website },
		},
		{
			name:   "github subdomain falls through to other",
			link:   "https://gist.github.com/alice/abc",
			bucket: func(c domain.ClassifiedLinks) []string { return c.Other },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify([]string{tc.link})
			bucket := tc.bucket(got)
			if len(bucket) != 1 || bucket[0] != tc.link {
				t.Errorf("expected %q in its bucket, got %+v", tc.link, got)
			}
		})
	}
}

func TestClassifyBareGitHubDropped(t *testing.T) {
	got := Classify([]string{"https://github.com"})

	if len(got.Profiles.GitHub) != 0 {
		t.Errorf("bare github.com should not be a profile, got %v", got.Profiles.GitHub)
	}
	if len(got.Repositories) != 0 {
		t.Errorf("bare github.com should not be a repository, got %v", got.Repositories)
	}
	if len(got.Other) != 0 {
		t.Errorf("bare github.com should be dropped entirely, got %v", got.Other)
	}
}

func TestClassifyNormalization(t *testing.T) {
	got := Classify([]string{"  https://github.com/al\nice  "})

	want := "https://github.com/alice"
	if len(got.Profiles.GitHub) != 1 || got.Profiles.GitHub[0] != want {
		t.Errorf("expected normalized link %q, got %+v", want, got.Profiles.GitHub)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	input := []string{
		"https://github.com/zed",
		"https://github.com/alice",
		"mailto:a@b.com",
		"https://github.com/alice/myrepo",
		"https://bob.example.org",
		"not a url at all",
	}
	reversed := make([]string, len(input))
	for i, link := range input {
		reversed[len(input)-1-i] = link
	}

	first := Classify(input)
	second := Classify(reversed)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("classification not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestClassifyDeduplicates(t *testing.T) {
	got := Classify([]string{
		"https://github.com/alice",
		" https://github.com/alice",
		"https://github.com/alice\n",
	})

	if len(got.Profiles.GitHub) != 1 {
		t.Errorf("expected a single deduplicated profile link, got %v", got.Profiles.GitHub)
	}
}

func TestClassifyMalformedToOther(t *testing.T) {
	link := "::not-a-link::"
	got := Classify([]string{link})

	if len(got.Other) != 1 || got.Other[0] != link {
		t.Errorf("malformed link should pass through as other, got %+v", got)
	}
}
