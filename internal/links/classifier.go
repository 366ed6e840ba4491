// Package links classifies raw hyperlink strings discovered in a document
// into semantic buckets. Classification is a pure function of its input.
package links

import (
	"net/url"
	"sort"
	"strings"

	"github.com/C-Senanayake/CVision/internal/domain"
)

// certificateProviders are host substrings that mark a link as pointing at
// a certificate. The "linkedin.com/learning" entry is compared against a
// bare host and can never match; it is kept for parity with the deployed
// classifier.
var certificateProviders = []string{
	"hackerrank",
	"coursera",
	"udemy",
	"linkedin.com/learning",
}

// Classify normalizes and buckets a set of raw links. Buckets are
// deduplicated and sorted so the result is deterministic for a fixed
// input set. Malformed entries land in the other bucket; a bare
// github.com link lands nowhere.
func Classify(rawLinks []string) domain.ClassifiedLinks {
	var out domain.ClassifiedLinks

	seen := make(map[string]struct{}, len(rawLinks))
	for _, raw := range rawLinks {
		link := normalize(raw)
		if link == "" {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		classifyOne(link, &out)
	}

	sortBuckets(&out)
	return out
}

// normalize trims surrounding whitespace and strips embedded newlines and
// spaces that PDF text extraction tends to inject into long URLs.
func normalize(raw string) string {
	link := strings.TrimSpace(raw)
	link = strings.ReplaceAll(link, "\n", "")
	link = strings.ReplaceAll(link, "\r", "")
	link = strings.ReplaceAll(link, " ", "")
	return link
}

func classifyOne(link string, out *domain.ClassifiedLinks) {
	if strings.HasPrefix(strings.ToLower(link), "mailto:") {
		out.Emails = append(out.Emails, link)
		return
	}

	host, segments, ok := parseHost(link)
	if !ok {
		out.Other = append(out.Other, link)
		return
	}

	switch {
	case host == "github.com":
		switch {
		case len(segments) == 1:
			out.Profiles.GitHub = append(out.Profiles.GitHub, link)
		case len(segments) >= 2:
			out.Repositories = append(out.Repositories, link)
		}
		// Bare github.com carries no candidate signal and is dropped.
	case strings.Contains(host, "linkedin.com"):
		if len(segments) > 0 && segments[0] == "in" {
			out.Profiles.LinkedIn = append(out.Profiles.LinkedIn, link)
		} else {
			out.Other = append(out.Other, link)
		}
	case strings.Contains(host, "medium.com"):
		out.Profiles.Medium = append(out.Profiles.Medium, link)
	case isCertificateHost(host):
		out.Certificates = append(out.Certificates, link)
	case host != "" && !hasProfileSuffix(host):
		out.Profiles.Website = append(out.Profiles.Website, link)
	default:
		out.Other = append(out.Other, link)
	}
}

// parseHost derives a lowercased host and path segments from a raw link,
// tolerating a missing scheme. ok is false when no host can be derived.
func parseHost(link string) (string, []string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", nil, false
	}
	if u.Host == "" && !strings.Contains(link, "://") {
		u, err = url.Parse("https://" + link)
		if err != nil {
			return "", nil, false
		}
	}
	if u.Host == "" {
		return "", nil, false
	}

	host := strings.ToLower(u.Hostname())
	var segments []string
	for _, seg := range strings.Split(u.EscapedPath(), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return host, segments, true
}

func isCertificateHost(host string) bool {
	if strings.Contains(host, "drive.google.com") {
		return true
	}
	for _, provider := range certificateProviders {
		if strings.Contains(host, provider) {
			return true
		}
	}
	return false
}

func hasProfileSuffix(host string) bool {
	return strings.HasSuffix(host, "github.com") ||
		strings.HasSuffix(host, "linkedin.com") ||
		strings.HasSuffix(host, "medium.com")
}

func sortBuckets(out *domain.ClassifiedLinks) {
	sort.Strings(out.Profiles.GitHub)
	sort.Strings(out.Profiles.LinkedIn)
	sort.Strings(out.Profiles.Medium)
	sort.Strings(out.Profiles.Website)
	sort.Strings(out.Repositories)
	sort.Strings(out.Certificates)
	sort.Strings(out.Emails)
	sort.Strings(out.Other)
}
