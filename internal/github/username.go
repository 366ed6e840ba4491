package github

import (
	"regexp"
	"strings"
)

var (
	// Anchored so lookalike hosts such as notgithub.com never match.
	profileURLRe   = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([a-zA-Z0-9-]+)`)
	bareUsernameRe = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// reservedSegments are github.com path segments that are site chrome, not
// usernames.
var reservedSegments = map[string]struct{}{
	"login":    {},
	"signup":   {},
	"explore":  {},
	"features": {},
	"pricing":  {},
}

// ResolveUsername extracts a GitHub username from candidate-supplied
// input. Accepted forms: a full profile URL with or without scheme and
// www, a bare github.com/username, an @handle, or a bare username token.
// Parameters:
//   - input: raw profile URL or handle from the extracted document.
// Returns:
//   - string: resolved username, empty when unresolvable.
//   - bool: true if a username was resolved.
func ResolveUsername(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	if strings.HasPrefix(input, "@") {
		handle := input[1:]
		if handle == "" {
			return "", false
		}
		return handle, true
	}

	if match := profileURLRe.FindStringSubmatch(input); match != nil {
		if !isReserved(match[1]) {
			return match[1], true
		}
	}

	if bareUsernameRe.MatchString(input) && !isReserved(input) {
		return input, true
	}

	return "", false
}

func isReserved(segment string) bool {
	_, ok := reservedSegments[strings.ToLower(segment)]
	return ok
}
