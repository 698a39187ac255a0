package tarot

import (
	"regexp"
	"strings"
)

// Handles follow the Twitter format: 1-15 characters, alphanumeric,
// underscores and hyphens, with an optional leading @.
var handleRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,15}$`)

// ValidateHandle reports whether raw is an acceptable handle after
// stripping a leading @ and surrounding whitespace.
func ValidateHandle(raw string) bool {
	return handleRegex.MatchString(cleanHandle(raw))
}

// NormalizeHandle strips a leading @, trims whitespace and lowercases.
// The result is the cache key and the input to both deterministic
// hashes. Idempotent: NormalizeHandle(NormalizeHandle(x)) == NormalizeHandle(x).
func NormalizeHandle(raw string) string {
	return strings.ToLower(cleanHandle(raw))
}

func cleanHandle(raw string) string {
	h := strings.TrimSpace(raw)
	h = strings.TrimPrefix(h, "@")
	return strings.TrimSpace(h)
}
