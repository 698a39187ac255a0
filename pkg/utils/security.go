package utils

import (
	"net/url"
	"strings"
)

// MatchOrigin reports whether origin matches the configured pattern.
// Supported patterns: "*", exact origins, "**.example.com" (apex +
// subdomains) and "*.example.com" (subdomains only).
func MatchOrigin(origin, pattern string) bool {
	if pattern == "*" {
		return true
	}

	if origin == pattern {
		return true
	}

	if strings.Contains(pattern, "**.") {
		base := strings.Replace(pattern, "**.", "", 1)

		if origin == base {
			return true
		}

		domainPart := removeProtocol(base)
		if strings.HasSuffix(origin, "."+domainPart) {
			return true
		}
	}

	if strings.Contains(pattern, "*.") {
		parts := strings.Split(pattern, "*")
		if len(parts) == 2 {
			prefix := parts[0]
			suffix := parts[1]

			if strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
				middle := origin[len(prefix) : len(origin)-len(suffix)]
				if !strings.Contains(middle, "/") {
					return true
				}
			}
		}
	}

	return false
}

// MatchAnyOrigin checks origin against a whitelist of patterns.
func MatchAnyOrigin(origin string, patterns []string) bool {
	if origin == "" {
		return false
	}

	cleanOrigin := getCleanOrigin(origin)
	for _, pattern := range patterns {
		if MatchOrigin(cleanOrigin, pattern) {
			return true
		}
	}
	return false
}

func getCleanOrigin(originURL string) string {
	u, err := url.Parse(originURL)
	if err != nil {
		return originURL
	}

	if u.Scheme != "" && u.Host != "" {
		return u.Scheme + "://" + u.Host
	}

	return originURL
}

func removeProtocol(urlStr string) string {
	urlStr = strings.TrimPrefix(urlStr, "https://")
	return strings.TrimPrefix(urlStr, "http://")
}
