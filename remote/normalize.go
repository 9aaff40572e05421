package remote

import (
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]`)
)

// NormalizeOptions controls NormalizeDisplayName.
type NormalizeOptions struct {
	KeepCase           bool
	KeepSpaces         bool
	RemoveSpecialChars bool
}

// NormalizeDisplayName trims name and applies opts. The zero options
// lowercase the name and strip all whitespace.
func NormalizeDisplayName(name string, opts NormalizeOptions) string {
	normalized := strings.TrimSpace(name)
	if !opts.KeepCase {
		normalized = strings.ToLower(normalized)
	}
	if !opts.KeepSpaces {
		normalized = whitespace.ReplaceAllString(normalized, "")
	}
	if opts.RemoveSpecialChars {
		normalized = nonAlnum.ReplaceAllString(normalized, "")
	}
	return normalized
}

// GenerateUsername renders a display name as an @handle.
func GenerateUsername(displayName string) string {
	if normalized := NormalizeDisplayName(displayName, NormalizeOptions{}); normalized != "" {
		return "@" + normalized
	}
	return "@user"
}

// NormalizeForSearch trims and lowercases text, keeping inner spaces.
func NormalizeForSearch(text string) string {
	return NormalizeDisplayName(text, NormalizeOptions{KeepSpaces: true})
}

// MatchesSearch reports whether any field contains query once both are normalized.
func MatchesSearch(query string, fields ...string) bool {
	q := NormalizeForSearch(query)
	for _, field := range fields {
		if strings.Contains(NormalizeForSearch(field), q) {
			return true
		}
	}
	return false
}
