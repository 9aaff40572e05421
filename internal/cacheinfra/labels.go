package cacheinfra

import (
	"strings"
	"unicode"
)

// classLabel turns a key class such as "likedPosts" into a Prometheus
// friendly label ("liked_posts"). Anything that is not a letter or digit
// collapses into a single underscore.
func classLabel(class string) string {
	if class == "" {
		return "unknown"
	}

	runes := []rune(class)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	underscore := false
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && !underscore && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			underscore = false
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			underscore = false
		default:
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
				underscore = true
			}
		}
	}

	label := strings.Trim(b.String(), "_")
	if label == "" {
		return "unknown"
	}
	return label
}
