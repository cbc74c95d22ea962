package utils

import (
	"strconv"
	"strings"
)

// SanitizeText strips tag-like markup and trims surrounding whitespace from
// free-text input before it reaches storage. Escaping for output is the JSON
// encoder's job; this only removes embedded markup.
func SanitizeText(s string) string {
	return strings.TrimSpace(stripTags(s))
}

// stripTags removes <...> runs. An unclosed "<" swallows the rest of the
// string, matching PHP strip_tags behavior.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseIntDefault parses numeric query input, falling back on garbage.
func ParseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// FirstNonEmpty returns the first trimmed non-empty value.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
