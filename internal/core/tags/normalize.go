package tags

import (
	"sort"
	"strings"
)

const (
	// MaxTagLength is the longest stored tag name, in characters
	MaxTagLength = 50

	// MaxTagsPerPost caps the normalized tag set of a single post
	MaxTagsPerPost = 10
)

// NormalizeOne canonicalizes a single raw tag: trims whitespace, strips every
// leading '#', trims again and lower-cases the result.
func NormalizeOne(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimLeft(name, "#")
	name = strings.TrimSpace(name)
	return strings.ToLower(name)
}

// NormalizeMany normalizes raw tags into a deduplicated set.
// Blank entries are dropped and names longer than MaxTagLength are truncated
// before deduplication. The result is sorted; callers enforce MaxTagsPerPost.
func NormalizeMany(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))

	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}

		name := truncate(NormalizeOne(r), MaxTagLength)
		if name == "" {
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
