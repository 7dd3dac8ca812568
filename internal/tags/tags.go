// Package tags pulls inline #hashtags out of free text.
package tags

import (
	"regexp"
	"strings"
)

// hashtagPattern matches #tag words (e.g., #work, #q1-report).
var hashtagPattern = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_-]+)`)

// Extract returns the hashtags in text, lowercased and without the leading
// #. Returns a deduplicated list preserving the order of first occurrence.
func Extract(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var result []string
	for _, m := range matches {
		tag := strings.ToLower(m[1])
		if seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}

// Merge appends the hashtags found in text to existing, skipping tags
// already present (case-insensitively).
func Merge(existing []string, text string) []string {
	out := existing
	for _, tag := range Extract(text) {
		dup := false
		for _, e := range out {
			if strings.EqualFold(e, tag) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, tag)
		}
	}
	return out
}
