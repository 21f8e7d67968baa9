package domain

import "strings"

// SplitCommaList parses comma-separated free text into trimmed, non-empty
// entries, preserving input order. Duplicates are kept as entered; the form
// never deduplicated tags and callers render whatever the coach typed.
func SplitCommaList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	out := make([]string, 0, 4)
	for part := range strings.SplitSeq(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
