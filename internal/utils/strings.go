// Package utils holds small helpers shared by config, hooks and todo.
package utils

import "strings"

// SplitAndTrim splits s by sep and trims each part. Empty parts are dropped.
func SplitAndTrim(s, sep string) []string {
	result := []string{}
	for part := range strings.SplitSeq(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// NormalizeName lowercases and trims a backend or command name.
func NormalizeName(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// NormalizeList normalizes every name and drops empty and repeated entries,
// keeping the first occurrence. Returns nil if nothing is left.
func NormalizeList(names []string) []string {
	var result []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		normalized := NormalizeName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}
	return result
}
