package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	tracedQuerySpaces   = regexp.MustCompile(`\s+`)
	tracedQueryLiterals = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// formatDBQueryForTrace collapses whitespace and masks quoted literals so span
// attributes never carry user values.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	query = tracedQueryLiterals.ReplaceAllString(query, "'?'")
	query = tracedQuerySpaces.ReplaceAllString(query, " ")
	if len(query) > maxTracedQueryLength {
		return query[:maxTracedQueryLength] + "..."
	}
	return query
}
