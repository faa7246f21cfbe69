package planner

import (
	"regexp"
	"strings"
)

// courseCodePattern matches a department code followed by a number, e.g. "CS 441".
var courseCodePattern = regexp.MustCompile(`\b([A-Z]+\s+\d+)\b`)

// separatorPattern splits a raw title on the first hyphen or colon.
var separatorPattern = regexp.MustCompile(`\s*[-:]\s*`)

// ExtractCourseCode derives a short display name from a raw course title.
// It first looks for a letters+digits course code ("CS 441 - Software
// Engineering" yields "CS 441"); failing that it takes the text before the
// first hyphen or colon; failing that it returns the raw title unchanged.
func ExtractCourseCode(raw string) string {
	if raw == "" {
		return raw
	}

	if m := courseCodePattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}

	parts := separatorPattern.Split(raw, 2)
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		return strings.TrimSpace(parts[0])
	}

	return raw
}
