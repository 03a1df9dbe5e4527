package reaper

import (
	"regexp"
	"strconv"
)

var (
	bracedTokenPattern  = regexp.MustCompile(`\{([^}]+)\}`)
	quotedStringPattern = regexp.MustCompile(`"([^"]+)"`)
	integerPattern      = regexp.MustCompile(`[0-9]+`)
	fileRefPattern      = regexp.MustCompile(`FILE\s+"([^"]+)"`)
)

// extractBracedToken returns the text between the first { } pair on the line.
func extractBracedToken(line string) (string, bool) {
	m := bracedTokenPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractQuotedString returns the first non-empty double-quoted run on the line.
func extractQuotedString(line string) (string, bool) {
	m := quotedStringPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractFirstInteger returns the first contiguous decimal run on the line.
// Runs too long for int are treated as absent.
func extractFirstInteger(line string) (int, bool) {
	m := integerPattern.FindString(line)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractFileReference returns the quoted path following a FILE keyword.
func extractFileReference(line string) (string, bool) {
	m := fileRefPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
