package reader

import (
	"regexp"
	"strings"
)

var (
	// Text extraction splits hyphenated words across line breaks; rejoin
	// "word-\nfragment" into "wordfragment".
	hyphenBreak = regexp.MustCompile(`-\n(\w)`)

	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// cleanupExtracted normalizes common extraction artifacts: end-of-line
// hyphenation, runs of spaces and tabs, and excessive blank lines.
func cleanupExtracted(text string) string {
	text = hyphenBreak.ReplaceAllString(text, "${1}")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// trimLines strips leading and trailing whitespace from every line.
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
