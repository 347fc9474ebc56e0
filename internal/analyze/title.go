package analyze

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bookscan/internal/model"
)

// titleScanLines is how far into the document the title search looks.
const titleScanLines = 20

// maxTitleLength rejects lines too long to plausibly be a title.
const maxTitleLength = 100

// boilerplatePrefixes mark header lines that are never titles, matched
// case-insensitively. Project Gutenberg front matter is the usual culprit.
var boilerplatePrefixes = []string{"the project", "copyright", "title:"}

var markupChars = strings.NewReplacer("_", "", "*", "", "#", "")

var titleCaser = cases.Title(language.English)

// extractTitle scans the first lines of the text for something that looks
// like a title. When nothing qualifies it derives one from the filename.
func extractTitle(source, text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || hasBoilerplatePrefix(line) {
			continue
		}
		if utf8.RuneCountInString(line) >= maxTitleLength {
			continue
		}
		title := strings.TrimSpace(markupChars.Replace(line))
		if title == "" {
			continue
		}
		if first, _ := firstRune(title); unicode.IsUpper(first) {
			return title
		}
	}

	return titleFromSource(source)
}

func hasBoilerplatePrefix(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// titleFromSource turns a file path into a presentable title:
// "pride_and_prejudice.txt" becomes "Pride And Prejudice".
func titleFromSource(source string) string {
	if source == "" || source == model.SourceText {
		return "Untitled"
	}
	stem := filepath.Base(source)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	stem = strings.ReplaceAll(stem, "_", " ")
	return titleCaser.String(stem)
}
