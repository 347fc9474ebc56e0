// Package analyze turns a document's text into an AnalysisResult: word,
// character, sentence and paragraph counts, frequency distributions,
// vocabulary richness and an estimated reading time.
package analyze

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"bookscan/internal/model"
)

// DefaultReadingSpeedWPM is the words-per-minute constant behind the
// reading time estimate.
const DefaultReadingSpeedWPM = 238

// topWordCount is how many word-frequency entries land in TopWords.
const topWordCount = 20

var (
	// A word is a maximal run of ASCII letters and apostrophes. Digits and
	// punctuation never join a token; contractions stay in one piece.
	wordPattern = regexp.MustCompile(`[a-zA-Z']+`)

	sentencePattern  = regexp.MustCompile(`[.!?]+`)
	paragraphPattern = regexp.MustCompile(`\n\s*\n`)
)

// Analyzer computes statistics for a single document. Tokenization and the
// final result are memoized per instance, so repeated Run calls are cheap.
// An Analyzer is not safe for concurrent use; run one per document.
type Analyzer struct {
	source       string
	text         string
	includeStops bool
	readingWPM   int
	logger       *zap.Logger

	words  []string
	result *model.AnalysisResult
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStopWords keeps stop words and short words in the word-frequency
// distribution.
func WithStopWords() Option {
	return func(a *Analyzer) { a.includeStops = true }
}

// WithReadingSpeed overrides the words-per-minute constant.
func WithReadingSpeed(wpm int) Option {
	return func(a *Analyzer) {
		if wpm > 0 {
			a.readingWPM = wpm
		}
	}
}

// WithLogger attaches a logger. The engine only logs at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer for the given source identifier and text.
// Use model.SourceText as the identifier for raw string input.
func New(source, text string, opts ...Option) *Analyzer {
	a := &Analyzer{
		source:     source,
		text:       text,
		readingWPM: DefaultReadingSpeedWPM,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run computes the full AnalysisResult. The first call does the work;
// later calls return the memoized result.
func (a *Analyzer) Run() (*model.AnalysisResult, error) {
	if a.result != nil {
		return a.result, nil
	}

	if strings.TrimSpace(a.text) == "" {
		return nil, &model.EmptyFileError{Source: a.source}
	}

	words := a.tokens()
	wordCount := len(words)

	unique := make(map[string]struct{}, wordCount)
	letterTotal := 0
	for _, w := range words {
		unique[w] = struct{}{}
		letterTotal += len(w)
	}
	uniqueCount := len(unique)

	sentenceCount := countSentences(a.text)
	paragraphCount := countParagraphs(a.text)

	var avgWordLen, avgSentenceLen, richness float64
	if wordCount > 0 {
		avgWordLen = float64(letterTotal) / float64(wordCount)
		richness = float64(uniqueCount) / float64(wordCount)
	}
	if sentenceCount > 0 {
		avgSentenceLen = float64(wordCount) / float64(sentenceCount)
	}

	wordFreq := a.countWords(words)
	top := wordFreq
	if len(top) > topWordCount {
		top = top[:topWordCount]
	}

	a.result = &model.AnalysisResult{
		Source:                 a.source,
		Title:                  extractTitle(a.source, a.text),
		WordCount:              wordCount,
		UniqueWordCount:        uniqueCount,
		CharacterCount:         utf8.RuneCountInString(a.text),
		CharacterCountNoSpaces: countNoSpaces(a.text),
		SentenceCount:          sentenceCount,
		ParagraphCount:         paragraphCount,
		AverageWordLength:      avgWordLen,
		AverageSentenceLength:  avgSentenceLen,
		VocabularyRichness:     richness,
		ReadingTimeMinutes:     float64(wordCount) / float64(a.readingWPM),
		CharFrequency:          countCharacters(a.text),
		WordFrequency:          wordFreq,
		TopWords:               top,
	}

	a.logger.Debug("analysis complete",
		zap.String("source", a.source),
		zap.Int("words", wordCount),
		zap.Int("sentences", sentenceCount))

	return a.result, nil
}

// tokens returns the lowercased word list, computing it on first use.
func (a *Analyzer) tokens() []string {
	if a.words == nil {
		a.words = Tokenize(a.text)
	}
	return a.words
}

// Tokenize extracts the lowercased word list from text.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// countWords builds the word-frequency distribution: descending count,
// ties kept in first-seen order. Unless stop words were requested, tokens
// in the stop-word set or of length <= 2 are dropped before counting.
func (a *Analyzer) countWords(words []string) []model.FrequencyEntry {
	counts := make(map[string]int)
	var order []string

	for _, w := range words {
		if !a.includeStops {
			if IsStopWord(w) || len(w) <= 2 {
				continue
			}
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	entries := make([]model.FrequencyEntry, 0, len(order))
	for _, w := range order {
		entries = append(entries, model.FrequencyEntry{Token: w, Count: counts[w]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// countCharacters counts every letter in the lowercased text. Ordering
// matches countWords: descending count, ties in first-seen order.
func countCharacters(text string) []model.FrequencyEntry {
	counts := make(map[rune]int)
	var order []rune

	for _, r := range strings.ToLower(text) {
		if !unicode.IsLetter(r) {
			continue
		}
		if _, seen := counts[r]; !seen {
			order = append(order, r)
		}
		counts[r]++
	}

	entries := make([]model.FrequencyEntry, 0, len(order))
	for _, r := range order {
		entries = append(entries, model.FrequencyEntry{Token: string(r), Count: counts[r]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// countNoSpaces counts runes excluding spaces, newlines and tabs.
func countNoSpaces(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case ' ', '\n', '\t':
		default:
			n++
		}
	}
	return n
}

// countSentences counts segments between runs of sentence terminators
// that still contain non-whitespace.
func countSentences(text string) int {
	n := 0
	for _, s := range sentencePattern.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// countParagraphs counts blank-line separated segments that still contain
// non-whitespace.
func countParagraphs(text string) int {
	n := 0
	for _, p := range paragraphPattern.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
