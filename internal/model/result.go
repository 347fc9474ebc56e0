package model

// SourceText is the source identifier used for results that were analyzed
// from a raw string rather than a file on disk.
const SourceText = "<text>"

// FrequencyEntry is a single token (or character) with its occurrence count.
// Frequency distributions are stored as ordered slices because the order is
// significant: descending count, ties broken by first occurrence in the text.
type FrequencyEntry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// AnalysisResult holds every statistic computed for a single document.
// It is built once per analysis and never mutated afterwards, with one
// exception: a Sentiment block may be attached after construction by the
// optional sentiment collaborator.
type AnalysisResult struct {
	Source string `json:"source"` // file path, or SourceText for raw input
	Title  string `json:"title"`

	WordCount              int `json:"word_count"`
	UniqueWordCount        int `json:"unique_word_count"`
	CharacterCount         int `json:"character_count"`
	CharacterCountNoSpaces int `json:"character_count_no_spaces"`
	SentenceCount          int `json:"sentence_count"`
	ParagraphCount         int `json:"paragraph_count"`

	AverageWordLength     float64 `json:"average_word_length"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
	VocabularyRichness    float64 `json:"vocabulary_richness"` // unique/total, in [0,1]
	ReadingTimeMinutes    float64 `json:"reading_time_minutes"`

	CharFrequency []FrequencyEntry `json:"char_frequency"`
	WordFrequency []FrequencyEntry `json:"word_frequency"`
	TopWords      []FrequencyEntry `json:"top_words"` // prefix of WordFrequency

	Sentiment *Sentiment `json:"sentiment,omitempty"`
}

// Options controls a single analysis invocation.
type Options struct {
	// IncludeStopWords keeps stop words and short words in the word
	// frequency distribution. Off by default.
	IncludeStopWords bool

	// IncludeSentiment asks the pipeline to run the sentiment collaborator
	// after the statistics are computed. Off by default.
	IncludeSentiment bool
}

// Sentiment is the opaque result attached by the sentiment collaborator.
// The scoring itself happens outside this module; we only carry the numbers.
type Sentiment struct {
	Polarity     float64 `json:"polarity"`     // -1 (negative) to 1 (positive)
	Subjectivity float64 `json:"subjectivity"` // 0 (objective) to 1 (subjective)
	Label        string  `json:"label"`        // "positive", "negative", "neutral"
	Provider     string  `json:"provider,omitempty"`
	Model        string  `json:"model,omitempty"`
}
