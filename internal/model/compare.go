package model

// Comparison is the result of comparing several analyzed documents.
type Comparison struct {
	Books    []BookSummary `json:"books"`
	Rankings Rankings      `json:"rankings"`
	Averages Averages      `json:"averages"`
}

// BookSummary is the per-document slice of a comparison.
type BookSummary struct {
	Title              string  `json:"title"`
	WordCount          int     `json:"word_count"`
	VocabularyRichness float64 `json:"vocabulary_richness"`
	ReadingTimeMinutes float64 `json:"reading_time_minutes"`
	AverageWordLength  float64 `json:"average_word_length"`
}

// Rankings lists document titles ordered best-first for each metric.
type Rankings struct {
	ByLength             []string `json:"by_length"`               // descending word count
	ByVocabularyRichness []string `json:"by_vocabulary_richness"`  // descending richness
	ByComplexity         []string `json:"by_complexity"`           // descending avg word length
}

// Averages holds metric means across the compared set.
type Averages struct {
	WordCount          float64 `json:"word_count"`
	VocabularyRichness float64 `json:"vocabulary_richness"`
	AverageWordLength  float64 `json:"average_word_length"`
}
