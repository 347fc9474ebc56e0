package analyze

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"bookscan/internal/model"
)

func mustRun(t *testing.T, text string, opts ...Option) *model.AnalysisResult {
	t.Helper()
	result, err := New(model.SourceText, text, opts...).Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return result
}

func TestAnalyze_BasicCounts(t *testing.T) {
	text := "Hello world. This is a test."
	result := mustRun(t, text)

	if result.WordCount != 6 {
		t.Errorf("expected 6 words, got %d", result.WordCount)
	}
	if result.SentenceCount != 2 {
		t.Errorf("expected 2 sentences, got %d", result.SentenceCount)
	}
	if result.CharacterCount != utf8.RuneCountInString(text) {
		t.Errorf("expected character count %d, got %d", utf8.RuneCountInString(text), result.CharacterCount)
	}
	if result.ParagraphCount != 1 {
		t.Errorf("expected 1 paragraph, got %d", result.ParagraphCount)
	}
}

func TestAnalyze_WordCount(t *testing.T) {
	result := mustRun(t, "one two three four five")
	if result.WordCount != 5 {
		t.Errorf("expected 5 words, got %d", result.WordCount)
	}
}

func TestAnalyze_CharFrequencyOrder(t *testing.T) {
	result := mustRun(t, "aaa bb c")

	want := []model.FrequencyEntry{
		{Token: "a", Count: 3},
		{Token: "b", Count: 2},
		{Token: "c", Count: 1},
	}
	if !reflect.DeepEqual(result.CharFrequency, want) {
		t.Errorf("expected %v, got %v", want, result.CharFrequency)
	}
}

func TestAnalyze_CharFrequencyMatchesAlphabeticCount(t *testing.T) {
	text := "Call me Ishmael. Some years ago, never mind how long precisely!\n\nIt was 1851."
	result := mustRun(t, text)

	sum := 0
	for _, e := range result.CharFrequency {
		sum += e.Count
	}

	alphabetic := 0
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) {
			alphabetic++
		}
	}
	if sum != alphabetic {
		t.Errorf("char frequency sums to %d, want %d alphabetic runes", sum, alphabetic)
	}
	if sum > result.CharacterCountNoSpaces {
		t.Errorf("char frequency sum %d exceeds no-space count %d", sum, result.CharacterCountNoSpaces)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		_, err := New(model.SourceText, text).Run()
		if err == nil {
			t.Fatalf("expected error for %q", text)
		}

		var emptyErr *model.EmptyFileError
		if !errors.As(err, &emptyErr) {
			t.Errorf("expected EmptyFileError for %q, got %T: %v", text, err, err)
		}
		if !errors.Is(err, model.ErrAnalyzer) {
			t.Errorf("expected error to match ErrAnalyzer, got %v", err)
		}
	}
}

func TestAnalyze_StopWordExclusion(t *testing.T) {
	result := mustRun(t, "the cat sat on the mat")

	tokens := make(map[string]int)
	for _, e := range result.WordFrequency {
		tokens[e.Token] = e.Count
	}

	for _, excluded := range []string{"the", "on"} {
		if _, ok := tokens[excluded]; ok {
			t.Errorf("expected %q to be excluded from word frequency", excluded)
		}
	}
	for _, kept := range []string{"cat", "sat", "mat"} {
		if tokens[kept] != 1 {
			t.Errorf("expected %q with count 1, got %d", kept, tokens[kept])
		}
	}
}

func TestAnalyze_StopWordsIncluded(t *testing.T) {
	result := mustRun(t, "the cat sat on the mat", WithStopWords())

	tokens := make(map[string]int)
	for _, e := range result.WordFrequency {
		tokens[e.Token] = e.Count
	}
	if tokens["the"] != 2 {
		t.Errorf("expected \"the\" with count 2, got %d", tokens["the"])
	}
	if tokens["on"] != 1 {
		t.Errorf("expected \"on\" with count 1, got %d", tokens["on"])
	}
}

func TestAnalyze_ShortWordsExcluded(t *testing.T) {
	// Length <= 2 drops words even when they are not stop words.
	result := mustRun(t, "ox ox ox wandering wandering")

	for _, e := range result.WordFrequency {
		if e.Token == "ox" {
			t.Errorf("expected short word \"ox\" to be excluded")
		}
	}
	if len(result.WordFrequency) != 1 || result.WordFrequency[0].Token != "wandering" {
		t.Errorf("unexpected word frequency: %v", result.WordFrequency)
	}
}

func TestAnalyze_WordFrequencyTieOrder(t *testing.T) {
	// Equal counts keep first-seen order.
	result := mustRun(t, "zebra apple zebra apple mango")

	want := []string{"zebra", "apple", "mango"}
	if len(result.WordFrequency) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), result.WordFrequency)
	}
	for i, token := range want {
		if result.WordFrequency[i].Token != token {
			t.Errorf("position %d: expected %q, got %q", i, token, result.WordFrequency[i].Token)
		}
	}
}

func TestAnalyze_TopWordsIsPrefix(t *testing.T) {
	var sb strings.Builder
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i, w := range words {
		for j := 0; j <= i; j++ {
			sb.WriteString(w)
			sb.WriteString(" ")
		}
	}
	result := mustRun(t, sb.String())

	if len(result.TopWords) > len(result.WordFrequency) {
		t.Fatalf("top words longer than frequency list")
	}
	for i, e := range result.TopWords {
		if result.WordFrequency[i] != e {
			t.Errorf("top words is not a prefix at %d: %v vs %v", i, e, result.WordFrequency[i])
		}
	}
}

func TestAnalyze_Contractions(t *testing.T) {
	result := mustRun(t, "Don't stop. Don't ever stop.")
	if result.WordCount != 6 {
		t.Errorf("expected contractions as single words (6 total), got %d", result.WordCount)
	}
}

func TestAnalyze_VocabularyRichness(t *testing.T) {
	result := mustRun(t, "Call me Ishmael. Some years ago, never mind how long, I went to sea again and again.")

	if result.UniqueWordCount > result.WordCount {
		t.Errorf("unique count %d exceeds total %d", result.UniqueWordCount, result.WordCount)
	}
	want := float64(result.UniqueWordCount) / float64(result.WordCount)
	if math.Abs(result.VocabularyRichness-want) > 1e-9 {
		t.Errorf("richness %f, want %f", result.VocabularyRichness, want)
	}
	if result.VocabularyRichness < 0 || result.VocabularyRichness > 1 {
		t.Errorf("richness %f outside [0,1]", result.VocabularyRichness)
	}
}

func TestAnalyze_ReadingTime(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("chapter ", DefaultReadingSpeedWPM))
	result := mustRun(t, text)

	if result.ReadingTimeMinutes <= 0.9 || result.ReadingTimeMinutes >= 1.1 {
		t.Errorf("expected ~1 minute for %d words, got %f", result.WordCount, result.ReadingTimeMinutes)
	}
}

func TestAnalyze_Paragraphs(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"one paragraph only", 1},
		{"first\n\nsecond", 2},
		{"first\n \t \nsecond\n\n\n\nthird", 3},
		{"padded\n\n\n", 1},
	}
	for _, tt := range tests {
		result := mustRun(t, tt.text)
		if result.ParagraphCount != tt.want {
			t.Errorf("%q: expected %d paragraphs, got %d", tt.text, tt.want, result.ParagraphCount)
		}
	}
}

func TestAnalyze_NoWordsNoDivisionByZero(t *testing.T) {
	// Punctuation-only input survives the empty check but produces no
	// tokens and no sentences; every ratio must be 0, not NaN.
	result := mustRun(t, "... !!! ???")

	if result.WordCount != 0 {
		t.Fatalf("expected 0 words, got %d", result.WordCount)
	}
	for name, v := range map[string]float64{
		"average_word_length":     result.AverageWordLength,
		"average_sentence_length": result.AverageSentenceLength,
		"vocabulary_richness":     result.VocabularyRichness,
	} {
		if v != 0 {
			t.Errorf("%s: expected 0, got %f", name, v)
		}
		if math.IsNaN(v) {
			t.Errorf("%s is NaN", name)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog. It barked!\n\nNothing else happened."

	first := mustRun(t, text)
	second := mustRun(t, text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two analyses of the same text differ:\n%+v\n%+v", first, second)
	}

	// Repeated Run on one instance returns the memoized result.
	a := New(model.SourceText, text)
	r1, _ := a.Run()
	r2, _ := a.Run()
	if r1 != r2 {
		t.Errorf("expected memoized result on repeated Run")
	}
}

func TestAnalyze_ReadingSpeedOverride(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 100))
	result := mustRun(t, text, WithReadingSpeed(100))

	if math.Abs(result.ReadingTimeMinutes-1.0) > 1e-9 {
		t.Errorf("expected 1 minute at 100 wpm, got %f", result.ReadingTimeMinutes)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"don't", []string{"don't"}},
		{"abc123def", []string{"abc", "def"}},
		{"42", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
