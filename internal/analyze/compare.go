package analyze

import (
	"sort"

	"bookscan/internal/model"
)

// Compare builds a cross-document comparison: per-book summaries, three
// descending rankings and metric averages over the whole set.
func Compare(results []*model.AnalysisResult) *model.Comparison {
	if len(results) == 0 {
		return &model.Comparison{}
	}

	cmp := &model.Comparison{
		Books: make([]model.BookSummary, 0, len(results)),
	}

	var totalWords, totalRichness, totalWordLen float64
	for _, r := range results {
		cmp.Books = append(cmp.Books, model.BookSummary{
			Title:              r.Title,
			WordCount:          r.WordCount,
			VocabularyRichness: r.VocabularyRichness,
			ReadingTimeMinutes: r.ReadingTimeMinutes,
			AverageWordLength:  r.AverageWordLength,
		})
		totalWords += float64(r.WordCount)
		totalRichness += r.VocabularyRichness
		totalWordLen += r.AverageWordLength
	}

	cmp.Rankings = model.Rankings{
		ByLength: rankedTitles(results, func(a, b *model.AnalysisResult) bool {
			return a.WordCount > b.WordCount
		}),
		ByVocabularyRichness: rankedTitles(results, func(a, b *model.AnalysisResult) bool {
			return a.VocabularyRichness > b.VocabularyRichness
		}),
		ByComplexity: rankedTitles(results, func(a, b *model.AnalysisResult) bool {
			return a.AverageWordLength > b.AverageWordLength
		}),
	}

	n := float64(len(results))
	cmp.Averages = model.Averages{
		WordCount:          totalWords / n,
		VocabularyRichness: totalRichness / n,
		AverageWordLength:  totalWordLen / n,
	}

	return cmp
}

func rankedTitles(results []*model.AnalysisResult, less func(a, b *model.AnalysisResult) bool) []string {
	ranked := make([]*model.AnalysisResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	titles := make([]string, len(ranked))
	for i, r := range ranked {
		titles[i] = r.Title
	}
	return titles
}
