package sentiment

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/listenupapp/shelfwrapped/internal/domain"
)

// TextAnalyzer produces a raw sentiment score for a piece of text.
type TextAnalyzer interface {
	Analyze(text string) (domain.SentimentResult, error)
}

// Scorer wraps an analyzer so that scoring never fails a request.
type Scorer struct {
	analyzer TextAnalyzer
	logger   *slog.Logger
}

// NewScorer creates a scorer. A nil analyzer uses the embedded lexicon.
func NewScorer(analyzer TextAnalyzer, logger *slog.Logger) *Scorer {
	if analyzer == nil {
		analyzer = NewAnalyzer(DefaultLexicon())
	}
	return &Scorer{analyzer: analyzer, logger: logger}
}

// Score returns the sentiment of text. Text shorter than
// domain.MinSentimentTextLen characters, and any analyzer error or panic,
// yield the neutral result with the text preserved.
func (s *Scorer) Score(text string) (result domain.SentimentResult) {
	neutral := domain.NeutralSentiment(text)
	if utf8.RuneCountInString(text) < domain.MinSentimentTextLen {
		return neutral
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("sentiment analyzer panicked", "panic", fmt.Sprint(r))
			result = neutral
		}
	}()

	res, err := s.analyzer.Analyze(text)
	if err != nil {
		s.logger.Warn("sentiment analysis failed", "error", err)
		return neutral
	}

	res.SourceText = text
	if res.Positive == nil {
		res.Positive = []string{}
	}
	if res.Negative == nil {
		res.Negative = []string{}
	}
	return res
}
