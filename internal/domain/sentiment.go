package domain

// MinSentimentTextLen is the shortest review that is scored at all.
const MinSentimentTextLen = 10

// SentimentResult is the lexicon score of one review.
// Comparative is Score divided by the number of tokens.
type SentimentResult struct {
	Score       int      `json:"score"`
	Comparative float64  `json:"comparative"`
	Positive    []string `json:"positive"`
	Negative    []string `json:"negative"`
	SourceText  string   `json:"source_text"`
}

// NeutralSentiment is the zero-valued result for text that was not scored.
func NeutralSentiment(text string) SentimentResult {
	return SentimentResult{
		Positive:   []string{},
		Negative:   []string{},
		SourceText: text,
	}
}

// normalized replaces nil term lists so the JSON shape is stable.
func (s SentimentResult) normalized() SentimentResult {
	if s.Positive == nil {
		s.Positive = []string{}
	}
	if s.Negative == nil {
		s.Negative = []string{}
	}
	return s
}
