// Package sentiment scores free-text reviews with a word polarity lexicon.
package sentiment

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/segment"

	"github.com/listenupapp/shelfwrapped/internal/domain"
)

//go:embed lexicon.tsv
var lexiconTSV []byte

// negators flip the polarity of the word that directly follows them.
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nobody": {}, "nothing": {},
	"neither": {}, "nor": {}, "cannot": {}, "without": {},
	"don't": {}, "doesn't": {}, "didn't": {}, "isn't": {}, "wasn't": {},
	"aren't": {}, "weren't": {}, "won't": {}, "wouldn't": {}, "can't": {},
	"couldn't": {}, "shouldn't": {}, "hasn't": {}, "haven't": {}, "hadn't": {},
}

// Lexicon maps lower-case words to a polarity in [-5, 5].
type Lexicon map[string]int

// ParseLexicon reads "word<TAB>score" lines. Blank lines and lines starting
// with # are skipped.
func ParseLexicon(data []byte) (Lexicon, error) {
	lex := make(Lexicon)
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		word, score, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("lexicon line %d: missing tab", line)
		}
		v, err := strconv.Atoi(strings.TrimSpace(score))
		if err != nil || v < -5 || v > 5 {
			return nil, fmt.Errorf("lexicon line %d: invalid score %q", line, score)
		}
		lex[strings.ToLower(strings.TrimSpace(word))] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return lex, nil
}

// DefaultLexicon returns the embedded English lexicon.
func DefaultLexicon() Lexicon {
	lex, err := ParseLexicon(lexiconTSV)
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon: %v", err))
	}
	return lex
}

// Analyzer scores text word by word against a lexicon. It has no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	lexicon Lexicon
}

// NewAnalyzer creates an analyzer over lex.
func NewAnalyzer(lex Lexicon) *Analyzer {
	return &Analyzer{lexicon: lex}
}

// Analyze tokenizes text with Unicode word boundaries and sums the polarity of
// every known word. Comparative is the score divided by the token count.
func (a *Analyzer) Analyze(text string) (domain.SentimentResult, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return domain.SentimentResult{}, err
	}

	result := domain.NeutralSentiment(text)
	for i, tok := range tokens {
		score, ok := a.lexicon[tok]
		if !ok {
			continue
		}
		if i > 0 && isNegator(tokens[i-1]) {
			score = -score
		}
		result.Score += score
		switch {
		case score > 0:
			result.Positive = append(result.Positive, tok)
		case score < 0:
			result.Negative = append(result.Negative, tok)
		}
	}
	if len(tokens) > 0 {
		result.Comparative = float64(result.Score) / float64(len(tokens))
	}
	return result, nil
}

func tokenize(text string) ([]string, error) {
	seg := segment.NewWordSegmenter(strings.NewReader(text))
	var tokens []string
	for seg.Segment() {
		if seg.Type() == segment.None {
			continue
		}
		tok := strings.ToLower(seg.Text())
		// Curly apostrophes are common in pasted reviews.
		tok = strings.ReplaceAll(tok, "’", "'")
		tokens = append(tokens, tok)
	}
	if err := seg.Err(); err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return tokens, nil
}

func isNegator(tok string) bool {
	_, ok := negators[tok]
	return ok
}
