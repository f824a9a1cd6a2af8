package rag

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
)

// wordPattern matches runs of Unicode letters, digits and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Scorer rates how well a knowledge entry answers a query. Scores are
// deterministic and lie in [0, 1].
type Scorer struct {
	keywordWeight   float64
	contentWeight   float64
	phraseBonus     float64
	phraseMinLength int
}

// NewScorer creates a scorer with the given weights.
func NewScorer(cfg config.ScorerConfig) *Scorer {
	return &Scorer{
		keywordWeight:   cfg.KeywordWeight,
		contentWeight:   cfg.ContentWeight,
		phraseBonus:     cfg.PhraseBonus,
		phraseMinLength: cfg.PhraseMinLength,
	}
}

// Tokenize lower-cases s and returns its distinct word tokens.
func Tokenize(s string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Score computes the similarity of query against an entry's content and
// keyword list.
func (s *Scorer) Score(query, content, keywords string) float64 {
	return s.scoreTokens(Tokenize(query), content, keywords)
}

func (s *Scorer) scoreTokens(query map[string]struct{}, content, keywords string) float64 {
	if len(query) == 0 {
		return 0
	}
	contentLower := strings.ToLower(content)
	contentTokens := Tokenize(contentLower)
	keywordTokens := Tokenize(keywords)

	var keywordMatches, contentMatches int
	bonus := false
	for tok := range query {
		if _, ok := keywordTokens[tok]; ok {
			keywordMatches++
		}
		if _, ok := contentTokens[tok]; ok {
			contentMatches++
		}
		if !bonus && utf8.RuneCountInString(tok) >= s.phraseMinLength && strings.Contains(contentLower, tok) {
			bonus = true
		}
	}

	score := (s.keywordWeight*float64(keywordMatches) + s.contentWeight*float64(contentMatches)) / float64(len(query))
	if bonus {
		score += s.phraseBonus
	}
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}
