package rag

import (
	"strings"
)

// FallbackAnswer is returned when nothing in the catalog matches.
const FallbackAnswer = "I don't have specific information about that, but our reception team is available 24/7 to help! " +
	"You can ask about check-in/out times, local attractions, transportation, dining, or any hotel services."

const (
	caveatHigh   = "I'm confident this information is accurate."
	caveatMedium = "This should help answer your question."
	caveatLow    = "This is the best match I found - please confirm with reception if needed."
)

var curatedSuggestions = map[string][]string{
	"transportation": {
		"Book taxi through reception for guaranteed rates",
		"Download Grab app for convenient city transportation",
		"Ask about bus routes for budget-friendly options",
	},
	"food": {
		"Try Hang Buom Street (2 minutes walk) for authentic local food",
		"Ask reception for restaurant recommendations based on your preferences",
		"Don't miss weekend night market for street food experience",
	},
	"attractions": {
		"Start with Hoan Kiem Lake - it's beautiful and close by",
		"Explore Old Quarter on foot for the best experience",
		"Ask reception about current events and festivals",
	},
	"check_in": timingSuggestions,
	"check_out": timingSuggestions,
}

var timingSuggestions = []string{
	"Contact reception if you need to adjust your timing",
	"Ask about luggage storage if arriving early or leaving late",
	"Confirm payment methods accepted",
}

var genericSuggestions = []string{
	"Ask reception for more details - we're available 24/7",
	"Check the guest handbook for other hotel services",
}

// queryHints add a suggestion when the query mentions any of the terms.
var queryHints = []struct {
	terms      []string
	suggestion string
}{
	{[]string{"time", "when"}, "Reception is available 24/7 for any timing questions"},
	{[]string{"cost", "price", "how much"}, "Ask reception for current rates and any available discounts"},
}

// Composer turns a retrieval context into an answer. It has no side effects.
type Composer struct {
	maxSources     int
	maxSuggestions int
}

// NewComposer creates a composer with the given output caps.
func NewComposer(maxSources, maxSuggestions int) *Composer {
	return &Composer{maxSources: maxSources, maxSuggestions: maxSuggestions}
}

// Compose builds the answer for rc.
func (c *Composer) Compose(rc *RetrievalContext) *Answer {
	name := rc.RequesterName()
	ans := &Answer{
		Sources:      []string{},
		Personalized: name != "",
	}

	if len(rc.RelevantInfo) == 0 {
		ans.Answer = FallbackAnswer
		ans.Suggestions = c.suggestions(rc.Query, "")
		return ans
	}

	top := rc.RelevantInfo[0]
	body := top.Content
	if name != "" {
		body = "Hi " + name + "! " + body
	}
	ans.Answer = body + "\n\n" + Caveat(rc.Confidence)
	ans.Confidence = rc.Confidence

	for _, se := range rc.RelevantInfo {
		if len(ans.Sources) >= c.maxSources {
			break
		}
		ans.Sources = append(ans.Sources, se.Topic)
	}
	ans.Suggestions = c.suggestions(rc.Query, top.Category)
	return ans
}

// Caveat returns the sentence qualifying an answer of the given confidence.
func Caveat(confidence float64) string {
	switch {
	case confidence > 0.8:
		return caveatHigh
	case confidence > 0.5:
		return caveatMedium
	default:
		return caveatLow
	}
}

func (c *Composer) suggestions(query, category string) []string {
	var out []string
	if curated, ok := curatedSuggestions[category]; ok {
		out = append(out, curated...)
	} else {
		out = append(out, genericSuggestions...)
	}

	q := strings.ToLower(query)
	for _, h := range queryHints {
		for _, term := range h.terms {
			if strings.Contains(q, term) {
				out = append(out, h.suggestion)
				break
			}
		}
	}

	if len(out) > c.maxSuggestions {
		out = out[:c.maxSuggestions]
	}
	return out
}
