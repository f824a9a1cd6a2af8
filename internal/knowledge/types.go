package knowledge

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyContent is returned when an entry has no answer text.
	ErrEmptyContent = errors.New("knowledge entry content is required")
	// ErrEmptyCategory is returned when an entry has no category to key on.
	ErrEmptyCategory = errors.New("knowledge entry category is required")
)

// Entry is one curated, answerable fact.
type Entry struct {
	Category string `json:"category" yaml:"category"` // e.g. "check_in", "transportation"
	Topic    string `json:"topic" yaml:"topic"`       // citation label, e.g. "Check-in Policy"
	Content  string `json:"content" yaml:"content"`   // answer text returned to the guest
	Keywords string `json:"keywords" yaml:"keywords"` // space-separated bag of curated terms
}

// Validate reports whether the entry can be stored.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}
