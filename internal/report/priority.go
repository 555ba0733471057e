package report

import "strings"

// Classifier maps free-form priority text to a vocabulary entry.
type Classifier struct {
	levels []Priority
}

// NewClassifier creates a classifier. Levels are tried in order.
func NewClassifier(levels []Priority) Classifier {
	return Classifier{levels: append([]Priority(nil), levels...)}
}

// Classify returns the first level whose label starts the text, compared
// case-insensitively after trimming. Unmatched text yields Unknown.
func (c Classifier) Classify(text string) Priority {
	p := strings.ToLower(strings.TrimSpace(text))
	if p == "" {
		return Unknown
	}

	for _, level := range c.levels {
		if strings.HasPrefix(p, strings.ToLower(level.Label)) {
			return level
		}
	}

	return Unknown
}

// Code returns the display code of text.
func (c Classifier) Code(text string) string {
	return c.Classify(text).Code
}

// Rank returns the sort rank of text.
func (c Classifier) Rank(text string) int {
	return c.Classify(text).Rank
}
