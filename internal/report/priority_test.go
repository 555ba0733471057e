package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultClassifier() Classifier {
	return NewClassifier(DefaultConfig().Priorities)
}

func TestClassifier(t *testing.T) {
	tests := []struct {
		text string
		code string
		rank int
	}{
		{text: "Alta - urgent", code: "A", rank: 1},
		{text: "alta", code: "A", rank: 1},
		{text: "  ALTA (servei aturat)", code: "A", rank: 1},
		{text: "Mitjana", code: "M", rank: 2},
		{text: "mitjana - afecta una persona", code: "M", rank: 2},
		{text: "Baixa", code: "B", rank: 3},
		{text: "Urgent", code: "?", rank: 99},
		{text: "Alt", code: "?", rank: 99},
		{text: "Molt alta", code: "?", rank: 99},
		{text: "", code: "?", rank: 99},
	}

	c := defaultClassifier()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.code, c.Code(tt.text))
			assert.Equal(t, tt.rank, c.Rank(tt.text))
		})
	}
}

func TestClassifierRanksAreOrdered(t *testing.T) {
	c := defaultClassifier()

	assert.Less(t, c.Rank("Alta..."), c.Rank("Mitjana..."))
	assert.Less(t, c.Rank("Mitjana..."), c.Rank("Baixa..."))
	assert.Less(t, c.Rank("Baixa..."), c.Rank("unknown"))
}

func TestClassifierCustomVocabulary(t *testing.T) {
	c := NewClassifier([]Priority{{Label: "Urgent", Code: "U", Rank: 1}})

	assert.Equal(t, "U", c.Code("urgent!"))
	assert.Equal(t, Unknown, c.Classify("Alta"))
}
