package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/incident-report/internal/types"
)

var labels = []string{"Alta", "Mitjana", "Baixa"}

func record(pairs ...string) types.Record {
	var r types.Record
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Fields = append(r.Fields, types.Field{Name: pairs[i], Value: pairs[i+1]})
	}
	return r
}

func docOf(records ...types.Record) *types.Document {
	return &types.Document{Records: records}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		doc  *types.Document
		want Detection
	}{
		{
			name: "both fields",
			doc:  docOf(record("data", "15/11/2025", "prioritat", "Alta - urgent", "hora", "09:30")),
			want: Detection{DateField: "data", PriorityField: "prioritat"},
		},
		{
			name: "last match wins",
			doc: docOf(record(
				"alta_registre", "01/11/2025",
				"prioritat", "Baixa",
				"data", "15-11-2025 10:00",
				"comentari", "Era Mitjana abans",
			)),
			want: Detection{DateField: "data", PriorityField: "comentari"},
		},
		{
			name: "date must lead the value",
			doc:  docOf(record("nota", "Vist el 15/11/2025")),
			want: Detection{},
		},
		{
			name: "leading whitespace is ignored",
			doc:  docOf(record("data", "  7/11/25")),
			want: Detection{DateField: "data"},
		},
		{
			name: "priority words are case-sensitive",
			doc:  docOf(record("prioritat", "alta")),
			want: Detection{},
		},
		{
			name: "only the first record is inspected",
			doc:  docOf(record("a", "x"), record("a", "15/11/2025")),
			want: Detection{},
		},
		{
			name: "empty document",
			doc:  docOf(),
			want: Detection{},
		},
		{
			name: "nil document",
			doc:  nil,
			want: Detection{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.doc, labels))
		})
	}
}

func TestDetectionMissed(t *testing.T) {
	assert.True(t, Detection{}.Missed())
	assert.False(t, Detection{DateField: "data"}.Missed())
	assert.False(t, Detection{PriorityField: "p"}.Missed())
}
