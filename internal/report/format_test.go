package report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "exact width unchanged", text: "abcd", width: 4, want: "abcd"},
		{name: "one over is truncated", text: "abcde", width: 4, want: "abc…"},
		{name: "shorter is padded", text: "ab", width: 4, want: "ab  "},
		{name: "empty is padded", text: "", width: 3, want: "   "},
		{name: "width one", text: "ab", width: 1, want: "…"},
		{name: "accented text counts characters", text: "Àrea/Despatx", width: 14, want: "Àrea/Despatx  "},
		{name: "accented truncation", text: "Descripció llarga", width: 10, want: "Descripci…"},
		{name: "zero width", text: "abc", width: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.text, tt.width)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.Equal(t, tt.width, utf8.RuneCountInString(got))
			}
		})
	}
}

func TestLayoutHeader(t *testing.T) {
	cells := LayoutHeader([]Column{
		{Key: "data", Title: "Data", Width: 10, Tag: "green"},
		{Key: "moment", Title: "Moment problema", Width: 6, Tag: "red"},
	})

	assert.Equal(t, []Cell{
		{Text: "Data      ", Tag: "green"},
		{Text: "Momen…", Tag: "red"},
	}, cells)
}

func TestLayoutRow(t *testing.T) {
	inc := Incidence{Values: map[string]string{"data": "15/11/2025", "prioritat_icon": "A"}}
	cols := []Column{
		{Key: "data", Width: 10},
		{Key: "prioritat_icon", Width: 4},
		{Key: "nom", Width: 3},
	}

	cells := LayoutRow(inc, cols)
	assert.Equal(t, "15/11/2025", cells[0].Text)
	assert.Equal(t, "A   ", cells[1].Text)
	assert.Equal(t, "   ", cells[2].Text, "missing values render as blanks")
}

func TestJoinCells(t *testing.T) {
	line := JoinCells([]Cell{{Text: "ab"}, {Text: "cd"}, {Text: "ef"}}, PlainStyler{}, false)
	assert.Equal(t, "ab | cd | ef", line)
	assert.Equal(t, 2, strings.Count(line, Separator))
}
