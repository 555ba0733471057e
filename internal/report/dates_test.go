package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/incident-report/internal/config"
	"github.com/ginjaninja78/incident-report/internal/types"
)

func defaultParser() DateParser {
	return NewDateParser(config.DefaultDateFormats)
}

func TestDateParserParse(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  time.Time
		found bool
	}{
		{name: "day/month/year", text: "17/11/2025", want: time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC), found: true},
		{name: "single digits", text: "1/2/2025", want: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), found: true},
		{name: "hyphens", text: "15-11-2025", want: time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), found: true},
		{name: "iso", text: "2025-11-17", want: time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC), found: true},
		{name: "with minutes", text: "17/11/2025 23:59", want: time.Date(2025, 11, 17, 23, 59, 0, 0, time.UTC), found: true},
		{name: "with seconds", text: "17/11/2025 23:59:59", want: time.Date(2025, 11, 17, 23, 59, 59, 0, time.UTC), found: true},
		{name: "surrounding whitespace", text: "  05/11/2025 ", want: time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), found: true},
		{name: "not a date", text: "not-a-date", found: false},
		{name: "empty", text: "", found: false},
		{name: "day out of range", text: "32/11/2025", found: false},
		{name: "slashed iso", text: "2025/11/17", found: false},
		{name: "trailing text", text: "17/11/2025 tarda", found: false},
	}

	p := defaultParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.text)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDateParserEquivalentFormats(t *testing.T) {
	p := defaultParser()

	a, ok := p.Parse("17/11/2025")
	require.True(t, ok)
	b, ok := p.Parse("2025-11-17")
	require.True(t, ok)

	assert.True(t, a.Equal(b))
}

func TestDateParserLookup(t *testing.T) {
	p := defaultParser()
	record := types.Record{Fields: []types.Field{
		{Name: "data", Value: "15/11/2025"},
		{Name: "altra", Value: "dilluns"},
		{Name: "buida", Value: ""},
	}}

	tests := []struct {
		name   string
		field  string
		status DateStatus
	}{
		{name: "parsed", field: "data", status: DateParsed},
		{name: "unparsable text", field: "altra", status: DateUnparsable},
		{name: "empty text", field: "buida", status: DateUnparsable},
		{name: "missing field", field: "absent", status: DateFieldAbsent},
		{name: "no field detected", field: "", status: DateFieldAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Lookup(record, tt.field)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.status == DateParsed, got.Ok())
		})
	}

	assert.Equal(t, "dilluns", p.Lookup(record, "altra").Raw)
	assert.Equal(t, "field-absent", DateFieldAbsent.String())
}
