package report

import (
	"strings"
	"time"

	"github.com/ginjaninja78/incident-report/internal/types"
)

// DateStatus tags the outcome of a date lookup.
type DateStatus int

const (
	// DateParsed means the field was present and matched an accepted format.
	DateParsed DateStatus = iota

	// DateUnparsable means the field was present but matched no format.
	DateUnparsable

	// DateFieldAbsent means no date field was detected or the record lacks it.
	DateFieldAbsent
)

// String implements fmt.Stringer.
func (s DateStatus) String() string {
	switch s {
	case DateParsed:
		return "parsed"
	case DateUnparsable:
		return "unparsable"
	case DateFieldAbsent:
		return "field-absent"
	default:
		return "unknown"
	}
}

// DateResult is the tagged result of looking up a record's date.
type DateResult struct {
	Status DateStatus
	Time   time.Time
	Raw    string
}

// Ok reports whether a date was parsed.
func (r DateResult) Ok() bool {
	return r.Status == DateParsed
}

// DateParser tries an ordered list of layouts.
type DateParser struct {
	layouts []string
}

// NewDateParser creates a parser. Layouts use Go reference time notation.
func NewDateParser(layouts []string) DateParser {
	return DateParser{layouts: append([]string(nil), layouts...)}
}

// Parse returns the first successful parse of the trimmed text.
func (p DateParser) Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range p.layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Lookup reads field from record and parses it.
func (p DateParser) Lookup(record types.Record, field string) DateResult {
	if field == "" {
		return DateResult{Status: DateFieldAbsent}
	}

	raw, ok := record.Get(field)
	if !ok {
		return DateResult{Status: DateFieldAbsent}
	}

	t, ok := p.Parse(raw)
	if !ok {
		return DateResult{Status: DateUnparsable, Raw: raw}
	}

	return DateResult{Status: DateParsed, Time: t, Raw: raw}
}
