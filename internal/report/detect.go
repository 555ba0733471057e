package report

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/incident-report/internal/types"
)

// leadingDate matches a numeric day/month/year at the start of a value.
var leadingDate = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

// Detection names the fields chosen as date and priority sources. An empty
// name means no field qualified.
type Detection struct {
	DateField     string
	PriorityField string
}

// Missed reports whether neither field was found.
func (d Detection) Missed() bool {
	return d.DateField == "" && d.PriorityField == ""
}

// Detect inspects the first record of doc. A field is a date candidate when
// its trimmed value starts with a numeric date, and a priority candidate
// when it contains one of labels (case-sensitive). When several fields
// qualify, the last one in record order wins.
func Detect(doc *types.Document, labels []string) Detection {
	var d Detection

	first, ok := doc.First()
	if !ok {
		return d
	}

	for _, field := range first.Fields {
		text := strings.TrimSpace(field.Value)

		if leadingDate.MatchString(text) {
			d.DateField = field.Name
		}

		for _, label := range labels {
			if label != "" && strings.Contains(text, label) {
				d.PriorityField = field.Name
				break
			}
		}
	}

	return d
}
