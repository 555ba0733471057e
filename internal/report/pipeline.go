package report

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/incident-report/internal/config"
	"github.com/ginjaninja78/incident-report/internal/types"
)

// Incidence is a record that passed the window filter, enriched for layout.
type Incidence struct {
	// Date is the parsed date of the record.
	Date time.Time

	// Priority is the raw priority text; Code and Rank classify it.
	Priority string
	Code     string
	Rank     int

	// Values holds the display text of every column, keyed by column key.
	Values map[string]string

	Description string
	Actions     string

	// Index is the record's position in the source document.
	Index int

	// timeOfDay orders incidences within a date and rank.
	timeOfDay time.Duration
}

// Value returns the display text of a column, or "" when unset.
func (i Incidence) Value(key string) string {
	return i.Values[key]
}

// Stats counts how records were handled by Build.
type Stats struct {
	Records      int
	FieldAbsent  int
	Unparsable   int
	OutOfWindow  int
	Included     int
	UnknownRanks int
}

// Pipeline filters and orders the records of a document.
type Pipeline struct {
	cfg        Config
	dates      DateParser
	classifier Classifier
	logger     *zap.Logger
}

// New creates a pipeline. The configuration is copied; later changes by
// the caller are not observed.
func New(cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg = cfg.clone()
	return &Pipeline{
		cfg:        cfg,
		dates:      NewDateParser(cfg.DateFormats),
		classifier: NewClassifier(cfg.Priorities),
		logger:     logger,
	}
}

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg.clone()
}

// Detect runs field detection with the pipeline's vocabulary.
func (p *Pipeline) Detect(doc *types.Document) Detection {
	return Detect(doc, p.cfg.Labels())
}

// Build returns the incidences of doc inside the window, sorted by date,
// priority rank and time of day. Ties keep document order. Records without
// a usable date are skipped and counted in Stats.
func (p *Pipeline) Build(doc *types.Document, detection Detection) ([]Incidence, Stats) {
	var stats Stats
	incidences := make([]Incidence, 0)

	if doc.Len() == 0 {
		return incidences, stats
	}

	for i, record := range doc.Records {
		stats.Records++

		date := p.dates.Lookup(record, detection.DateField)
		switch date.Status {
		case DateFieldAbsent:
			stats.FieldAbsent++
			continue
		case DateUnparsable:
			stats.Unparsable++
			p.logger.Debug("Skipping record with unparsable date",
				zap.Int("record", i+1),
				zap.String("value", date.Raw))
			continue
		}

		if !p.cfg.Window.Contains(date.Time) {
			stats.OutOfWindow++
			continue
		}

		inc := p.materialize(record, i, date.Time, detection)
		if inc.Rank == Unknown.Rank {
			stats.UnknownRanks++
		}
		incidences = append(incidences, inc)
	}

	sort.SliceStable(incidences, func(a, b int) bool {
		x, y := incidences[a], incidences[b]
		if !x.Date.Equal(y.Date) {
			return x.Date.Before(y.Date)
		}
		if x.Rank != y.Rank {
			return x.Rank < y.Rank
		}
		return x.timeOfDay < y.timeOfDay
	})

	stats.Included = len(incidences)
	return incidences, stats
}

// materialize copies the display fields of record into an Incidence.
func (p *Pipeline) materialize(record types.Record, index int, date time.Time, detection Detection) Incidence {
	priority := strings.TrimSpace(p.field(record, detection.PriorityField))
	level := p.classifier.Classify(priority)

	inc := Incidence{
		Date:        date,
		Priority:    priority,
		Code:        level.Code,
		Rank:        level.Rank,
		Values:      make(map[string]string, len(p.cfg.Columns)),
		Description: strings.TrimSpace(p.field(record, p.cfg.DescriptionField)),
		Actions:     strings.TrimSpace(p.field(record, p.cfg.ActionsField)),
		Index:       index,
	}

	for _, col := range p.cfg.Columns {
		switch col.Key {
		case config.KeyDate:
			inc.Values[col.Key] = date.Format(p.cfg.DateDisplayFormat)
		case config.KeyPriority:
			inc.Values[col.Key] = priority
		case config.KeyPriorityCode:
			inc.Values[col.Key] = level.Code
		default:
			inc.Values[col.Key] = strings.TrimSpace(p.field(record, p.sourceOf(col.Key)))
		}
	}

	inc.timeOfDay = p.timeOfDay(p.field(record, p.sourceOf(p.cfg.TimeKey)))

	return inc
}

// sourceOf returns the identifier a column is copied from. Columns without
// a configured source read the field named like the column.
func (p *Pipeline) sourceOf(key string) string {
	if src, ok := p.cfg.Sources[key]; ok {
		return src
	}
	return key
}

// field returns the text of name in record, or "" when absent.
func (p *Pipeline) field(record types.Record, name string) string {
	if name == "" {
		return ""
	}
	value, _ := record.Get(name)
	return value
}

// timeOfDay parses text with the configured time layout. Text that does not
// parse sorts as midnight.
func (p *Pipeline) timeOfDay(text string) time.Duration {
	t, err := time.Parse(p.cfg.TimeFormat, strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
