// =============================================================================
// Incident Report - Report Stage
// =============================================================================
//
// This package turns a hierarchical incident document into a filtered,
// sorted, fixed-width text report.
//
// REPORT PIPELINE:
//   1. Detect the date and priority fields from the first record
//   2. Parse each record's date and drop records outside the window
//   3. Classify priorities and copy the display fields
//   4. Sort by date, priority rank and time of day (stable)
//   5. Lay out the rows on a fixed-width grid and render them
//
// All run constants (window, columns, vocabulary, date formats) are carried
// by a Config value that is copied into the pipeline at construction time.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/incident-report/internal/config"
)

// windowLayout is the layout of the window bounds in the configuration file.
const windowLayout = "2/1/2006"

// Column is one entry of the report grid.
type Column struct {
	Key   string
	Title string
	Width int
	Tag   string
}

// Priority maps a vocabulary word to its display code and sort rank.
type Priority struct {
	Label string
	Code  string
	Rank  int
}

// Unknown is the classification of text matching no vocabulary word.
var Unknown = Priority{Code: "?", Rank: 99}

// =============================================================================
// DATE WINDOW
// =============================================================================

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls on or after Start and no later than the
// last instant of End's day.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End.AddDate(0, 0, 1))
}

// String renders the window as "dd/mm/yyyy - dd/mm/yyyy".
func (w Window) String() string {
	return w.Start.Format("02/01/2006") + " - " + w.End.Format("02/01/2006")
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds the constants of a report run.
type Config struct {
	Window      Window
	Columns     []Column
	Priorities  []Priority
	DateFormats []string

	// DateDisplayFormat formats the date column; TimeFormat parses the
	// time-of-day column for ordering.
	DateDisplayFormat string
	TimeFormat        string

	// Sources maps column keys to document identifiers.
	Sources map[string]string
	TimeKey string

	DescriptionField string
	ActionsField     string
	DescriptionLabel string
	ActionsLabel     string
	NoResultsMessage string
}

// NewConfig builds a report Config from the report section of the
// application configuration.
//
// RETURNS:
//   - The report configuration.
//   - An error if the window bounds are malformed or reversed.
func NewConfig(settings config.ReportSettings) (Config, error) {
	start, err := time.Parse(windowLayout, strings.TrimSpace(settings.WindowStart))
	if err != nil {
		return Config{}, fmt.Errorf("invalid window start %q: %w", settings.WindowStart, err)
	}

	end, err := time.Parse(windowLayout, strings.TrimSpace(settings.WindowEnd))
	if err != nil {
		return Config{}, fmt.Errorf("invalid window end %q: %w", settings.WindowEnd, err)
	}

	if end.Before(start) {
		return Config{}, fmt.Errorf("window end %s is before start %s", settings.WindowEnd, settings.WindowStart)
	}

	cfg := Config{
		Window:            Window{Start: start, End: end},
		DateFormats:       append([]string(nil), settings.DateFormats...),
		DateDisplayFormat: settings.DateDisplayFormat,
		TimeFormat:        settings.TimeFormat,
		TimeKey:           settings.TimeKey,
		DescriptionField:  settings.DescriptionField,
		ActionsField:      settings.ActionsField,
		DescriptionLabel:  settings.DescriptionLabel,
		ActionsLabel:      settings.ActionsLabel,
		NoResultsMessage:  settings.NoResultsMessage,
		Sources:           make(map[string]string, len(settings.Sources)),
	}

	for _, c := range settings.Columns {
		cfg.Columns = append(cfg.Columns, Column{Key: c.Key, Title: c.Title, Width: c.Width, Tag: c.Tag})
	}
	for _, p := range settings.Priorities {
		cfg.Priorities = append(cfg.Priorities, Priority{Label: p.Label, Code: p.Code, Rank: p.Rank})
	}
	for k, v := range settings.Sources {
		cfg.Sources[k] = v
	}

	return cfg, nil
}

// DefaultConfig returns the report configuration of the incident desk.
func DefaultConfig() Config {
	cfg, err := NewConfig(config.Default().Report)
	if err != nil {
		panic(fmt.Sprintf("report: invalid built-in configuration: %v", err))
	}
	return cfg
}

// Labels returns the priority vocabulary words.
func (c Config) Labels() []string {
	labels := make([]string, len(c.Priorities))
	for i, p := range c.Priorities {
		labels[i] = p.Label
	}
	return labels
}

// TotalWidth returns the width of a row line, separators included.
func (c Config) TotalWidth() int {
	if len(c.Columns) == 0 {
		return 0
	}

	total := 0
	for _, col := range c.Columns {
		total += col.Width
	}
	return total + len([]rune(Separator))*(len(c.Columns)-1)
}

// clone returns a deep copy so the pipeline never shares slices or maps
// with its caller.
func (c Config) clone() Config {
	out := c
	out.Columns = append([]Column(nil), c.Columns...)
	out.Priorities = append([]Priority(nil), c.Priorities...)
	out.DateFormats = append([]string(nil), c.DateFormats...)
	out.Sources = make(map[string]string, len(c.Sources))
	for k, v := range c.Sources {
		out.Sources[k] = v
	}
	return out
}
