// =============================================================================
// Incident Report - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the configuration of a
// run. A single file drives both stages:
//   1. Conversion settings (directories, CSV/XLSX reading, cleanup rules)
//   2. Report settings (date window, columns, vocabulary, source fields)
//
// FORMATS:
//   The configuration file format is selected by extension:
//   - .yaml / .yml : parsed with gopkg.in/yaml.v3
//   - .toml        : parsed with github.com/BurntSushi/toml
//
// DEFAULTS:
//   Every unset option falls back to the values used by the incident desk
//   (window 01/11/2025 - 17/11/2025, nine report columns, Alta/Mitjana/Baixa).
//   An empty path yields the defaults without reading any file.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the complete configuration of a run.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned by the process command for tabular sources.
	// Default: "./input"
	InputDir string `yaml:"input_dir" toml:"input_dir"`

	// OutputDir receives generated XML documents and text reports.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// InputArchiveDir receives processed tabular sources.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" toml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every generated file.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir" toml:"output_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFileFormat defines the base name of generated files.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {original}  - Source file name without extension
	// Default: "{original}"
	OutputFileFormat string `yaml:"output_file_format" toml:"output_file_format"`

	// ArchiveOnSuccess moves processed sources to the archive directories.
	// Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success" toml:"archive_on_success"`

	// ArchiveByDate files archives under YYYY/MM/DD subdirectories.
	// Default: false
	ArchiveByDate bool `yaml:"archive_by_date" toml:"archive_by_date"`

	// ArchiveRetentionDays removes archived files older than this many days
	// at the end of a batch run. Zero keeps everything.
	// Default: 0
	ArchiveRetentionDays int `yaml:"archive_retention_days" toml:"archive_retention_days"`

	// =========================================================================
	// SOURCE READING SETTINGS
	// =========================================================================

	// CSVSettings contains settings for reading delimited sources.
	CSVSettings CSVSettings `yaml:"csv_settings" toml:"csv_settings"`

	// XLSXSettings contains settings for reading spreadsheet sources.
	XLSXSettings XLSXSettings `yaml:"xlsx_settings" toml:"xlsx_settings"`

	// TransformationRules are optional cleanup rules applied to document
	// fields after conversion. Fields are addressed by identifier.
	TransformationRules []TransformationRule `yaml:"transformation_rules" toml:"transformation_rules"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// Report contains the report layout and filtering settings.
	Report ReportSettings `yaml:"report" toml:"report"`
}

// =============================================================================
// SOURCE SETTINGS STRUCTURES
// =============================================================================

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), ";" (semicolon), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter" toml:"delimiter"`

	// Encoding is the character encoding of the file.
	// Supported values: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding" toml:"encoding"`

	// LazyQuotes tolerates quotes that do not follow strict CSV rules.
	// Default: false
	LazyQuotes bool `yaml:"lazy_quotes" toml:"lazy_quotes"`
}

// XLSXSettings contains settings for reading spreadsheet sources.
type XLSXSettings struct {
	// Sheet is the name of the sheet holding the incident log.
	// Default: "" (the first sheet)
	Sheet string `yaml:"sheet" toml:"sheet"`
}

// TransformationRule defines cleanup actions for a single document field.
type TransformationRule struct {
	// Field is the identifier of the field to transform (after sanitization).
	Field string `yaml:"field" toml:"field"`

	// Actions are applied in order.
	Actions []TransformationAction `yaml:"actions" toml:"actions"`
}

// TransformationAction defines a single transformation action.
type TransformationAction struct {
	// Type is the type of transformation to apply.
	// Supported types:
	//   - "trim"                 : Remove leading and trailing whitespace
	//   - "uppercase"            : Convert to uppercase
	//   - "lowercase"            : Convert to lowercase
	//   - "replace"              : Replace Find with Value
	//   - "regex_replace"        : Replace matches of the Find pattern with Value
	//   - "normalize_whitespace" : Collapse whitespace runs to a single space
	//   - "if_empty_use_default" : Use Value when the field is blank
	//   - "format_date"          : Reformat a date, Value is "input|output" layouts
	Type string `yaml:"type" toml:"type"`

	// Value is the parameter for the transformation.
	Value string `yaml:"value" toml:"value"`

	// Find is used by "replace" and "regex_replace".
	Find string `yaml:"find,omitempty" toml:"find"`
}

// =============================================================================
// REPORT SETTINGS STRUCTURES
// =============================================================================

// ReportSettings contains everything the report stage needs.
type ReportSettings struct {
	// WindowStart and WindowEnd bound the inclusive date window (dd/mm/yyyy).
	// Default: "01/11/2025" and "17/11/2025"
	WindowStart string `yaml:"window_start" toml:"window_start"`
	WindowEnd   string `yaml:"window_end" toml:"window_end"`

	// DateFormats are the accepted date layouts (Go reference time), tried in order.
	DateFormats []string `yaml:"date_formats" toml:"date_formats"`

	// DateDisplayFormat is the layout of the date column.
	// Default: "02/01/2006"
	DateDisplayFormat string `yaml:"date_display_format" toml:"date_display_format"`

	// TimeFormat is the layout used to order incidents within a day.
	// Default: "15:04"
	TimeFormat string `yaml:"time_format" toml:"time_format"`

	// Priorities is the priority vocabulary, highest first.
	Priorities []PriorityLevel `yaml:"priorities" toml:"priorities"`

	// Columns defines the fixed-width grid of the report.
	Columns []Column `yaml:"columns" toml:"columns"`

	// Sources maps a column key to the document identifier it is copied from.
	// The keys "data", "prioritat" and "prioritat_icon" are derived and need
	// no source.
	Sources map[string]string `yaml:"sources" toml:"sources"`

	// TimeKey is the column key whose value orders incidents within a day.
	// Default: "hora"
	TimeKey string `yaml:"time_key" toml:"time_key"`

	// DescriptionField and ActionsField are identifiers of the free-text
	// fields printed below each row.
	DescriptionField string `yaml:"description_field" toml:"description_field"`
	ActionsField     string `yaml:"actions_field" toml:"actions_field"`

	// DescriptionLabel and ActionsLabel prefix the free-text lines.
	DescriptionLabel string `yaml:"description_label" toml:"description_label"`
	ActionsLabel     string `yaml:"actions_label" toml:"actions_label"`

	// NoResultsMessage replaces the table when nothing falls in the window.
	NoResultsMessage string `yaml:"no_results_message" toml:"no_results_message"`

	// Color enables terminal styling of the presentation tags.
	// Default: true
	Color *bool `yaml:"color" toml:"color"`
}

// PriorityLevel maps a vocabulary word to its display code and sort rank.
type PriorityLevel struct {
	Label string `yaml:"label" toml:"label"`
	Code  string `yaml:"code" toml:"code"`
	Rank  int    `yaml:"rank" toml:"rank"`
}

// Column is one entry of the report grid.
type Column struct {
	// Key names the incidence value shown in this column.
	Key string `yaml:"key" toml:"key"`

	// Title is printed in the header row.
	Title string `yaml:"title" toml:"title"`

	// Width is the fixed number of characters of the cell.
	Width int `yaml:"width" toml:"width"`

	// Tag is the presentation tag (a color name) of the column.
	Tag string `yaml:"tag" toml:"tag"`
}

// ColorEnabled reports whether terminal styling is on.
func (r ReportSettings) ColorEnabled() bool {
	return r.Color == nil || *r.Color
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML or TOML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. When empty, the
//     built-in defaults are returned.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed, or validated.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(configPath))
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// EnsureDirectories creates the working directories used by batch processing.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.InputDir, c.OutputDir}
	if c.ArchiveOnSuccess {
		dirs = append(dirs, c.InputArchiveDir, c.OutputArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
