package config

import (
	"fmt"
	"strings"
)

// Column keys whose values are derived by the report stage rather than
// copied from a document field.
const (
	KeyDate         = "data"
	KeyPriority     = "prioritat"
	KeyPriorityCode = "prioritat_icon"
)

// DefaultDateFormats are the accepted date layouts, in the order they are tried:
// day/month/year, day-month-year, year-month-day, then day/month/year with
// hour:minute and hour:minute:second.
var DefaultDateFormats = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-1-2",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
}

// DefaultPriorities is the incident desk vocabulary.
var DefaultPriorities = []PriorityLevel{
	{Label: "Alta", Code: "A", Rank: 1},
	{Label: "Mitjana", Code: "M", Rank: 2},
	{Label: "Baixa", Code: "B", Rank: 3},
}

// DefaultColumns is the report grid.
var DefaultColumns = []Column{
	{Key: KeyDate, Title: "Data", Width: 10, Tag: "green"},
	{Key: "hora", Title: "Hora", Width: 8, Tag: "cyan"},
	{Key: KeyPriorityCode, Title: "Prio", Width: 4, Tag: "magenta"},
	{Key: KeyPriority, Title: "Prioritat", Width: 40, Tag: "yellow"},
	{Key: "nom", Title: "Nom", Width: 20, Tag: "blue"},
	{Key: "area", Title: "Àrea/Despatx", Width: 18, Tag: "gray"},
	{Key: "tipus", Title: "Tipus", Width: 20, Tag: "white"},
	{Key: "moment", Title: "Moment problema", Width: 25, Tag: "red"},
	{Key: "equip", Title: "Equip", Width: 15, Tag: "green"},
}

// DefaultSources maps the copied columns to the identifiers produced by the
// converter for the incident form export.
var DefaultSources = map[string]string{
	"hora":   "hora_de_la_incidencia",
	"nom":    "nom_de_persona_que_reporta_la_incidencia",
	"area":   "areadespatx",
	"tipus":  "tipus_dincidencia",
	"moment": "en_quin_moment_passa_el_problema",
	"equip":  "equip_afectat_codi_equip_xxxxx-000",
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.OutputArchiveDir == "" {
		cfg.OutputArchiveDir = "./output_archive"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.OutputFileFormat == "" {
		cfg.OutputFileFormat = "{original}"
	}

	// CSV settings defaults.
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.CSVSettings.Encoding == "" {
		cfg.CSVSettings.Encoding = "UTF-8"
	}

	applyReportDefaults(&cfg.Report)
}

// applyReportDefaults fills the report section.
func applyReportDefaults(r *ReportSettings) {
	if r.WindowStart == "" {
		r.WindowStart = "01/11/2025"
	}
	if r.WindowEnd == "" {
		r.WindowEnd = "17/11/2025"
	}
	if len(r.DateFormats) == 0 {
		r.DateFormats = append([]string(nil), DefaultDateFormats...)
	}
	if r.DateDisplayFormat == "" {
		r.DateDisplayFormat = "02/01/2006"
	}
	if r.TimeFormat == "" {
		r.TimeFormat = "15:04"
	}
	if len(r.Priorities) == 0 {
		r.Priorities = append([]PriorityLevel(nil), DefaultPriorities...)
	}
	if len(r.Columns) == 0 {
		r.Columns = append([]Column(nil), DefaultColumns...)
	}
	if r.Sources == nil {
		r.Sources = make(map[string]string, len(DefaultSources))
		for k, v := range DefaultSources {
			r.Sources[k] = v
		}
	}
	if r.TimeKey == "" {
		r.TimeKey = "hora"
	}
	if r.DescriptionField == "" {
		r.DescriptionField = "descripcio_detallada_del_problema"
	}
	if r.ActionsField == "" {
		r.ActionsField = "accions_realitzades_abans_de_reportar_reinici_canvi_de_cable_reinstal_lacio_etc"
	}
	if r.DescriptionLabel == "" {
		r.DescriptionLabel = "Descripció"
	}
	if r.ActionsLabel == "" {
		r.ActionsLabel = "Accions   "
	}
	if r.NoResultsMessage == "" {
		r.NoResultsMessage = "No hi ha incidències en aquest rang."
	}
}

// validate checks the configuration for values that cannot work.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	if cfg.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days cannot be negative")
	}

	switch strings.ToUpper(cfg.CSVSettings.Encoding) {
	case "UTF-8", "UTF8", "ISO-8859-1", "LATIN1", "WINDOWS-1252", "CP1252":
	default:
		return fmt.Errorf("unsupported csv encoding %q", cfg.CSVSettings.Encoding)
	}

	for i, col := range cfg.Report.Columns {
		if col.Key == "" {
			return fmt.Errorf("report column %d has no key", i+1)
		}
		if col.Width < 1 {
			return fmt.Errorf("report column %q must have a width of at least 1", col.Key)
		}
	}

	for _, p := range cfg.Report.Priorities {
		if p.Label == "" || p.Code == "" {
			return fmt.Errorf("priority levels need both a label and a code")
		}
	}

	return nil
}
