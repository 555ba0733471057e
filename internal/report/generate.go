package report

import (
	"io"

	"go.uber.org/zap"

	"github.com/ginjaninja78/incident-report/internal/types"
)

// Summary describes one report run.
type Summary struct {
	Detection Detection
	Stats     Stats
}

// Generate detects fields, builds the incidences of doc and renders them
// to w. A detection miss is logged and yields the no-results report.
func Generate(w io.Writer, doc *types.Document, cfg Config, styler Styler, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pipeline := New(cfg, logger)

	detection := pipeline.Detect(doc)
	logger.Info("Detected report fields",
		zap.String("date_field", detection.DateField),
		zap.String("priority_field", detection.PriorityField))

	if detection.Missed() && doc.Len() > 0 {
		logger.Warn("No date or priority field found in the first record")
	}

	incidences, stats := pipeline.Build(doc, detection)

	logger.Debug("Built incidences",
		zap.Int("records", stats.Records),
		zap.Int("included", stats.Included),
		zap.Int("out_of_window", stats.OutOfWindow),
		zap.Int("unparsable", stats.Unparsable),
		zap.Int("field_absent", stats.FieldAbsent),
		zap.Stringer("window", cfg.Window))

	if err := NewRenderer(cfg, styler).Render(w, incidences); err != nil {
		return Summary{}, err
	}

	return Summary{Detection: detection, Stats: stats}, nil
}
