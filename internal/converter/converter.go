// =============================================================================
// Incident Report - Converter Module
// =============================================================================
//
// This module contains the conversion stage. It turns the raw rows of an
// incident log into the hierarchical document consumed by the report stage.
//
// CONVERSION PIPELINE (per file):
//   1. Read the tabular source (CSV or XLSX, chosen by extension)
//   2. Sanitize and deduplicate the header labels into identifiers
//   3. Build one record per data row
//   4. Apply the configured cleanup rules
//   5. Check identifier legality
//   6. Write the XML document
//
// ROW SHAPE:
//   - Short rows: missing trailing fields are empty text
//   - Long rows: cells beyond the header count are dropped
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/incident-report/internal/config"
	"github.com/ginjaninja78/incident-report/internal/csvparser"
	"github.com/ginjaninja78/incident-report/internal/identifier"
	"github.com/ginjaninja78/incident-report/internal/types"
	"github.com/ginjaninja78/incident-report/internal/validation"
	"github.com/ginjaninja78/incident-report/internal/xlsxparser"
	"github.com/ginjaninja78/incident-report/internal/xmldoc"
	"github.com/ginjaninja78/incident-report/pkg/utils"
)

// =============================================================================
// DOCUMENT BUILDING
// =============================================================================

// Convert builds the hierarchical document from a row grid whose first row
// holds the column labels.
//
// RETURNS:
//   - The document.
//   - The deduplicated identifiers, in header order.
//   - types.ErrEmptyInput when rows is empty.
func Convert(rows [][]string) (*types.Document, []string, error) {
	if len(rows) == 0 {
		return nil, nil, types.ErrEmptyInput
	}

	headers := identifier.Dedupe(rows[0])

	doc, err := Build(rows, headers)
	if err != nil {
		return nil, nil, err
	}

	return doc, headers, nil
}

// Build zips every data row against headers positionally. rows includes the
// header row, which is skipped.
//
// PARAMETERS:
//   - rows: The full row grid, header row first.
//   - headers: The identifiers to use as field names.
//
// RETURNS:
//   - The document, one record per data row in source order.
//   - types.ErrEmptyInput when rows is empty.
func Build(rows [][]string, headers []string) (*types.Document, error) {
	if len(rows) == 0 {
		return nil, types.ErrEmptyInput
	}

	doc := &types.Document{Records: make([]types.Record, 0, len(rows)-1)}

	for _, row := range rows[1:] {
		record := types.Record{Fields: make([]types.Field, len(headers))}
		for i, name := range headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			record.Fields[i] = types.Field{Name: name, Value: value}
		}
		doc.Records = append(doc.Records, record)
	}

	return doc, nil
}

// ReadRows reads the tabular source at path, choosing the reader by extension.
func ReadRows(path string, cfg *config.Config) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return xlsxparser.Parse(path, cfg.XLSXSettings)
	default:
		return csvparser.Parse(path, cfg.CSVSettings)
	}
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated XML file.
	// This is empty if processing failed or output was not requested.
	OutputFile string

	// Document is the converted document. It is nil on failure.
	Document *types.Document

	// Headers are the deduplicated identifiers of the document.
	Headers []string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of data rows converted.
	RowsProcessed int

	// ShortRows and LongRows count rows that did not match the header width.
	ShortRows int
	LongRows  int

	// RenamedHeaders counts labels whose identifier received a suffix.
	RenamedHeaders int

	// ValidationErrors is the number of validation errors encountered.
	ValidationErrors int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single tabular file to XML.
type Converter struct {
	// inputPath is the path to the CSV or XLSX source.
	inputPath string

	// outputPath is where the XML document is written. When empty, a name is
	// generated in the configured output directory.
	outputPath string

	// dryRun skips writing the output file.
	dryRun bool

	cfg         *config.Config
	transformer *Transformer
	logger      *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithOutputPath sets an explicit output file.
func WithOutputPath(path string) Option {
	return func(c *Converter) {
		c.outputPath = path
	}
}

// WithDryRun converts without writing any file.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) {
		c.dryRun = dryRun
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the tabular source.
//   - cfg: The run configuration.
//   - logger: The logger. A nil logger discards output.
func New(inputPath string, cfg *config.Config, logger *zap.Logger, opts ...Option) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Converter{
		inputPath:   inputPath,
		cfg:         cfg,
		transformer: NewTransformer(cfg.TransformationRules),
		logger:      logger.With(zap.String("input", inputPath)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.inputPath,
		Success:  false,
	}

	// =========================================================================
	// STEP 1: READ TABULAR SOURCE
	// =========================================================================

	c.logger.Info("Processing file")

	rows, err := ReadRows(c.inputPath, c.cfg)
	if err != nil {
		result.Error = err
		return result
	}

	c.logger.Debug("Read source", zap.Int("rows", len(rows)))

	// =========================================================================
	// STEP 2: BUILD DOCUMENT
	// =========================================================================

	doc, headers, err := Convert(rows)
	if err != nil {
		result.Error = err
		return result
	}

	result.Headers = headers
	result.Stats.RowsProcessed = doc.Len()
	result.Stats.ShortRows, result.Stats.LongRows = countRagged(rows, len(headers))
	result.Stats.RenamedHeaders = countRenamed(rows[0], headers)

	if result.Stats.ShortRows > 0 || result.Stats.LongRows > 0 {
		c.logger.Warn("Rows do not match header width",
			zap.Int("short", result.Stats.ShortRows),
			zap.Int("long", result.Stats.LongRows))
	}

	c.logger.Debug("Built document",
		zap.Int("records", doc.Len()),
		zap.Strings("identifiers", headers))

	// =========================================================================
	// STEP 3: APPLY TRANSFORMATION RULES
	// =========================================================================

	if err := c.transformer.TransformDocument(doc); err != nil {
		result.Error = fmt.Errorf("failed to apply transformations: %w", err)
		return result
	}

	// =========================================================================
	// STEP 4: VALIDATE IDENTIFIERS
	// =========================================================================

	validationErrors := validation.ValidateDocument(doc)
	result.Stats.ValidationErrors = len(validationErrors)

	for _, ve := range validationErrors {
		c.logger.Warn("Validation error", zap.String("detail", ve.Error()))
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT FILE
	// =========================================================================

	result.Document = doc

	if !c.dryRun {
		outputPath, err := c.writeOutput(doc)
		if err != nil {
			result.Error = fmt.Errorf("failed to write output: %w", err)
			return result
		}

		result.OutputFile = outputPath
		c.logger.Info("Wrote output", zap.String("output", outputPath))
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeOutput writes the XML document and returns its path.
func (c *Converter) writeOutput(doc *types.Document) (string, error) {
	outputPath := c.outputPath
	if outputPath == "" {
		original := strings.TrimSuffix(filepath.Base(c.inputPath), filepath.Ext(c.inputPath))
		fileName := utils.GenerateOutputFileName(c.cfg.OutputFileFormat, map[string]string{
			"original": original,
		}, ".xml")
		outputPath = filepath.Join(c.cfg.OutputDir, fileName)
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, xmldoc.Marshal(doc), 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return outputPath, nil
}

// countRagged counts data rows shorter and longer than the header.
func countRagged(rows [][]string, width int) (short, long int) {
	for _, row := range rows[1:] {
		switch {
		case len(row) < width:
			short++
		case len(row) > width:
			long++
		}
	}
	return short, long
}

// countRenamed counts identifiers that differ from the plain sanitized label.
func countRenamed(labels, headers []string) int {
	renamed := 0
	for i, label := range labels {
		if identifier.Sanitize(label, i) != headers[i] {
			renamed++
		}
	}
	return renamed
}
