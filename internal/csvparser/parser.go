// =============================================================================
// Incident Report - CSV Parser Module
// =============================================================================
//
// This module reads delimited exports of the incident form into a raw row
// grid. The first row is the header row; every following row is data.
// Interpretation of the rows (identifiers, record building) belongs to the
// converter module.
//
// FEATURES:
//   - Configurable delimiter (comma, semicolon, pipe, tab)
//   - UTF-8, ISO-8859-1 and Windows-1252 sources
//   - Ragged rows are returned as-is; short and long rows are handled later
//   - Cell text is preserved exactly, including surrounding whitespace
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/incident-report/internal/config"
	"github.com/ginjaninja78/incident-report/internal/types"
)

// utf8BOM is stripped from the start of UTF-8 exports.
const utf8BOM = "\ufeff"

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns its rows, header row first.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV reading settings.
//
// RETURNS:
//   - The row grid.
//   - types.ErrEmptyInput when the file holds no rows.
//   - A *types.SourceLoadError when the file cannot be opened or read.
func Parse(filePath string, settings config.CSVSettings) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &types.SourceLoadError{Path: filePath, Err: err}
	}
	defer file.Close()

	rows, err := ParseReader(file, settings)
	if err != nil {
		if errors.Is(err, types.ErrEmptyInput) {
			return nil, err
		}
		return nil, &types.SourceLoadError{Path: filePath, Err: err}
	}

	return rows, nil
}

// ParseReader reads CSV rows from r.
func ParseReader(r io.Reader, settings config.CSVSettings) ([][]string, error) {
	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	var reader io.Reader = bufio.NewReader(r)
	if decoder != nil {
		reader = transform.NewReader(reader, decoder.NewDecoder())
	}

	csvReader := csv.NewReader(reader)
	configureReader(csvReader, settings)

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, types.ErrEmptyInput
	}

	rows[0] = trimBOM(rows[0])

	return rows, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Rows may be ragged.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = settings.LazyQuotes

	// Leading spaces are part of the cell text.
	reader.TrimLeadingSpace = false
}

// decoderFor returns the charmap for a legacy encoding, or nil for UTF-8.
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTF-8", "UTF8":
		return nil, nil
	case "ISO-8859-1", "LATIN1":
		return charmap.ISO8859_1, nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
}

func trimBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return header
}
