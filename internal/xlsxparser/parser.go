// =============================================================================
// Incident Report - XLSX Parser Module
// =============================================================================
//
// This module reads spreadsheet exports of the incident form. The sheet is
// laid out like the CSV export: the first row holds the column labels and
// each following row is one incident.
//
// SHEET SELECTION:
//   - A configured sheet name is used when present
//   - Otherwise the first sheet of the workbook
//
// ROW HANDLING:
//   - Trailing empty rows reported by the workbook are dropped
//   - Cell text is returned exactly as formatted by the workbook
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/incident-report/internal/config"
	"github.com/ginjaninja78/incident-report/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a workbook and returns the rows of the selected sheet, header
// row first.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - settings: The spreadsheet reading settings.
//
// RETURNS:
//   - The row grid.
//   - types.ErrEmptyInput when the sheet holds no rows.
//   - A *types.SourceLoadError when the workbook or sheet cannot be read.
func Parse(filePath string, settings config.XLSXSettings) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, &types.SourceLoadError{Path: filePath, Err: err}
	}
	defer f.Close()

	sheetName, err := selectSheet(f, settings.Sheet)
	if err != nil {
		return nil, &types.SourceLoadError{Path: filePath, Err: err}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &types.SourceLoadError{Path: filePath, Err: fmt.Errorf("failed to read rows: %w", err)}
	}

	rows = trimTrailingEmpty(rows)
	if len(rows) == 0 {
		return nil, types.ErrEmptyInput
	}

	return rows, nil
}

// selectSheet resolves the sheet to read.
func selectSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		first := f.GetSheetName(0)
		if first == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return first, nil
	}

	for _, sheet := range f.GetSheetList() {
		if strings.EqualFold(sheet, name) {
			return sheet, nil
		}
	}

	return "", fmt.Errorf("sheet %q not found", name)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// trimTrailingEmpty drops empty rows at the end of the sheet. Empty rows in
// the middle are kept so row positions match the workbook.
func trimTrailingEmpty(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isRowEmpty(rows[end-1]) {
		end--
	}
	return rows[:end]
}
