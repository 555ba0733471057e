package xlsxparser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/incident-report/internal/config"
	"github.com/ginjaninja78/incident-report/internal/types"
)

// writeWorkbook saves a workbook whose first sheet holds rows.
func writeWorkbook(t *testing.T, rows [][]string, extraSheet string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	if extraSheet != "" {
		_, err := f.NewSheet(extraSheet)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(extraSheet, "A1", "Altres"))
	}

	path := filepath.Join(t.TempDir(), "incidents.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseFirstSheet(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"Data", "Prioritat", "Hora"},
		{"15/11/2025", "Alta", "10:00"},
		{"16/11/2025", "Baixa", "11:30"},
	}, "")

	rows, err := Parse(path, config.XLSXSettings{})
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Data", "Prioritat", "Hora"}, rows[0])
	assert.Equal(t, []string{"16/11/2025", "Baixa", "11:30"}, rows[2])
}

func TestParseNamedSheet(t *testing.T) {
	path := writeWorkbook(t, [][]string{{"Data"}}, "Resum")

	rows, err := Parse(path, config.XLSXSettings{Sheet: "resum"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Altres"}}, rows)
}

func TestParseMissingSheet(t *testing.T) {
	path := writeWorkbook(t, [][]string{{"Data"}}, "")

	_, err := Parse(path, config.XLSXSettings{Sheet: "Absent"})

	var loadErr *types.SourceLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "not found")
}

func TestParseEmptySheet(t *testing.T) {
	path := writeWorkbook(t, nil, "")

	_, err := Parse(path, config.XLSXSettings{})
	assert.ErrorIs(t, err, types.ErrEmptyInput)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx"), config.XLSXSettings{})

	var loadErr *types.SourceLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestTrimTrailingEmpty(t *testing.T) {
	rows := [][]string{{"a"}, {}, {"b"}, {" "}, {}}
	assert.Equal(t, [][]string{{"a"}, {}, {"b"}}, trimTrailingEmpty(rows))
	assert.Empty(t, trimTrailingEmpty([][]string{{}, {""}}))
}
