package csvparser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/ginjaninja78/incident-report/internal/config"
	"github.com/ginjaninja78/incident-report/internal/types"
)

func defaultSettings() config.CSVSettings {
	return config.CSVSettings{Delimiter: ",", Encoding: "UTF-8"}
}

func TestParseReader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		settings config.CSVSettings
		want     [][]string
	}{
		{
			name:     "header and rows",
			input:    "Data,Prioritat\n15/11/2025,Alta\n",
			settings: defaultSettings(),
			want:     [][]string{{"Data", "Prioritat"}, {"15/11/2025", "Alta"}},
		},
		{
			name:     "ragged rows are kept",
			input:    "a,b,c\n1\n1,2,3,4\n",
			settings: defaultSettings(),
			want:     [][]string{{"a", "b", "c"}, {"1"}, {"1", "2", "3", "4"}},
		},
		{
			name:     "surrounding whitespace preserved",
			input:    "a,b\n  x , y\n",
			settings: defaultSettings(),
			want:     [][]string{{"a", "b"}, {"  x ", " y"}},
		},
		{
			name:     "quoted fields with delimiter and newline",
			input:    "a,b\n\"1,5\",\"line1\nline2\"\n",
			settings: defaultSettings(),
			want:     [][]string{{"a", "b"}, {"1,5", "line1\nline2"}},
		},
		{
			name:     "semicolon delimiter",
			input:    "a;b\n1;2\n",
			settings: config.CSVSettings{Delimiter: ";"},
			want:     [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:     "tab delimiter by name",
			input:    "a\tb\n1\t2\n",
			settings: config.CSVSettings{Delimiter: "tab"},
			want:     [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:     "byte order mark stripped",
			input:    "\ufeffData,Hora\n1,2\n",
			settings: defaultSettings(),
			want:     [][]string{{"Data", "Hora"}, {"1", "2"}},
		},
		{
			name:     "header only",
			input:    "Data,Hora\n",
			settings: defaultSettings(),
			want:     [][]string{{"Data", "Hora"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReader(strings.NewReader(tt.input), tt.settings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReaderEmpty(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""), defaultSettings())
	assert.ErrorIs(t, err, types.ErrEmptyInput)
}

func TestParseReaderLegacyEncodings(t *testing.T) {
	for _, enc := range []string{"ISO-8859-1", "Windows-1252"} {
		t.Run(enc, func(t *testing.T) {
			encoded, err := charmap.Windows1252.NewEncoder().String("Àrea/Despatx,Descripció\nSala,Pantalla\n")
			require.NoError(t, err)

			got, err := ParseReader(strings.NewReader(encoded), config.CSVSettings{Delimiter: ",", Encoding: enc})
			require.NoError(t, err)
			assert.Equal(t, []string{"Àrea/Despatx", "Descripció"}, got[0])
		})
	}
}

func TestParseReaderUnsupportedEncoding(t *testing.T) {
	_, err := ParseReader(strings.NewReader("a\n"), config.CSVSettings{Encoding: "EBCDIC"})
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incidents.csv")
	require.NoError(t, os.WriteFile(path, []byte("Data,Hora\n15/11/2025,10:00\n"), 0644))

	got, err := Parse(path, defaultSettings())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Parse(filepath.Join(t.TempDir(), "missing.csv"), defaultSettings())

		var loadErr *types.SourceLoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Contains(t, loadErr.Path, "missing.csv")
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		_, err := Parse(path, defaultSettings())
		assert.ErrorIs(t, err, types.ErrEmptyInput)
	})

	t.Run("malformed quoting", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n\"open,1\n"), 0644))

		_, err := Parse(path, defaultSettings())

		var loadErr *types.SourceLoadError
		assert.True(t, errors.As(err, &loadErr))
	})
}
