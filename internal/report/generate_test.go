package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ginjaninja78/incident-report/internal/converter"
	"github.com/ginjaninja78/incident-report/internal/report"
	"github.com/ginjaninja78/incident-report/internal/xmldoc"
)

func TestGenerateEndToEnd(t *testing.T) {
	rows := [][]string{
		{"Data", "Prioritat", "Hora"},
		{"15/11/2025", "Alta - urgent", "09:30"},
		{"20/11/2025", "Baixa", ""},
	}

	doc, headers, err := converter.Convert(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"data", "prioritat", "hora"}, headers)

	// Through the XML form, as the report command reads it.
	doc, err = xmldoc.Decode(bytes.NewReader(xmldoc.Marshal(doc)))
	require.NoError(t, err)

	cfg := report.DefaultConfig()
	cfg.Sources["hora"] = "hora"

	var out bytes.Buffer
	summary, err := report.Generate(&out, doc, cfg, report.PlainStyler{}, nil)
	require.NoError(t, err)

	assert.Equal(t, report.Detection{DateField: "data", PriorityField: "prioritat"}, summary.Detection)
	assert.Equal(t, 1, summary.Stats.Included)
	assert.Equal(t, 1, summary.Stats.OutOfWindow)

	var dataRows []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "15/11/2025") || strings.HasPrefix(line, "20/11/2025") {
			dataRows = append(dataRows, line)
		}
	}

	require.Len(t, dataRows, 1)
	assert.True(t, strings.HasPrefix(dataRows[0], "15/11/2025 | 09:30    | A    | Alta - urgent"))
	assert.NotContains(t, out.String(), "20/11/2025")
}

func TestGenerateDetectionMiss(t *testing.T) {
	doc, _, err := converter.Convert([][]string{
		{"Nom", "Comentari"},
		{"Anna", "cap data"},
	})
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)

	var out bytes.Buffer
	summary, err := report.Generate(&out, doc, report.DefaultConfig(), nil, zap.New(core))
	require.NoError(t, err)

	assert.True(t, summary.Detection.Missed())
	assert.Equal(t, 1, summary.Stats.FieldAbsent)
	assert.Equal(t, "No hi ha incidències en aquest rang.\n", out.String())
	assert.Equal(t, 1, logs.FilterMessage("No date or priority field found in the first record").Len())
}

func TestGenerateEmptyDocument(t *testing.T) {
	doc, _, err := converter.Convert([][]string{{"Data", "Prioritat"}})
	require.NoError(t, err)

	var out bytes.Buffer
	summary, err := report.Generate(&out, doc, report.DefaultConfig(), report.PlainStyler{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Stats.Records)
	assert.Equal(t, "No hi ha incidències en aquest rang.\n", out.String())
}
