package report

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPlain(t *testing.T, cfg Config, incidences []Incidence) []string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(cfg, PlainStyler{}).Render(&buf, incidences))

	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRenderNoResults(t *testing.T) {
	lines := renderPlain(t, testConfig(), nil)
	assert.Equal(t, []string{"No hi ha incidències en aquest rang."}, lines)
}

func TestRenderTable(t *testing.T) {
	cfg := testConfig()
	doc := docOf(
		record("data", "15/11/2025", "prioritat", "Alta", "hora", "09:30", "desc", "Sense xarxa", "acc", "Reinici"),
		record("data", "16/11/2025", "prioritat", "Baixa"),
	)
	incidences, _ := New(cfg, nil).Build(doc, detected)

	lines := renderPlain(t, cfg, incidences)
	total := cfg.TotalWidth()

	require.Len(t, lines, 10)
	assert.Equal(t, strings.Repeat("═", total), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Data       | Hora     | Prio | Prioritat"))
	assert.Equal(t, strings.Repeat("─", total), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "15/11/2025 | 09:30    | A    | Alta"))
	assert.Equal(t, "    Descripció: Sense xarxa", lines[4])
	assert.Equal(t, "    Accions   : Reinici", lines[5])
	assert.Equal(t, strings.Repeat("─", total), lines[6])
	assert.True(t, strings.HasPrefix(lines[7], "16/11/2025 |          | B    | Baixa"))
	assert.Equal(t, strings.Repeat("─", total), lines[8])
	assert.Equal(t, strings.Repeat("═", total), lines[9])

	for _, i := range []int{1, 3, 7} {
		assert.Equal(t, total, utf8.RuneCountInString(lines[i]), "line %d", i)
	}
}

func TestLipglossStylerKeepsText(t *testing.T) {
	var buf bytes.Buffer
	styler := NewLipglossStyler(&buf)

	out := styler.Cell("Data      ", "green", true)
	assert.Contains(t, out, "Data")

	out = styler.Cell("x", "no-such-tag", false)
	assert.Contains(t, out, "x")
}
