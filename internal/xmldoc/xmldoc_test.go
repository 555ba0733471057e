package xmldoc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/incident-report/internal/types"
)

func sampleDocument() *types.Document {
	return &types.Document{Records: []types.Record{
		{Fields: []types.Field{
			{Name: "data", Value: "15/11/2025"},
			{Name: "prioritat", Value: "Alta"},
			{Name: "hora", Value: "10:00"},
		}},
		{Fields: []types.Field{
			{Name: "data", Value: "20/11/2025"},
			{Name: "prioritat", Value: ""},
			{Name: "hora", Value: "09:00"},
		}},
	}}
}

func TestMarshalLayout(t *testing.T) {
	want := `<?xml version="1.0" encoding="UTF-8"?>
<rows>
  <row>
    <data>15/11/2025</data>
    <prioritat>Alta</prioritat>
    <hora>10:00</hora>
  </row>
  <row>
    <data>20/11/2025</data>
    <prioritat/>
    <hora>09:00</hora>
  </row>
</rows>
`
	assert.Equal(t, want, string(Marshal(sampleDocument())))
}

func TestMarshalEmptyDocument(t *testing.T) {
	got := string(Marshal(&types.Document{}))
	assert.True(t, strings.HasSuffix(got, "<rows/>\n"))

	doc, err := Decode(strings.NewReader(got))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestRoundTripPreservesText(t *testing.T) {
	values := []string{
		"plain",
		"  leading and trailing  ",
		"a & b < c > d",
		`"quoted" and 'single'`,
		"line1\nline2",
		"crlf\r\nline",
		"tab\there",
		"Àrea/Despatx · ñ",
		"",
	}

	record := types.Record{}
	for i, v := range values {
		record.Fields = append(record.Fields, types.Field{Name: "f" + string(rune('a'+i)), Value: v})
	}
	doc := &types.Document{Records: []types.Record{record}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	for i, v := range values {
		name := "f" + string(rune('a'+i))
		value, ok := got.Records[0].Get(name)
		require.True(t, ok, "field %s missing", name)
		assert.Equal(t, v, value, "field %s", name)
	}
}

func TestRoundTripKeepsOrder(t *testing.T) {
	doc := sampleDocument()

	got, err := Decode(bytes.NewReader(Marshal(doc)))
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestEscapeXMLReplacesIllegalCharacters(t *testing.T) {
	assert.Equal(t, "a\uFFFDb", escapeXML("a\x01b"))
	assert.Equal(t, "&amp;&lt;&gt;&quot;&apos;&#xD;", escapeXML("&<>\"'\r"))
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "  \n"},
		{name: "truncated", input: "<rows><row><data>1</data>"},
		{name: "mismatched tags", input: "<rows><row></rows></row>"},
		{name: "not xml", input: "Data,Hora\n1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))

			var loadErr *types.SourceLoadError
			assert.True(t, errors.As(err, &loadErr), "got %v", err)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incidents.xml")
	require.NoError(t, os.WriteFile(path, Marshal(sampleDocument()), 0644))

	doc, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())

	_, err = Read(filepath.Join(dir, "missing.xml"))
	var loadErr *types.SourceLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Path, "missing.xml")
}

func TestGenerateXSD(t *testing.T) {
	xsd := string(GenerateXSD([]string{"data", "hora"}))

	assert.Contains(t, xsd, `<xs:element name="rows">`)
	assert.Contains(t, xsd, `<xs:element name="row" minOccurs="0" maxOccurs="unbounded">`)
	assert.Contains(t, xsd, `<xs:element name="data" type="xs:string" minOccurs="0"/>`)
	assert.Contains(t, xsd, `<xs:element name="hora" type="xs:string" minOccurs="0"/>`)
}
