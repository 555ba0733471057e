package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/incident-report/internal/types"
)

// xmlRoot mirrors the root container. Any element name is accepted for the
// root and its rows.
type xmlRoot struct {
	XMLName xml.Name
	Rows    []xmlRow `xml:",any"`
}

type xmlRow struct {
	XMLName xml.Name
	Fields  []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Read loads a hierarchical document from an XML file.
//
// RETURNS:
//   - The document, with records and fields in document order.
//   - A *types.SourceLoadError when the file is missing or malformed.
func Read(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.SourceLoadError{Path: path, Err: err}
	}

	doc, err := decode(data)
	if err != nil {
		return nil, &types.SourceLoadError{Path: path, Err: err}
	}

	return doc, nil
}

// Decode reads a hierarchical document from r.
func Decode(r io.Reader) (*types.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &types.SourceLoadError{Err: err}
	}

	doc, err := decode(data)
	if err != nil {
		return nil, &types.SourceLoadError{Err: err}
	}

	return doc, nil
}

func decode(data []byte) (*types.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("document has no root element")
	}

	var root xmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	doc := &types.Document{Records: make([]types.Record, 0, len(root.Rows))}
	for _, row := range root.Rows {
		record := types.Record{Fields: make([]types.Field, 0, len(row.Fields))}
		for _, field := range row.Fields {
			record.Fields = append(record.Fields, types.Field{
				Name:  field.XMLName.Local,
				Value: field.Value,
			})
		}
		doc.Records = append(doc.Records, record)
	}

	return doc, nil
}
