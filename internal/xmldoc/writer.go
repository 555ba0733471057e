// =============================================================================
// Incident Report - XML Document Module
// =============================================================================
//
// This module serializes the hierarchical incident document and reads it
// back for the report stage.
//
// XML STRUCTURE:
//   <?xml version="1.0" encoding="UTF-8"?>
//   <rows>                                   <!-- Root element -->
//     <row>                                  <!-- One element per source row -->
//       <data>15/11/2025</data>              <!-- One child per identifier -->
//       <prioritat>Alta</prioritat>
//       <hora>10:00</hora>
//     </row>
//   </rows>
//
// FIELD TEXT:
//   Cell text is written so that reading it back yields the same string,
//   including surrounding whitespace and carriage returns.
//
// =============================================================================

package xmldoc

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ginjaninja78/incident-report/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// RootElement and RowElement name the container elements.
	// Default: "rows" and "row"
	RootElement string
	RowElement  string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		RootElement:           types.RootElement,
		RowElement:            types.RowElement,
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Marshal serializes the document with the default options.
func Marshal(doc *types.Document) []byte {
	return MarshalWithOptions(doc, DefaultGenerateOptions())
}

// MarshalWithOptions serializes the document.
//
// PARAMETERS:
//   - doc: The hierarchical document. A nil document yields an empty root.
//   - options: The generation options.
//
// RETURNS:
//   - The XML document as a byte slice.
func MarshalWithOptions(doc *types.Document, options GenerateOptions) []byte {
	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
		buffer.WriteString("\n")
	}

	if doc.Len() == 0 {
		buffer.WriteString("<" + options.RootElement + "/>\n")
		return buffer.Bytes()
	}

	buffer.WriteString("<" + options.RootElement + ">\n")

	for _, record := range doc.Records {
		writeRecord(&buffer, record, options)
	}

	buffer.WriteString("</" + options.RootElement + ">\n")

	return buffer.Bytes()
}

// Write serializes the document to w.
func Write(w io.Writer, doc *types.Document) error {
	if _, err := w.Write(Marshal(doc)); err != nil {
		return fmt.Errorf("failed to write XML document: %w", err)
	}
	return nil
}

// writeRecord writes one row element with a child per field.
func writeRecord(buffer *bytes.Buffer, record types.Record, options GenerateOptions) {
	writeIndent(buffer, options.Indent, 1)

	if len(record.Fields) == 0 {
		buffer.WriteString("<" + options.RowElement + "/>\n")
		return
	}

	buffer.WriteString("<" + options.RowElement + ">\n")

	for _, field := range record.Fields {
		writeIndent(buffer, options.Indent, 2)
		buffer.WriteString("<")
		buffer.WriteString(field.Name)

		// Empty fields are self-closing.
		if field.Value == "" {
			buffer.WriteString("/>\n")
			continue
		}

		buffer.WriteString(">")
		buffer.WriteString(escapeXML(field.Value))
		buffer.WriteString("</")
		buffer.WriteString(field.Name)
		buffer.WriteString(">\n")
	}

	writeIndent(buffer, options.Indent, 1)
	buffer.WriteString("</" + options.RowElement + ">\n")
}

func writeIndent(buffer *bytes.Buffer, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}
}

// escapeXML escapes special characters in XML text content.
//
// ESCAPED CHARACTERS:
//   - & -> &amp;
//   - < -> &lt;
//   - > -> &gt;
//   - " -> &quot;
//   - ' -> &apos;
//   - carriage return -> &#xD; (parsers would otherwise fold it into a newline)
//
// Characters that XML 1.0 cannot carry at all are replaced with U+FFFD.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		case '\r':
			buffer.WriteString("&#xD;")
		default:
			if !isXMLChar(r) {
				r = utf8.RuneError
			}
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// =============================================================================
// XSD GENERATION
// =============================================================================

// GenerateXSD generates an XSD schema describing the document shape. Every
// field is optional text, in header order.
//
// PARAMETERS:
//   - identifiers: The deduplicated field identifiers in header order.
//
// RETURNS:
//   - The XSD schema as a byte slice.
func GenerateXSD(identifiers []string) []byte {
	var buffer bytes.Buffer

	buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buffer.WriteString(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">` + "\n")
	buffer.WriteString(`  <xs:element name="` + types.RootElement + `">` + "\n")
	buffer.WriteString("    <xs:complexType>\n")
	buffer.WriteString("      <xs:sequence>\n")
	buffer.WriteString(`        <xs:element name="` + types.RowElement + `" minOccurs="0" maxOccurs="unbounded">` + "\n")
	buffer.WriteString("          <xs:complexType>\n")
	buffer.WriteString("            <xs:sequence>\n")

	for _, id := range identifiers {
		buffer.WriteString(fmt.Sprintf(`              <xs:element name="%s" type="xs:string" minOccurs="0"/>`+"\n", escapeXML(id)))
	}

	buffer.WriteString("            </xs:sequence>\n")
	buffer.WriteString("          </xs:complexType>\n")
	buffer.WriteString("        </xs:element>\n")
	buffer.WriteString("      </xs:sequence>\n")
	buffer.WriteString("    </xs:complexType>\n")
	buffer.WriteString("  </xs:element>\n")
	buffer.WriteString("</xs:schema>\n")

	return buffer.Bytes()
}
