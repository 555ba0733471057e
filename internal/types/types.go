// =============================================================================
// Incident Report - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter   (builds the Document)
//   - xmldoc      (serializes and reads the Document)
//   - validation  (checks identifier legality)
//   - report      (reads the Document, never mutates it)
//
// =============================================================================

package types

// =============================================================================
// DOCUMENT MARKERS
// =============================================================================

const (
	// RootElement is the fixed top-level marker of the hierarchical document.
	RootElement = "rows"

	// RowElement is the element name of every record in the document.
	RowElement = "row"
)

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// Document is the hierarchical form of an incident log.
// Record order always equals the source row order.
type Document struct {
	// Records contains one entry per data row of the tabular source.
	Records []Record
}

// Record represents one incident row. Fields keep the header order so that
// consumers iterating over a record see the columns as they were in the source.
type Record struct {
	// Fields contains the identifier/value pairs of this record.
	Fields []Field
}

// Field is a single identifier/value pair inside a record.
type Field struct {
	// Name is the sanitized, deduplicated identifier of the column.
	Name string

	// Value is the raw cell text. It may be empty.
	Value string
}

// Get returns the value stored under name and whether the field exists.
// When a record carries the same name twice, the first one wins.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Names returns the field identifiers in record order.
func (r Record) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of records in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// First returns the first record and true, or false when the document is empty.
func (d *Document) First() (Record, bool) {
	if d.Len() == 0 {
		return Record{}, false
	}
	return d.Records[0], true
}
