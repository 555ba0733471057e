package types

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the tabular source has no rows at all,
// not even a header. It is reported distinctly from SourceLoadError.
var ErrEmptyInput = errors.New("tabular source is empty")

// SourceLoadError reports that a tabular or hierarchical source could not be
// obtained or parsed at the structural level. No partial output is produced.
type SourceLoadError struct {
	// Path is the file that failed to load. Empty for in-memory sources.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *SourceLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load source: %v", e.Err)
	}
	return fmt.Sprintf("failed to load source %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause so errors.Is works through the wrapper.
func (e *SourceLoadError) Unwrap() error {
	return e.Err
}
