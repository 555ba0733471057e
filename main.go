// =============================================================================
// Incident Report - Main Entry Point
// =============================================================================
//
// USAGE:
//   incidents convert   - Convert one CSV/XLSX incident log to XML
//   incidents report    - Print the incidence report of an XML document
//   incidents process   - Convert and report every file in the input directory
//   incidents validate  - Check a source or XML document without writing
//   incidents version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Conversion and report stages (not for external import)
//   - pkg/       : Shared batch file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/incident-report/cmd"
)

func main() {
	cmd.Execute()
}
