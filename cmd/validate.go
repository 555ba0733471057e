// =============================================================================
// Incident Report - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It checks an input without
// writing anything: identifier legality and uniqueness, plus the fields the
// report stage would detect.
//
// COMMAND USAGE:
//   incidents validate --input log.csv
//   incidents validate --input log.xml --log errors.txt
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/incident-report/internal/converter"
	"github.com/ginjaninja78/incident-report/internal/report"
	"github.com/ginjaninja78/incident-report/internal/types"
	"github.com/ginjaninja78/incident-report/internal/validation"
	"github.com/ginjaninja78/incident-report/internal/xmldoc"
)

var (
	validateInput string
	validateLog   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a source file or XML document without writing output",
	Long: `The validate command loads a CSV, XLSX or XML input, checks that every
field name is a legal XML element name and that no record repeats a name,
and shows which fields the report stage would use as date and priority.

The command fails when validation errors are found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "CSV, XLSX or XML file to validate")
	validateCmd.Flags().StringVar(&validateLog, "log", "", "Also write the errors to this file")
	_ = validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command) error {
	doc, err := loadDocument(validateInput)
	if err != nil {
		return err
	}

	reportCfg, err := report.NewConfig(cfg.Report)
	if err != nil {
		return fmt.Errorf("invalid report configuration: %w", err)
	}

	errs := validation.ValidateDocument(doc)
	detection := report.Detect(doc, reportCfg.Labels())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Records:        %d\n", doc.Len())
	fmt.Fprintf(out, "Date field:     %s\n", orNone(detection.DateField))
	fmt.Fprintf(out, "Priority field: %s\n\n", orNone(detection.PriorityField))
	fmt.Fprintln(out, validation.FormatErrors(errs))

	if validateLog != "" && len(errs) > 0 {
		if err := validation.WriteErrorLog(errs, validateLog); err != nil {
			return err
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	return nil
}

// loadDocument reads an XML document directly, or converts a tabular
// source in memory.
func loadDocument(path string) (*types.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return xmldoc.Read(path)
	}

	result := converter.New(path, cfg, logger, converter.WithDryRun(true)).Run()
	if !result.Success {
		return nil, fmt.Errorf("failed to convert %s: %w", path, result.Error)
	}
	return result.Document, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
