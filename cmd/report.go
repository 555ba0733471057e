// =============================================================================
// Incident Report - Report Command
// =============================================================================
//
// This file defines the 'report' command, the second stage of the tool. It
// reads an XML document produced by 'convert' and prints the incidences that
// fall inside the configured date window.
//
// COMMAND USAGE:
//   incidents report --input log.xml [--output report.txt] [--no-color]
//
// FLAGS:
//   --input    : XML document (required)
//   --output   : Write the report to a file instead of stdout (never colored)
//   --no-color : Disable terminal styling
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/incident-report/internal/report"
	"github.com/ginjaninja78/incident-report/internal/xmldoc"
)

var (
	reportInput   string
	reportOutput  string
	reportNoColor bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the incidence report of an XML document",
	Long: `The report command finds the date and priority fields of the document by
looking at the first record, keeps the records dated inside the configured
window, and prints them sorted by date, priority rank and time of day.

The window, date formats, priority levels and columns all come from the
'report' section of the configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "XML document to report on")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the report to this file")
	reportCmd.Flags().BoolVar(&reportNoColor, "no-color", false, "Disable terminal colors")
	_ = reportCmd.MarkFlagRequired("input")
}

func runReport(cmd *cobra.Command) error {
	reportCfg, err := report.NewConfig(cfg.Report)
	if err != nil {
		return fmt.Errorf("invalid report configuration: %w", err)
	}

	doc, err := xmldoc.Read(reportInput)
	if err != nil {
		return err
	}

	var (
		w      io.Writer = cmd.OutOrStdout()
		styler report.Styler
	)

	if reportOutput != "" {
		file, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		w = file
	} else if !reportNoColor && cfg.Report.ColorEnabled() {
		styler = report.NewLipglossStyler(w)
	}

	summary, err := report.Generate(w, doc, reportCfg, styler, logger)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Report complete",
		zap.String("input", reportInput),
		zap.Int("records", summary.Stats.Records),
		zap.Int("incidences", summary.Stats.Included))

	return nil
}
