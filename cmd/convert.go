// =============================================================================
// Incident Report - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the first stage of the tool. It
// turns one tabular incident log into the hierarchical XML document.
//
// COMMAND USAGE:
//   incidents convert --input log.csv [--output log.xml] [--xsd log.xsd]
//
// FLAGS:
//   --input   : CSV or XLSX source (required)
//   --output  : XML destination (default: generated in the output directory)
//   --xsd     : Also write an XML schema describing the document
//   --dry-run : Convert and validate without writing files
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/incident-report/internal/converter"
	"github.com/ginjaninja78/incident-report/internal/xmldoc"
)

var (
	convertInput  string
	convertOutput string
	convertXSD    string
	convertDryRun bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a CSV or XLSX incident log to XML",
	Long: `The convert command reads a tabular incident log, turns every column label
into a legal and unique XML element name, and writes one <row> per data row.

Short rows are padded with empty fields and extra cells are dropped. Cell
text is kept exactly as read, including surrounding whitespace.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "CSV or XLSX file to convert")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "XML file to write (default: generated in output_dir)")
	convertCmd.Flags().StringVar(&convertXSD, "xsd", "", "Also write an XML schema to this path")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "Convert without writing any file")
	_ = convertCmd.MarkFlagRequired("input")
}

func runConvert(cmd *cobra.Command) error {
	conv := converter.New(convertInput, cfg, logger,
		converter.WithOutputPath(convertOutput),
		converter.WithDryRun(convertDryRun))

	result := conv.Run()
	if !result.Success {
		return fmt.Errorf("failed to convert %s: %w", convertInput, result.Error)
	}

	if convertXSD != "" && !convertDryRun {
		if err := os.WriteFile(convertXSD, xmldoc.GenerateXSD(result.Headers), 0644); err != nil {
			return fmt.Errorf("failed to write schema: %w", err)
		}
		logger.Info("Wrote schema", zap.String("xsd", convertXSD))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Converted %d row(s), %d column(s)\n", result.Stats.RowsProcessed, len(result.Headers))
	if result.OutputFile != "" {
		fmt.Fprintf(out, "Output: %s\n", result.OutputFile)
	}
	if result.Stats.ValidationErrors > 0 {
		fmt.Fprintf(out, "Warnings: %d validation error(s), run 'incidents validate' for details\n", result.Stats.ValidationErrors)
	}

	return nil
}
