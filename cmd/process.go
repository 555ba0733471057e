// =============================================================================
// Incident Report - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs both stages over every
// incident log found in the input directory.
//
// COMMAND USAGE:
//   incidents process [flags]
//
// FLAGS:
//   --dry-run : Convert and report without writing or archiving anything
//   --file    : Process a single file instead of scanning the input directory
//
// PROCESSING PIPELINE:
//   1. Create the working directories
//   2. Discover CSV/XLSX files in the input directory
//   3. For each file, in name order:
//      a. Convert it to XML (output directory)
//      b. Write the plain-text report next to it
//      c. Archive the input and the XML when archive_on_success is set
//   4. Remove archives older than archive_retention_days
//   5. Write the summary log and, if needed, the error log
//
// Files are processed one at a time; a failure in one file does not stop the
// others.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/incident-report/internal/converter"
	"github.com/ginjaninja78/incident-report/internal/report"
	"github.com/ginjaninja78/incident-report/internal/types"
	"github.com/ginjaninja78/incident-report/internal/validation"
	"github.com/ginjaninja78/incident-report/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun simulates processing without writing output files.
var dryRun bool

// filePath processes a single file instead of the input directory.
var filePath string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert and report every incident log in the input directory",
	Long: `The process command scans the input directory for CSV and XLSX files and
runs the full pipeline on each: conversion to XML, then the incidence report
as a plain-text file.

On successful processing:
  - The XML and the report are placed in the output directory
  - The input is moved to the input archive (archive_on_success)
  - A summary log is written to the output directory

On error:
  - An error log is written to the output directory
  - The input remains in the input directory
  - Processing continues with the next file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Simulate processing without writing output files",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Process only this file",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// fileOutcome is the result of running both stages on one file.
type fileOutcome struct {
	conversion  converter.Result
	reportFile  string
	incidences  int
	archivePath string
	errorType   string
	err         error
	validation  []*validation.ValidationError
}

func runProcess(out io.Writer) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: PREPARE
	// =========================================================================

	reportCfg, err := report.NewConfig(cfg.Report)
	if err != nil {
		return fmt.Errorf("invalid report configuration: %w", err)
	}

	if !dryRun {
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	fm.UseTimestampSubdirs = cfg.ArchiveByDate

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = fm.DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No CSV or XLSX files found in the input directory.")
		return nil
	}

	logger.Info("Starting batch", zap.Int("files", len(inputFiles)), zap.Bool("dry_run", dryRun))
	fmt.Fprintf(out, "Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES
	// =========================================================================

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}
	var errorEntries []utils.ErrorLogEntry

	for _, file := range inputFiles {
		outcome := processFile(file, fm, reportCfg)
		name := filepath.Base(file)

		for _, ve := range outcome.validation {
			errorEntries = append(errorEntries, utils.ErrorLogEntry{
				Timestamp:    time.Now(),
				FileName:     name,
				ErrorType:    "validation:" + ve.Rule,
				ErrorMessage: ve.Message,
				RecordNumber: ve.RecordNumber,
				FieldName:    ve.Field,
				FieldValue:   ve.Value,
			})
		}
		summary.ValidationErrors += len(outcome.validation)

		if outcome.err != nil {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    file,
				ErrorMessage: outcome.err.Error(),
				ErrorType:    outcome.errorType,
			})
			errorEntries = append(errorEntries, utils.ErrorLogEntry{
				Timestamp:    time.Now(),
				FileName:     name,
				ErrorType:    outcome.errorType,
				ErrorMessage: outcome.err.Error(),
			})
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, outcome.err)
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalRows += outcome.conversion.Stats.RowsProcessed
		summary.TotalIncidences += outcome.incidences
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   file,
			OutputFile:  outcome.conversion.OutputFile,
			ReportFile:  outcome.reportFile,
			ArchivePath: outcome.archivePath,
			Rows:        outcome.conversion.Stats.RowsProcessed,
			Incidences:  outcome.incidences,
			ProcessTime: outcome.conversion.Stats.ProcessingTime,
		})
		fmt.Fprintf(out, "  ✓ %s -> %s (%d incidence(s))\n", name, outcome.conversion.OutputFile, outcome.incidences)
	}

	// =========================================================================
	// STEP 4: ARCHIVE RETENTION
	// =========================================================================

	if !dryRun && cfg.ArchiveRetentionDays > 0 {
		maxAge := time.Duration(cfg.ArchiveRetentionDays) * 24 * time.Hour
		for _, dir := range []string{cfg.InputArchiveDir, cfg.OutputArchiveDir} {
			if !utils.FileExists(dir) {
				continue
			}
			removed, err := utils.CleanOldArchives(dir, maxAge)
			if err != nil {
				logger.Warn("Archive cleanup failed", zap.String("dir", dir), zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("Removed old archives", zap.String("dir", dir), zap.Int("files", removed))
			}
		}
	}

	// =========================================================================
	// STEP 5: SUMMARY AND LOGS
	// =========================================================================

	summary.EndTime = time.Now()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Incidences:      %d\n", summary.TotalIncidences)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	if dryRun {
		return nil
	}

	summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
	if err != nil {
		return err
	}
	logger.Info("Wrote summary", zap.String("path", summaryPath))

	errorLogPath, err := utils.WriteErrorLog(errorEntries, cfg.OutputDir)
	if err != nil {
		return err
	}
	if errorLogPath != "" {
		fmt.Fprintf(out, "\nErrors have been logged to %s\n", errorLogPath)
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// processFile converts one file, writes its report and archives it.
func processFile(file string, fm *utils.FileManager, reportCfg report.Config) fileOutcome {
	var outcome fileOutcome

	outcome.conversion = converter.New(file, cfg, logger, converter.WithDryRun(dryRun)).Run()
	if !outcome.conversion.Success {
		outcome.err = outcome.conversion.Error
		outcome.errorType = errorType(outcome.err)
		return outcome
	}

	doc := outcome.conversion.Document
	outcome.validation = validation.ValidateDocument(doc)

	reportFile, incidences, err := writeReport(file, doc, reportCfg)
	if err != nil {
		outcome.err = err
		outcome.errorType = "report"
		return outcome
	}
	outcome.reportFile = reportFile
	outcome.incidences = incidences

	if dryRun || !cfg.ArchiveOnSuccess {
		return outcome
	}

	archived, err := fm.ArchiveInputFile(file)
	if err != nil {
		outcome.err = err
		outcome.errorType = "archive"
		return outcome
	}
	outcome.archivePath = archived

	if _, err := fm.ArchiveOutputFile(outcome.conversion.OutputFile); err != nil {
		logger.Warn("Failed to archive output", zap.String("output", outcome.conversion.OutputFile), zap.Error(err))
	}

	return outcome
}

// writeReport renders the plain-text report of doc next to the XML output.
func writeReport(file string, doc *types.Document, reportCfg report.Config) (string, int, error) {
	var (
		w    io.Writer = io.Discard
		path string
	)

	if !dryRun {
		original := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		name := utils.GenerateOutputFileName(cfg.OutputFileFormat, map[string]string{
			"original": original,
		}, ".txt")
		path = filepath.Join(cfg.OutputDir, name)

		f, err := os.Create(path)
		if err != nil {
			return "", 0, fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		w = f
	}

	summary, err := report.Generate(w, doc, reportCfg, report.PlainStyler{}, logger.With(zap.String("input", file)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to write report: %w", err)
	}

	return path, summary.Stats.Included, nil
}

// errorType classifies a conversion failure for the logs.
func errorType(err error) string {
	var loadErr *types.SourceLoadError
	switch {
	case errors.Is(err, types.ErrEmptyInput):
		return "empty_input"
	case errors.As(err, &loadErr):
		return "source_load"
	default:
		return "conversion"
	}
}
