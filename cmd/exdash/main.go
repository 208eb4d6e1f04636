// Package main provides the CLI entry point for exdash.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/exdash-go/pkg/exdash"
	"github.com/ukaji3/exdash-go/pkg/exdash/config"
	"github.com/ukaji3/exdash-go/pkg/exdash/logging"
	"github.com/ukaji3/exdash-go/pkg/exdash/output"
)

var (
	configPath  string
	logLevel    string
	sheetName   string
	fullSheet   bool
	printArea   bool
	replaceNull bool
	serial      bool
	format      string
	pretty      bool
	outputPath  string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "exdash",
		Short: "Aggregate and chart data from Excel sheets",
		Long: `exdash loads a sheet from an Excel workbook, optionally fills empty cells
and numbers the rows, then aggregates, summarizes or charts it.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "exdash.yaml", "Config file path (optional)")
	pf.StringVar(&logLevel, "log-level", "", "Override log level: debug, info, warn, error")
	pf.StringVarP(&sheetName, "sheet", "s", "", "Sheet to use (default: first sheet)")
	pf.BoolVar(&fullSheet, "full-sheet", false, "Read the whole sheet instead of the detected data region")
	pf.BoolVar(&printArea, "print-area", false, "Read the sheet's first print area when defined")
	pf.BoolVar(&replaceNull, "replace-null", false, "Fill empty cells with the configured null marker")
	pf.BoolVar(&serial, "serial", false, "Prepend a serial number column")
	pf.StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")

	rootCmd.AddCommand(
		newSheetsCmd(),
		newShowCmd(),
		newAggregateCmd(),
		newCalcCmd(),
		newChartCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("full-sheet") {
		cfg.Load.FullSheet = fullSheet
	}
	if cmd.Flags().Changed("print-area") {
		cfg.Load.UsePrintArea = printArea
	}

	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format: %s (must be text, json, or yaml)", format)
	}

	logger, err = logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	return nil
}

// openSession loads inputPath and applies the sheet selection and table edits
// requested on the command line.
func openSession(inputPath string) (*exdash.Session, error) {
	detect := !cfg.Load.FullSheet
	usePrintArea := cfg.Load.UsePrintArea
	s, err := exdash.Open(inputPath, exdash.Options{
		DetectRegion: &detect,
		UsePrintArea: &usePrintArea,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	if sheetName != "" {
		if err := s.SelectSheet(sheetName); err != nil {
			return nil, err
		}
	}
	if replaceNull {
		if err := s.ReplaceEmpty(cfg.Table.NullMarker); err != nil {
			return nil, err
		}
	}
	if serial {
		if err := s.AddSerialNumbers(cfg.Table.SerialColumn); err != nil {
			return nil, err
		}
	}

	logger.Info("sheet ready",
		zap.String("book", s.Workbook.BookName),
		zap.String("sheet", s.Sheet()),
		zap.Int("rows", s.Data().Len()),
		zap.Int("columns", s.Data().Width()))
	return s, nil
}

// emit writes v in the selected format. text renders it with writeText.
func emit(v interface{}, writeText func(w io.Writer) error) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = output.ToJSON(v, pretty)
		data = append(data, '\n')
	case "yaml":
		data, err = output.ToYAML(v)
	default:
		return writeText(w)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
