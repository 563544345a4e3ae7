package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"backtest-analyzer/internal/dom"
	"backtest-analyzer/internal/logger"
	"backtest-analyzer/internal/reporter"
	"backtest-analyzer/internal/types"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to config file")
	format := flag.String("format", "", "output format: text, json, yaml, csv, html or pdf (default from config)")
	outputFile := flag.String("output", "", "save report to file (optional)")
	records := flag.Bool("records", false, "include the extracted trade records in json/yaml output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <report.htm>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one report file is required")
		flag.Usage()
		return 1
	}
	reportPath := flag.Arg(0)

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return 1
	}
	defer shutdownSystem()

	ctx := context.Background()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if *records {
		cfg.Report.IncludeRecords = true
	}

	formatName := cfg.Report.Format
	if *format != "" {
		formatName = *format
	}
	reportFormat, err := reporter.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	root, err := dom.LoadFile(reportPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load report", err, "path", reportPath)
		fmt.Fprintf(os.Stderr, "Error loading report: %v\n", err)
		return 1
	}

	analysis, err := initializeAnalyzer(cfg).Analyze(ctx, root, reportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running analysis: %v\n", err)
		return 1
	}

	rep := reporter.NewReporter(cfg.Report.OutputDir, cfg.Report.Chart)

	content, err := rep.GenerateReport(analysis, reportFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		return 1
	}

	// html and pdf go to a file only
	if printable(reportFormat) {
		os.Stdout.Write(content)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, content, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving report to file: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Report saved to: %s\n", *outputFile)
	} else {
		savedPath, err := rep.SaveReport(analysis, reportFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not auto-save report: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Report auto-saved to: %s\n", savedPath)
		}
		compressOldReports(ctx, rep, cfg.Report.RetentionDays)
	}

	printSummary(analysis)

	// Exit code 2 tells scripts the file held no trade ledger
	if !analysis.HasLedger() {
		return 2
	}
	return 0
}

func printable(f reporter.ReportFormat) bool {
	return f != reporter.FormatHTML && f != reporter.FormatPDF
}

func printSummary(analysis *types.Analysis) {
	fmt.Fprintf(os.Stderr, "Analysis complete for %s\n", analysis.Source)
	if !analysis.HasLedger() {
		fmt.Fprintf(os.Stderr, "No trade ledger found (%s)\n", analysis.Status)
		return
	}
	fmt.Fprintf(os.Stderr, "Months: %d, trades: %d, net profit: %.2f\n",
		len(analysis.Months), analysis.Totals.Trades, analysis.Totals.NetProfit)
}
