package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"iplreport/internal/app"
	"iplreport/internal/config"
	apperrors "iplreport/internal/errors"
	"iplreport/internal/infrastructure"
	"iplreport/pkg/contracts"
)

const rule = "============================================================"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one report generation and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("ipl-report", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML config file (defaults to report.yaml or configs/report.yaml)")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("Failed to shut down telemetry", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Starting report generation",
		slog.String("version", contracts.Version),
		slog.String("config", cfg.String()))

	reporter, err := app.NewReporter(cfg, logger, providers)
	if err != nil {
		logger.Error("Failed to create reporter", slog.String("error", err.Error()))
		return 1
	}

	result, err := reporter.Run(context.Background())
	if err != nil {
		if apperrors.IsNotFound(err) {
			fmt.Fprintf(stderr, "Error: '%s' not found. Please ensure the dataset is available.\n", missingPath(err, cfg))
		}
		logger.Error("Report generation failed", slog.String("error", err.Error()))
		return 1
	}

	printSummary(stdout, result)
	return 0
}

// missingPath names the last input location that was tried
func missingPath(err error, cfg *config.Config) string {
	if resource, ok := apperrors.ContextValue(err, "resource"); ok {
		if path, ok := resource.(string); ok && path != "" {
			return path
		}
	}
	candidates := cfg.InputCandidates()
	return candidates[len(candidates)-1]
}

func printSummary(w io.Writer, result *app.Result) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SUCCESS! IPL Analysis Report Generated")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "File: %s\n", result.OutputPath)
	fmt.Fprintf(w, "Pages: %d comprehensive analysis pages\n", len(result.PageTitles))
	fmt.Fprintln(w, "Visualizations: Bar charts, Pie charts, Histograms, Tables")
	fmt.Fprintln(w, "Insights: Top performers, Power hitters, Strike rates, and more")
	fmt.Fprintf(w, "Deliveries analysed: %d\n", result.Deliveries)
	if len(result.ExportPaths) > 0 {
		fmt.Fprintf(w, "Exports: %s\n", strings.Join(result.ExportPaths, ", "))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Report includes:")
	for i, title := range result.PageTitles {
		fmt.Fprintf(w, "  %d. %s\n", i+1, title)
	}
	fmt.Fprintln(w, rule)
}
