// Package config provides centralized configuration management for the report
// generator. It handles loading configuration from multiple sources, validation,
// and provides a type-safe API for accessing configuration values.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern IPLREPORT_<SECTION>_<KEY>:
//
//	IPLREPORT_INPUT_PRIMARY=data/deliveries.csv
//	IPLREPORT_OUTPUT_PATH=out/report.pdf
//	IPLREPORT_ANALYSIS_FEATURED_PLAYER="MS Dhoni"
//	IPLREPORT_LOGGING_LEVEL=debug
//	IPLREPORT_TELEMETRY_METRICS_FILE=metrics/ipl_report.prom
//
// # Configuration File
//
// When no file is passed to Load, report.yaml and configs/report.yaml are
// searched in the working directory:
//
//	input:
//	  primary: deliveries.csv
//	  fallback: content/deliveries.csv
//	analysis:
//	  featured_player: V Kohli
//	export:
//	  workbook_path: summary.xlsx
//
// # Validation
//
// The merged configuration is validated with struct tags at load time.
// Failures are returned as CONFIG errors.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For testing, use config.Default() and adjust the fields directly.
package config
