// Package exporter writes the batting summary tables outside the PDF report.
//
// This package contains three components:
//
// SummaryTables: flattens an analytics.Summary into named tables with
// headers, one per summary table plus an overview.
//
// CSVWriter: core CSV writing with headers, append mode and a UTF-8 BOM
// for Excel compatibility. WriteTables writes one <name>.csv per table.
//
// WriteWorkbook: writes all tables into a single .xlsx workbook, one
// worksheet per table, with a styled header row.
//
// Example usage:
//
//	tables := exporter.SummaryTables(summary)
//
//	paths, err := exporter.NewCSVWriter("exports").WriteTables(tables)
//
//	err = exporter.WriteWorkbook("exports/summary.xlsx", tables)
package exporter
