// Package report renders batting summaries into a multi-page PDF.
//
// A report is built in three steps:
//
//	doc := report.NewDocument(report.DefaultTheme(), meta)
//	for _, page := range report.Pages(summary) {
//	    if err := doc.AddPage(page); err != nil {
//	        return err
//	    }
//	}
//	err := doc.Close("report.pdf")
//
// Page composition uses go-pdf/fpdf. Horizontal bars, pies, legends and
// tables are vector drawings; vertical bar charts are rendered to PNG by
// go-chart and embedded. Close writes to a temporary file, checks it with
// pdfcpu and renames it over the destination.
//
// Theme carries every colour, font and size. Pages read it from the Canvas
// they are given, so two documents with different themes never interfere.
package report
