package exporter

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"iplreport/internal/files"
)

// WriteWorkbook writes the tables to an .xlsx file, one worksheet per table.
// Numeric cells are stored as numbers so they sort and sum in a spreadsheet.
func WriteWorkbook(path string, tables []Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F77B4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Sheet); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", t.Sheet, err)
			}
		} else if _, err := f.NewSheet(t.Sheet); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", t.Sheet, err)
		}

		if err := writeSheet(f, t, headerStyle); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", t.Sheet, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := files.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	slog.Debug("Workbook written",
		slog.String("path", path),
		slog.Int("sheets", len(tables)))
	return nil
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &header); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for r, record := range t.Rows {
		row := make([]interface{}, len(record))
		for i, cell := range record {
			row[i] = cellValue(cell)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(t.Sheet, "A", lastCol, 18)
}

// cellValue stores integers and decimals as numbers, everything else as text.
func cellValue(s string) interface{} {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
