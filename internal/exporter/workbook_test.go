package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "summary.xlsx")
	tables := SummaryTables(sampleSummary(t))

	require.NoError(t, WriteWorkbook(path, tables))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, len(tables))
	assert.Equal(t, "Overview", sheets[0])
	assert.Equal(t, "Strike Rates", sheets[len(sheets)-1])

	rows, err := f.GetRows("Top Scorers")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rank", "Batsman", "Runs"}, rows[0])
	assert.Equal(t, []string{"1", "B", "12"}, rows[1])

	cellType, err := f.GetCellType("Top Scorers", "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType, "numbers are not stored as text")
}

func TestWriteWorkbook_NoTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	assert.Error(t, WriteWorkbook(path, nil))
	assert.NoFileExists(t, path)
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, 42, cellValue("42"))
	assert.Equal(t, 158.25, cellValue("158.25"))
	assert.Equal(t, "V Kohli", cellValue("V Kohli"))
}
