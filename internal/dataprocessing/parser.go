package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "iplreport/internal/errors"
	"iplreport/internal/files"
	"iplreport/internal/infrastructure"
	"iplreport/pkg/contracts/domain"
)

// column identifies one required field of the delivery log
type column int

const (
	colMatchID column = iota
	colOver
	colBall
	colBatsman
	colBowlingTeam
	colBatsmanRuns
	columnCount
)

// columnNames are the canonical header names, indexed by column
var columnNames = [columnCount]string{
	"match_id", "over", "ball", "batsman", "bowling_team", "batsman_runs",
}

// columnAliases maps lower-cased header names onto columns.
// Ball-by-ball exports differ in naming, so a few common variants are accepted.
var columnAliases = map[string]column{
	"match_id":     colMatchID,
	"id":           colMatchID,
	"match":        colMatchID,
	"over":         colOver,
	"ball":         colBall,
	"batsman":      colBatsman,
	"batter":       colBatsman,
	"striker":      colBatsman,
	"bowling_team": colBowlingTeam,
	"batsman_runs": colBatsmanRuns,
	"runs_off_bat": colBatsmanRuns,
}

const utf8BOM = "\ufeff"

// cancelCheckInterval is how many rows are parsed between context checks
const cancelCheckInterval = 10000

// LoadDeliveries reads a ball-by-ball delivery log and returns its records in input order.
// The format is chosen by extension: .xlsx reads the first worksheet, anything
// else is read as comma-separated text. Any malformed row aborts the load.
func LoadDeliveries(ctx context.Context, path string) ([]domain.Delivery, error) {
	var (
		deliveries []domain.Delivery
		err        error
	)

	switch files.Extension(path) {
	case ".xlsx":
		deliveries, err = loadWorkbook(ctx, path)
	default:
		deliveries, err = loadCSV(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	if len(deliveries) == 0 {
		return nil, apperrors.NewParsingError("delivery log contains no records", nil).
			WithContext("path", path)
	}

	infrastructure.LoggerWithContext(ctx).Info("Loaded delivery log",
		slog.String("path", path),
		slog.Int("deliveries", len(deliveries)))

	return deliveries, nil
}

func loadCSV(ctx context.Context, path string) ([]domain.Delivery, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open delivery log", err).
			WithContext("path", path)
	}
	defer file.Close()

	return ParseCSV(ctx, file)
}

// ParseCSV parses comma-separated delivery rows; the first record is the header
func ParseCSV(ctx context.Context, r io.Reader) ([]domain.Delivery, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewParsingError("delivery log is empty", nil)
		}
		return nil, apperrors.NewParsingError("failed to read header", err)
	}

	p, err := newRowParser(header)
	if err != nil {
		return nil, err
	}

	var deliveries []domain.Delivery
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read delivery row", err)
		}

		line, _ := reader.FieldPos(0)
		d, err := p.parse(line, record)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)

		if len(deliveries)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	return deliveries, nil
}

func loadWorkbook(ctx context.Context, path string) ([]domain.Delivery, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read worksheet", err).
			WithContext("sheet", sheets[0])
	}

	infrastructure.LoggerWithContext(ctx).Debug("Reading delivery worksheet",
		slog.String("sheet_name", sheets[0]),
		slog.Int("total_rows", len(rows)))

	return ParseRows(ctx, rows)
}

// ParseRows parses an in-memory table whose first row is the header.
// Line numbers in errors are 1-based row numbers.
func ParseRows(ctx context.Context, rows [][]string) ([]domain.Delivery, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("delivery log is empty", nil)
	}

	p, err := newRowParser(rows[0])
	if err != nil {
		return nil, err
	}

	deliveries := make([]domain.Delivery, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		d, err := p.parse(i+2, row)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)

		if len(deliveries)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	return deliveries, nil
}

// rowParser converts raw rows into deliveries using the header's column positions
type rowParser struct {
	index [columnCount]int
}

func newRowParser(header []string) (*rowParser, error) {
	p := &rowParser{}
	for i := range p.index {
		p.index[i] = -1
	}

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		col, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]
		if ok && p.index[col] < 0 {
			p.index[col] = i
		}
	}

	var missing []string
	for col, idx := range p.index {
		if idx < 0 {
			missing = append(missing, columnNames[col])
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("columns", missing)
	}

	return p, nil
}

func (p *rowParser) parse(line int, row []string) (domain.Delivery, error) {
	field := func(col column) string {
		idx := p.index[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var d domain.Delivery
	d.MatchID = field(colMatchID)
	d.Batsman = field(colBatsman)
	d.BowlingTeam = field(colBowlingTeam)

	numeric := []struct {
		col column
		dst *int
	}{
		{colOver, &d.Over},
		{colBall, &d.Ball},
		{colBatsmanRuns, &d.BatsmanRuns},
	}
	for _, n := range numeric {
		v, err := parseInt(field(n.col))
		if err != nil {
			return domain.Delivery{}, apperrors.NewParsingError(
				fmt.Sprintf("line %d: invalid %s", line, columnNames[n.col]), err).
				WithContext("line", line).
				WithContext("column", columnNames[n.col])
		}
		*n.dst = v
	}

	if err := d.Validate(); err != nil {
		return domain.Delivery{}, apperrors.NewValidationError(
			fmt.Sprintf("line %d: invalid delivery", line), err).
			WithContext("line", line)
	}

	return d, nil
}

// parseInt accepts plain integers and integral floats such as "16.0".
// Values outside the int32 range are rejected.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(v), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int(f), nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
