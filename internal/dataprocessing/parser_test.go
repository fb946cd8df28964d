package dataprocessing

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "iplreport/internal/errors"
	"iplreport/internal/infrastructure"
	"iplreport/pkg/contracts/domain"
)

const sampleCSV = `match_id,inning,batting_team,bowling_team,over,ball,batsman,batsman_runs
1,1,RCB,KKR,0,1,SC Ganguly,0
1,1,RCB,KKR,15,2,BB McCullum,4
1,1,RCB,KKR,16,3,BB McCullum,6
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDeliveries_CSV(t *testing.T) {
	path := writeFile(t, "deliveries.csv", sampleCSV)

	deliveries, err := LoadDeliveries(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, deliveries, 3)

	assert.Equal(t, domain.Delivery{
		MatchID: "1", Over: 16, Ball: 3, Batsman: "BB McCullum", BowlingTeam: "KKR", BatsmanRuns: 6,
	}, deliveries[2])
	assert.Equal(t, "SC Ganguly", deliveries[0].Batsman, "input order is kept")
}

func TestLoadDeliveries_BOMAndAliases(t *testing.T) {
	content := "\ufeffID,Over,Ball,Batter,Bowling_Team,runs_off_bat\n" +
		"335982,19.0,6,V Kohli,Mumbai Indians,2\n"
	path := writeFile(t, "aliases.csv", content)

	deliveries, err := LoadDeliveries(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "335982", deliveries[0].MatchID)
	assert.Equal(t, 19, deliveries[0].Over)
	assert.Equal(t, "V Kohli", deliveries[0].Batsman)
	assert.Equal(t, 2, deliveries[0].BatsmanRuns)
}

func TestLoadDeliveries_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errType  apperrors.ErrorType
		contains string
	}{
		{
			name:     "empty file",
			content:  "",
			errType:  apperrors.ErrTypeParsing,
			contains: "empty",
		},
		{
			name:     "header only",
			content:  "match_id,over,ball,batsman,bowling_team,batsman_runs\n",
			errType:  apperrors.ErrTypeParsing,
			contains: "no records",
		},
		{
			name:     "missing columns",
			content:  "match_id,over,batsman\n1,2,X\n",
			errType:  apperrors.ErrTypeParsing,
			contains: "ball, bowling_team, batsman_runs",
		},
		{
			name:     "non numeric runs",
			content:  "match_id,over,ball,batsman,bowling_team,batsman_runs\n1,2,3,X,Y,four\n",
			errType:  apperrors.ErrTypeParsing,
			contains: "line 2: invalid batsman_runs",
		},
		{
			name:     "fractional over",
			content:  "match_id,over,ball,batsman,bowling_team,batsman_runs\n1,2.5,3,X,Y,1\n",
			errType:  apperrors.ErrTypeParsing,
			contains: "invalid over",
		},
		{
			name:     "over beyond int range",
			content:  "match_id,over,ball,batsman,bowling_team,batsman_runs\n1,1e30,3,X,Y,1\n",
			errType:  apperrors.ErrTypeParsing,
			contains: "line 2: invalid over",
		},
		{
			name:     "runs beyond int range",
			content:  "match_id,over,ball,batsman,bowling_team,batsman_runs\n1,2,3,X,Y,99999999999\n",
			errType:  apperrors.ErrTypeParsing,
			contains: "line 2: invalid batsman_runs",
		},
		{
			name:     "missing batsman",
			content:  "match_id,over,ball,batsman,bowling_team,batsman_runs\n1,2,3,,Y,1\n1,2,4,,Y,1\n",
			errType:  apperrors.ErrTypeValidation,
			contains: "line 2",
		},
		{
			name:     "negative runs",
			content:  "match_id,over,ball,batsman,bowling_team,batsman_runs\n1,2,3,X,Y,-1\n",
			errType:  apperrors.ErrTypeValidation,
			contains: "invalid delivery",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)

			deliveries, err := LoadDeliveries(context.Background(), path)
			require.Error(t, err)
			assert.Nil(t, deliveries)
			assert.True(t, apperrors.IsType(err, tt.errType), err.Error())
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParseInt(t *testing.T) {
	v, err := parseInt("16.0")
	require.NoError(t, err)
	assert.Equal(t, 16, v)

	v, err = parseInt("-2147483648")
	require.NoError(t, err)
	assert.Equal(t, -2147483648, v)

	for _, in := range []string{"1e30", "-1e30", "2147483648", "9e18", "2.5", "Inf", "NaN", ""} {
		_, err := parseInt(in)
		assert.Error(t, err, in)
	}
}

func TestLoadDeliveries_LogsTraceID(t *testing.T) {
	var logs bytes.Buffer
	infrastructure.ResetLoggerForTesting()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := writeFile(t, "deliveries.csv", sampleCSV)
	ctx := infrastructure.WithTraceID(context.Background(), "run-7")

	_, err := LoadDeliveries(ctx, path)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"msg":"Loaded delivery log"`)
	assert.Contains(t, logs.String(), `"trace_id":"run-7"`)
}

func TestLoadDeliveries_MissingFile(t *testing.T) {
	_, err := LoadDeliveries(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestLoadDeliveries_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deliveries.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"match_id", "over", "ball", "batsman", "bowling_team", "batsman_runs"},
		{1, 16, 1, "AB de Villiers", "CSK", 6},
		{},
		{1, 16, 2, "AB de Villiers", "CSK", 4},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	deliveries, err := LoadDeliveries(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, deliveries, 2, "blank rows are skipped")
	assert.Equal(t, 6, deliveries[0].BatsmanRuns)
	assert.Equal(t, 4, deliveries[1].BatsmanRuns)
	assert.Equal(t, "CSK", deliveries[1].BowlingTeam)
}

func TestParseRows_LineNumbers(t *testing.T) {
	rows := [][]string{
		{"match_id", "over", "ball", "batsman", "bowling_team", "batsman_runs"},
		{"1", "1", "1", "A", "T", "1"},
		{"1", "1", "2", "A", "T", "x"},
	}

	_, err := ParseRows(context.Background(), rows)
	require.Error(t, err)
	line, ok := apperrors.ContextValue(err, "line")
	require.True(t, ok)
	assert.Equal(t, 3, line)
}

func TestParseCSV_Cancelled(t *testing.T) {
	var b strings.Builder
	b.WriteString("match_id,over,ball,batsman,bowling_team,batsman_runs\n")
	for i := 0; i < cancelCheckInterval; i++ {
		b.WriteString("1,1,1,A,T,1\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseCSV(ctx, strings.NewReader(b.String()))
	assert.ErrorIs(t, err, context.Canceled)
}
