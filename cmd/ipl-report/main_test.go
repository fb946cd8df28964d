package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iplreport/internal/infrastructure"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	content := fmt.Sprintf(`input:
  primary: %q
  fallback: %q
output:
  path: %q
  verify: true
logging:
  level: error
  format: json
  output: stderr
`,
		filepath.Join(dir, "deliveries.csv"),
		filepath.Join(dir, "content", "deliveries.csv"),
		filepath.Join(dir, "report.pdf"))

	path := filepath.Join(dir, "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeDeliveries(t *testing.T, path string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("match_id,over,ball,batsman,bowling_team,batsman_runs\n")
	batsmen := []string{"V Kohli", "SK Raina", "RG Sharma", "DA Warner"}
	teams := []string{"MI", "CSK", "KKR", "RR", "SRH"}
	for i := 0; i < 480; i++ {
		fmt.Fprintf(&b, "%d,%d,%d,%s,%s,%d\n",
			i/240, (i/6)%20, i%6+1, batsmen[i%len(batsmen)], teams[(i/6)%len(teams)], []int{0, 1, 4, 6, 2}[i%5])
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
}

func TestRun_Success(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	writeDeliveries(t, filepath.Join(dir, "deliveries.csv"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, strings.Repeat("=", 60))
	assert.Contains(t, out, "File: "+filepath.Join(dir, "report.pdf"))
	assert.Contains(t, out, "Pages: 7 comprehensive analysis pages")
	assert.Contains(t, out, "  1. Title Page with Statistics")
	assert.Contains(t, out, "  6. V Kohli Performance")
	assert.Contains(t, out, "  7. Record-Breaking Performances")
	assert.FileExists(t, filepath.Join(dir, "report.pdf"))
}

func TestRun_MissingInput(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	want := fmt.Sprintf("Error: '%s' not found. Please ensure the dataset is available.",
		filepath.Join(dir, "content", "deliveries.csv"))
	assert.Contains(t, stderr.String(), want)
	assert.NoFileExists(t, filepath.Join(dir, "report.pdf"))
}

func TestRun_InvalidInput(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deliveries.csv"), []byte("match_id,over\n1,2\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.NotContains(t, stderr.String(), "not found")
	assert.NoFileExists(t, filepath.Join(dir, "report.pdf"))
}

func TestRun_BadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error:")
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "IPL Batting Report v")
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, &stdout, &stderr))
}
