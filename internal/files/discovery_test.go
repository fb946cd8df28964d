package files

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "iplreport/internal/errors"
	"iplreport/internal/infrastructure"
)

func TestFindFirst(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "deliveries.csv")
	fallback := filepath.Join(dir, "content", "deliveries.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(fallback), 0755))

	tests := []struct {
		name        string
		create      []string
		expected    string
		expectError bool
	}{
		{
			name:     "primary present",
			create:   []string{primary, fallback},
			expected: primary,
		},
		{
			name:     "only fallback present",
			create:   []string{fallback},
			expected: fallback,
		},
		{
			name:        "neither present",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Remove(primary)
			os.Remove(fallback)
			for _, p := range tt.create {
				require.NoError(t, os.WriteFile(p, []byte("match_id\n"), 0644))
			}

			got, err := FindFirst(context.Background(), primary, fallback)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, apperrors.IsNotFound(err))
				resource, ok := apperrors.ContextValue(err, "resource")
				require.True(t, ok)
				assert.Equal(t, fallback, resource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFindFirst_SkipsDirectoriesAndEmpty(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	got, err := FindFirst(context.Background(), "", dir, file)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	_, err = FindFirst(context.Background())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFindFirst_LogsTraceID(t *testing.T) {
	var logs bytes.Buffer
	infrastructure.ResetLoggerForTesting()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	file := filepath.Join(t.TempDir(), "deliveries.csv")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	ctx := infrastructure.WithTraceID(context.Background(), "run-42")
	_, err := FindFirst(ctx, file)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `"msg":"Input candidate check"`)
	assert.Contains(t, logs.String(), `"trace_id":"run-42"`)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir), "directories are not files")
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".csv", Extension("a/b/Deliveries.CSV"))
	assert.Equal(t, ".xlsx", Extension("book.xlsx"))
	assert.Equal(t, "", Extension("README"))
}
