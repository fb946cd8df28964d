package files

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "iplreport/internal/errors"
	"iplreport/internal/infrastructure"
)

// FindFirst returns the first candidate that exists as a regular file.
// Empty candidates are skipped. When nothing matches, the returned NOT_FOUND
// error names the last candidate tried.
func FindFirst(ctx context.Context, candidates ...string) (string, error) {
	logger := infrastructure.LoggerWithContext(ctx)
	last := ""
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		last = candidate

		exists := FileExists(candidate)
		logger.Debug("Input candidate check",
			slog.String("path", candidate),
			slog.Bool("exists", exists))

		if exists {
			return candidate, nil
		}
	}

	if last == "" {
		return "", apperrors.NewNotFoundError("input path").
			WithContext("candidates", candidates)
	}
	return "", apperrors.NewNotFoundError(last).
		WithContext("candidates", candidates)
}

// Extension returns the lower-cased file extension including the dot
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
