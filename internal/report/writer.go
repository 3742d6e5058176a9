// Package report persists the aggregate report as a JSON snapshot.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/org-activity-stats/internal/domain"
)

// FileName is the name under which the report is served.
const FileName = "stats.json"

// Write encodes v as indented JSON and replaces the file at path, creating its directory if needed.
func Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WritePlaceholder writes an empty report for org into dir so a front end has something to load
// before the first collection. Failures are logged and swallowed; the returned path is empty on failure.
func WritePlaceholder(dir, org string, windowDays int, now time.Time, logger logrus.FieldLogger) string {
	path := filepath.Join(dir, FileName)
	log := logger.WithField("path", path)

	if err := Write(path, domain.NewEmptyReport(org, windowDays, now)); err != nil {
		log.WithError(err).Error("Error writing placeholder report")
		return ""
	}
	log.Info("Successfully wrote placeholder report")
	return path
}
