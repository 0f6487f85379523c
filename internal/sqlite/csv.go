// This file implements CSV export of word labels for spreadsheet-side
// analysis, using the same atomic write pattern as the JSONL helpers.
package sqlite

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ExportWordLabelsCSV writes all word labels of a type (or all types when
// labelType is empty) to a CSV file with a header row. Returns data rows
// written.
func (s *Store) ExportWordLabelsCSV(path, labelType string) (int, error) {
	labels, err := s.FetchWordLabels("", labelType, 0)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".csv-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	header := []string{"word", "label_type", "label_value", "confidence", "source", "labeled_at", "labeled_by", "notes"}
	if err := w.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("writing header: %w", err)
	}
	for _, l := range labels {
		row := []string{
			l.Word,
			l.LabelType,
			l.LabelValue,
			strconv.FormatFloat(l.Confidence, 'f', -1, 64),
			l.Source,
			l.LabeledAt.UTC().Format(time.RFC3339),
			l.LabeledBy,
			l.Notes,
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return 0, fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("flushing csv: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return len(labels), nil
}
