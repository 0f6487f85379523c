// This file provides JSONL import and export for the label store: token and
// score ingestion from collector output, and word-label export for the
// downstream analysis scripts. Writes use the temp-file, fsync, rename
// pattern so a crashed export never leaves a truncated file.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexmesh/wordloom/pkg/types"
)

// tokenRecord is one line of a token import file.
type tokenRecord struct {
	StoryID string   `json:"story_id"`
	Words   []string `json:"words"`
}

// scoreRecord is one line of a dimension-score import file.
type scoreRecord struct {
	ContentID string  `json:"content_id"`
	Dimension string  `json:"dimension"`
	Score     float64 `json:"score"`
}

// wordLabelRecord is one line of a word-label export file.
type wordLabelRecord struct {
	Word       string  `json:"word"`
	LabelType  string  `json:"label_type"`
	LabelValue string  `json:"label_value"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	LabeledBy  string  `json:"labeled_by,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// ImportResult reports what a JSONL import did.
type ImportResult struct {
	Records  int // lines parsed
	Inserted int // rows actually added
	Skipped  int // malformed or empty-id lines
}

// ImportTokensJSONL loads word tokens from a JSONL file of
// {"story_id": ..., "words": [...]} records. Malformed lines and records
// with an empty story id are skipped, not errors.
func (s *Store) ImportTokensJSONL(path string) (ImportResult, error) {
	var result ImportResult
	records, err := readJSONL(path)
	if err != nil {
		return result, err
	}
	for _, raw := range records {
		var rec tokenRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			result.Skipped++
			continue
		}
		if rec.StoryID == "" {
			result.Skipped++
			continue
		}
		result.Records++
		n, err := s.AddWordTokens(rec.StoryID, rec.Words)
		if err != nil {
			return result, fmt.Errorf("importing tokens for %s: %w", rec.StoryID, err)
		}
		result.Inserted += n
	}
	return result, nil
}

// ImportScoresJSONL loads dimension scores from a JSONL file of
// {"content_id", "dimension", "score"} records. Malformed lines and
// unknown dimensions are skipped and counted, keeping the import additive.
func (s *Store) ImportScoresJSONL(path string) (ImportResult, error) {
	var result ImportResult
	records, err := readJSONL(path)
	if err != nil {
		return result, err
	}
	batch := make([]types.DimensionScore, 0, len(records))
	for _, raw := range records {
		var rec scoreRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			result.Skipped++
			continue
		}
		if rec.ContentID == "" || !types.IsValidDimension(rec.Dimension) {
			result.Skipped++
			continue
		}
		result.Records++
		batch = append(batch, types.DimensionScore{
			ContentID: rec.ContentID,
			Dimension: rec.Dimension,
			Score:     rec.Score,
		})
	}
	n, err := s.PutDimensionScores(batch)
	if err != nil {
		return result, err
	}
	result.Inserted = n
	return result, nil
}

// ExportWordLabelsJSONL writes all word labels of a type (or all types when
// labelType is empty) to a JSONL file atomically. Returns rows written.
func (s *Store) ExportWordLabelsJSONL(path, labelType string) (int, error) {
	labels, err := s.FetchWordLabels("", labelType, 0)
	if err != nil {
		return 0, err
	}
	records := make([]json.RawMessage, 0, len(labels))
	for _, l := range labels {
		rec := wordLabelRecord{
			Word:       l.Word,
			LabelType:  l.LabelType,
			LabelValue: l.LabelValue,
			Confidence: l.Confidence,
			Source:     l.Source,
			LabeledBy:  l.LabeledBy,
			Notes:      l.Notes,
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshaling word label: %w", err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// readJSONL reads a JSONL file and returns each non-empty line as a raw
// record. The caller parses lines and decides how to count malformed ones.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records, one JSON object per line.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
