package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Record is one raw movie record read from a dataset file.
type Record struct {
	Line int // 1-based source line for JSONL, element index+1 for JSON arrays
	Raw  any
}

// Loader handles loading of raw movie records
type Loader struct {
	datasetPath string
	logger      *slog.Logger
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		datasetPath: datasetPath,
		logger:      logger,
	}
}

// Load loads records from a dataset file (JSONL or JSON)
func (l *Loader) Load() ([]Record, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".jsonl", ".ndjson":
		return l.loadJSONL()
	case ".json":
		return l.loadJSON()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .jsonl, .ndjson, .json)", ext)
	}
}

// loadJSONL reads one JSON value per line. Malformed lines are kept as null records
// so they still produce a (default) prompt and show up in the manifest.
func (l *Loader) loadJSONL() ([]Record, error) {
	l.logger.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)

	// Increase buffer size for large JSON lines
	const maxCapacity = 10 * 1024 * 1024 // 10MB per line
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		var raw any
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			l.logger.Warn("Failed to parse JSON line", "line", lineNum, "err", err)
			raw = nil
		}

		records = append(records, Record{Line: lineNum, Raw: raw})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	l.logger.Debug("Finished reading JSONL file", "total_records", len(records), "total_lines", lineNum)

	return records, nil
}

// loadJSON reads either a single object or an array of records.
func (l *Loader) loadJSON() ([]Record, error) {
	data, err := os.ReadFile(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	items, ok := raw.([]any)
	if !ok {
		return []Record{{Line: 1, Raw: raw}}, nil
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		records = append(records, Record{Line: i + 1, Raw: item})
	}
	return records, nil
}

// LoadSample loads at most limit records. A negative limit loads everything.
func (l *Loader) LoadSample(limit int) ([]Record, error) {
	records, err := l.Load()
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
