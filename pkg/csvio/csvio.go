// Package csvio reads and writes tables as flat CSV files. It is the
// thin tabular reader/writer collaborator of the cleaning pipelines:
// header row, string-valued cells, empty cell meaning null.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"retailq/internal/table"
)

// Read loads a CSV file into a table. Every cell is read as a string;
// an empty cell becomes an explicit null rather than an empty-string
// sentinel. Column names keep their raw form; callers normalize them
// via NormalizeColumns.
func Read(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return table.New(), nil
	}

	t := table.New(records[0]...)

	for _, rec := range records[1:] {
		row := make(table.Row, len(t.Columns))

		for i, col := range t.Columns {
			if i >= len(rec) || rec[i] == "" {
				row[col] = table.Null()
			} else {
				row[col] = table.String(rec[i])
			}
		}

		t.Append(row)
	}

	return t, nil
}

// Write stores a table as a CSV file, creating parent directories as
// needed. Columns appear in table order; null cells render empty.
func Write(path string, t *table.Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rec := make([]string, len(t.Columns))

	for _, row := range t.Rows {
		for i, col := range t.Columns {
			rec[i] = row.Get(col).Render()
		}

		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}
