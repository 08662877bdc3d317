package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Column declares one column of a table schema: its header name and the
// value materialized when a stored row or file lacks it.
type Column struct {
	Name    string
	Default string
}

// Col builds a text column (default empty string).
func Col(name string) Column {
	return Column{Name: name, Default: ""}
}

// NumCol builds a numeric column (default "0").
func NumCol(name string) Column {
	return Column{Name: name, Default: "0"}
}

// Row holds one table row keyed by column name.
type Row map[string]string

// Read loads all rows from the CSV table at path, healed to the given
// schema.
//
// Absent, empty, or malformed files yield zero rows. Columns present in
// the file but not in the schema are dropped; schema columns absent
// from the file (or from a short record) are filled with their default.
// This function never reports a schema problem as an error.
func Read(path string, columns []Column) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		// Malformed or empty file: heal to an empty table.
		return nil, nil
	}

	// First record is the header. Map schema columns to file positions.
	header := records[0]
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for _, col := range columns {
			i, ok := pos[col.Name]
			if ok && i < len(record) {
				row[col.Name] = record[i]
			} else {
				row[col.Name] = col.Default
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Write atomically rewrites the table at path with the given rows.
//
// The header is always written, so an empty table round-trips with its
// schema intact. The rewrite stages to a temp file in the destination
// directory and renames into place.
func Write(path string, columns []Column, rows []Row) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write table %s: %w", path, err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			value, ok := row[col.Name]
			if !ok {
				value = col.Default
			}
			record[i] = value
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("write table %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("write table %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}
	return nil
}

// Append reads the table, appends the given rows, and rewrites it.
// Convenience for append-only tables (users, completion history).
func Append(path string, columns []Column, rows ...Row) error {
	existing, err := Read(path, columns)
	if err != nil {
		return err
	}
	return Write(path, columns, append(existing, rows...))
}
