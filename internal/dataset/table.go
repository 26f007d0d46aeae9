package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// table is a header-addressed CSV file. Rows missing a column read as "".
type table struct {
	header []string
	rows   []map[string]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &table{header: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		blank := true
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
				if strings.TrimSpace(rec[i]) != "" {
					blank = false
				}
			}
		}
		if !blank {
			t.rows = append(t.rows, row)
		}
	}
	return t, nil
}

func writeTable(path string, t *table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	rec := make([]string, len(t.header))
	for _, row := range t.rows {
		for i, col := range t.header {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// addColumns extends the header with columns it does not have yet.
func (t *table) addColumns(cols []string) {
	for _, c := range cols {
		if !slices.Contains(t.header, c) {
			t.header = append(t.header, c)
		}
	}
}
