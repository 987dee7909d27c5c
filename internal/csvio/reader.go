// Package csvio parses delimited upload buffers into ordered row mappings.
//
// The reader handles two common issues with real-world CSV exports before
// parsing: a UTF-8 BOM prepended by Windows tools, and invalid UTF-8 byte
// sequences, which are replaced with the Unicode replacement character.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Row maps column header names to the cell values of one data row.
// Columns missing from a short row are absent from the map.
type Row map[string]string

// Has reports whether the row carried a value for the named column.
func (r Row) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Options controls header and uniqueness enforcement during a read.
type Options struct {
	// Required lists column names that must be present in the header row.
	Required []string

	// Unique lists columns whose values must not repeat across data rows.
	Unique []string
}

// ErrEmptyFile is returned when the buffer contains no records at all.
var ErrEmptyFile = errors.New("empty file")

// Read parses a raw CSV buffer into data rows keyed by header name.
//
// The whole operation fails on malformed delimiting, on a missing required
// column, or on the first duplicate value in a unique column; no partial
// result is ever returned. Fully empty rows are skipped.
func Read(data []byte, opts Options) ([]Row, error) {
	data = sanitizeUTF8(skipBOM(data))

	cr := csv.NewReader(bytes.NewReader(data))
	// Short and long rows are tolerated; quoting errors are not.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = cleanCell(h)
	}

	if missing := missingColumns(header, opts.Required); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	// One seen-set per unique column
	seen := make(map[string]map[string]struct{}, len(opts.Unique))
	for _, col := range opts.Unique {
		seen[col] = make(map[string]struct{})
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isEmptyRow(rec) {
			continue
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = cleanCell(rec[i])
			}
		}

		for _, col := range opts.Unique {
			val, ok := row[col]
			if !ok {
				continue
			}
			if _, dup := seen[col][val]; dup {
				return nil, fmt.Errorf("duplicate value for unique column %q in row: %v", col, rec)
			}
			seen[col][val] = struct{}{}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func missingColumns(header, required []string) []string {
	var missing []string
	for _, col := range required {
		found := false
		for _, h := range header {
			if h == col {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, col)
		}
	}
	return missing
}

func isEmptyRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// cleanCell trims surrounding whitespace from a cell value.
func cleanCell(s string) string {
	return strings.TrimSpace(s)
}

// skipBOM strips a leading UTF-8 byte order mark (0xEF 0xBB 0xBF).
func skipBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the replacement character.
// Valid input is returned unchanged without copying.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.Write(data[:size])
			data = data[size:]
		}
	}

	return buf.Bytes()
}
