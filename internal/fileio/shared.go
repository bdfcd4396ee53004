package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupported = errors.New("unsupported file")

// Record is one input row keyed by header (or JSON field) name.
type Record struct {
	Line   int // 1-based line/row in the source
	Fields map[string]string
}

// Issue is a row that could not be used; reading goes on without it.
type Issue struct {
	Line int
	Err  error
}

func (i Issue) Error() string { return fmt.Sprintf("line %d: %v", i.Line, i.Err) }

type Table struct {
	Records []Record
	Issues  []Issue
}

// ReadAnyMaps picks a reader by extension and returns the rows keyed by header.
// headerRow is the 1-based header row for tabular formats; JSON lines ignore it.
func ReadAnyMaps(r io.Reader, filename string, headerRow int) (Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jsonl", ".ndjson", ".json", ".txt":
		return readJSONLines(r)
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
}

// pickHeader takes the header row and names blank cells "Column N".
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToTable keys every row after the header, skipping blank rows.
func rowsToTable(rows [][]string, headers []string, headerRow int) Table {
	var t Table
	start := headerRow
	if start < 1 {
		start = 1
	}
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, h := range headers {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			t.Records = append(t.Records, Record{Line: r + 1, Fields: m})
		}
	}
	return t
}
