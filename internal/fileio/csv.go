package fileio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV reads CSV with headerRow (1-based), auto-detecting encoding and converting to UTF-8.
// Rows the CSV parser rejects are reported as issues, not fatal errors.
func readCSV(r io.Reader, headerRow int) (Table, error) {
	br := bufio.NewReader(r)

	// Peek a bit to detect encoding
	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	cr := csv.NewReader(transform.NewReader(br, decoderFor(cs)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		rows   [][]string
		lines  []int
		issues []Issue
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				issues = append(issues, Issue{Line: pe.Line, Err: pe.Err})
				continue
			}
			return Table{}, err
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}
	if len(rows) == 0 {
		return Table{Issues: issues}, nil
	}
	h := pickHeader(rows, headerRow)
	t := rowsToTable(rows, h, headerRow)
	for i := range t.Records {
		// rowsToTable numbers rows by index; report the real CSV line instead
		t.Records[i].Line = lines[t.Records[i].Line-1]
	}
	t.Issues = append(issues, t.Issues...)
	return t, nil
}

// decoderFor maps a chardet charset name to a decoder; anything else is read
// as UTF-8 with an optional BOM.
func decoderFor(charset string) transform.Transformer {
	switch charset {
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder()
	case "koi8-r":
		return charmap.KOI8R.NewDecoder()
	case "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder()
	case "windows-1252":
		return charmap.Windows1252.NewDecoder()
	default:
		return unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}
}
