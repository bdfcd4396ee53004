package fileio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const maxLineBytes = 4 << 20

// readJSONLines reads one JSON object per line. A line that does not decode
// to an object becomes an Issue and reading continues. Array and object
// members are ignored, so extra nested fields never reject a record.
func readJSONLines(r io.Reader) (Table, error) {
	var t Table
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		fields, err := decodeObject(raw)
		if err != nil {
			t.Issues = append(t.Issues, Issue{Line: line, Err: err})
			continue
		}
		t.Records = append(t.Records, Record{Line: line, Fields: fields})
	}
	if err := sc.Err(); err != nil {
		return t, fmt.Errorf("read json lines: %w", err)
	}
	return t, nil
}

func decodeObject(raw []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("not a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON object")
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch x := v.(type) {
		case nil, []any, map[string]any:
			// null is the same as absent; nested values map to no column
		case string:
			out[k] = x
		case json.Number:
			out[k] = x.String()
		case bool:
			out[k] = strconv.FormatBool(x)
		}
	}
	return out, nil
}
