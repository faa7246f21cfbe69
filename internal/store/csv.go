// Package store implements the durable tabular store: a lenient delimited-file
// codec with atomic replace-on-write, and the typed repositories for courses,
// assignments, and announcements built on top of it.
package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/errors"
)

const delimiter = ','

// pathLocks serializes read-modify-write cycles per store file. The codec's
// atomic rename keeps readers safe, but two concurrent rewrites of the same
// file would lose one writer's records.
var pathLocks sync.Map // path -> *sync.Mutex

func pathLock(path string) *sync.Mutex {
	mu, _ := pathLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ReadAll parses the delimited file at path into one field-map per row, keyed
// by the normalized header names from the first line. A missing file reads as
// an empty set, never an error.
func ReadAll(path string) ([]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	rows := splitRecords(string(data))
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i := 0; i < len(headers) && i < len(row); i++ {
			record[headers[i]] = row[i]
		}
		records = append(records, record)
	}
	return records, nil
}

// WriteAll serializes records in the given fixed column order and atomically
// replaces the file at path: the rows are written to a sibling temp file
// which is then renamed over the target, so the store is never observed
// half-written.
func WriteAll(path string, headers []string, records []map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(headers, string(delimiter)))
	sb.WriteByte('\n')
	for _, record := range records {
		for i, h := range headers {
			if i > 0 {
				sb.WriteByte(delimiter)
			}
			sb.WriteString(escape(record[h]))
		}
		sb.WriteByte('\n')
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sb.String()), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// splitRecords parses raw file content into records of trimmed field values.
// A quote toggles in-quote state, a doubled quote inside a quoted region is a
// literal quote, and delimiters and newlines inside quotes are literal.
func splitRecords(content string) [][]string {
	var (
		records  [][]string
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	flushField := func() {
		fields = append(fields, strings.TrimSpace(field.String()))
		field.Reset()
	}
	flushRecord := func() {
		flushField()
		if len(fields) == 1 && fields[0] == "" {
			// Blank line, not a row.
			fields = nil
			return
		}
		records = append(records, fields)
		fields = nil
	}

	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delimiter && !inQuotes:
			flushField()
		case c == '\n' && !inQuotes:
			flushRecord()
		case c == '\r' && !inQuotes:
			// Dropped; the following \n ends the record.
		default:
			field.WriteRune(c)
		}
	}
	if field.Len() > 0 || len(fields) > 0 {
		flushRecord()
	}
	return records
}

// escape wraps a value in quotes, doubling embedded quotes, when it contains
// the delimiter, a quote, or a newline.
func escape(value string) string {
	if strings.ContainsAny(value, "\",\n\r") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// normalizeHeader lowercases a header name and joins words with underscores.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}
