// Package reference loads the delimited reference tables: the code list, the
// gazetteer, the disambiguation and missing-romaji corrections and the
// prefecture names.
package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row maps header names to cell values.
type Row map[string]string

// Get returns the value of field as read, or "" when absent.
func (r Row) Get(field string) string {
	return r[field]
}

// Table is a delimited file read in order. The header row names the fields.
type Table struct {
	Header []string
	Rows   []Row
}

// Supported text encodings.
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
	EncodingEUCJP    = "euc-jp"
)

// decoderFor returns a transformer producing UTF-8. A UTF-8 byte-order mark
// is dropped.
func decoderFor(name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case EncodingShiftJIS, "sjis", "shift-jis", "cp932":
		return japanese.ShiftJIS.NewDecoder(), nil
	case EncodingEUCJP, "eucjp":
		return japanese.EUCJP.NewDecoder(), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

// ReadTable reads the delimited file at path, decoding it from enc.
func ReadTable(path, enc string) (*Table, error) {
	dec, err := decoderFor(enc)
	if err != nil {
		return nil, fmt.Errorf("reference: %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference: failed to open file: %w", err)
	}
	defer file.Close()

	table, err := parseTable(transform.NewReader(file, dec))
	if err != nil {
		return nil, fmt.Errorf("reference: %s: %w", path, err)
	}
	return table, nil
}

func parseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	table := &Table{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make(Row, len(header))
		for i, field := range header {
			if i < len(record) {
				row[field] = record[i]
			} else {
				row[field] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
