// Package layout turns positioned text from a paginated document into rows.
package layout

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultTolerance is the largest vertical distance, in layout units, at
// which two fragments still belong to the same row. Half a unit is 8pt on
// a PDF page.
const DefaultTolerance = 0.5

// Fragment is a run of text at a position on a page.
type Fragment struct {
	Page int
	X    float64
	Y    float64
	Text string
}

// FragmentReader produces every fragment of a document in reading order.
type FragmentReader interface {
	Read(ctx context.Context, path string) ([]Fragment, error)
}

// Row is a line of the document: trimmed tokens in encounter order.
type Row struct {
	Key    string
	Page   int
	Y      float64
	Tokens []string
}

// RowKey formats the position key of a row, "{page}_{y}".
func RowKey(page int, y float64) string {
	return fmt.Sprintf("%d_%s", page, strconv.FormatFloat(y, 'f', -1, 64))
}

// GroupRows groups fragments into rows. A row ends on a page change or when
// a fragment lies more than tolerance away from the row's vertical position.
// Rows come back in the order they were first seen; a fragment landing on
// the key of an earlier row is appended to that row.
func GroupRows(fragments []Fragment, tolerance float64) []Row {
	var (
		rows    []Row
		index   = make(map[string]int)
		inRow   bool
		page    int
		current float64
	)

	for _, f := range fragments {
		if !inRow || f.Page != page {
			inRow = true
			page = f.Page
			current = f.Y
		} else if math.Abs(f.Y-current) > tolerance {
			current = f.Y
		}

		key := RowKey(page, current)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, Row{Key: key, Page: page, Y: current})
		}
		rows[i].Tokens = append(rows[i].Tokens, strings.TrimSpace(f.Text))
	}

	return rows
}
