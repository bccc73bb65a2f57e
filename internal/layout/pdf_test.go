package layout

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name     string
		glyphs   []glyph
		expected []Fragment
	}{
		{
			name:     "no glyphs",
			glyphs:   nil,
			expected: nil,
		},
		{
			name: "adjacent glyphs form one fragment",
			glyphs: []glyph{
				{X: 10, Y: 700, W: 5, S: "A"},
				{X: 15, Y: 700, W: 5, S: "d"},
				{X: 20.5, Y: 700, W: 5, S: "d"},
			},
			expected: []Fragment{{Page: 1, X: 10, Y: 700, Text: "Add"}},
		},
		{
			name: "wide gap splits columns",
			glyphs: []glyph{
				{X: 10, Y: 700, W: 5, S: "1"},
				{X: 15, Y: 700, W: 5, S: "4"},
				{X: 40, Y: 700, W: 5, S: "゜"},
			},
			expected: []Fragment{
				{Page: 1, X: 10, Y: 700, Text: "14"},
				{Page: 1, X: 40, Y: 700, Text: "゜"},
			},
		},
		{
			name: "baseline change splits",
			glyphs: []glyph{
				{X: 10, Y: 700, W: 5, S: "a"},
				{X: 15, Y: 690, W: 5, S: "b"},
			},
			expected: []Fragment{
				{Page: 1, X: 10, Y: 700, Text: "a"},
				{Page: 1, X: 15, Y: 690, Text: "b"},
			},
		},
		{
			name: "whitespace only fragments are dropped",
			glyphs: []glyph{
				{X: 10, Y: 700, W: 5, S: " "},
				{X: 50, Y: 700, W: 5, S: "x"},
			},
			expected: []Fragment{{Page: 1, X: 50, Y: 700, Text: "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coalesce(1, tt.glyphs, DefaultWordGap))
		})
	}
}

func TestPDFReader_Read_Errors(t *testing.T) {
	reader := NewPDFReader(0)
	assert.Equal(t, DefaultWordGap, reader.WordGap)

	_, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))
	_, err = reader.Read(context.Background(), path)
	assert.Error(t, err)
}

// writeTestPDF writes a one-page PDF whose content stream is body. The font
// is a fixed-width WinAnsi font where every glyph is 0.6 em wide.
func writeTestPDF(t *testing.T, body string) string {
	t.Helper()

	widths := strings.TrimSpace(strings.Repeat("600 ", 126-32+1))
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(body), body),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "changes.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestPDFReader_Read(t *testing.T) {
	// Columns of one update-list row at y=700, a small raised marker 2pt
	// above the baseline, and a second row 20pt lower.
	body := strings.Join([]string{
		"BT",
		"/F1 10 Tf 1 0 0 1 48 700 Tm (Added) Tj",
		"/F1 10 Tf 1 0 0 1 160 700 Tm (141) Tj",
		"/F1 6 Tf 1 0 0 1 192 702 Tm (o) Tj",
		"/F1 10 Tf 1 0 0 1 208 700 Tm (30) Tj",
		"/F1 10 Tf 1 0 0 1 48 680 Tm (Deleted) Tj",
		"ET",
	}, "\n")
	path := writeTestPDF(t, body)

	fragments, err := NewPDFReader(DefaultWordGap).Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []Fragment{
		{Page: 1, X: 3, Y: 43.75, Text: "Added"},
		{Page: 1, X: 10, Y: 43.75, Text: "141"},
		{Page: 1, X: 12, Y: 43.875, Text: "o"},
		{Page: 1, X: 13, Y: 43.75, Text: "30"},
		{Page: 1, X: 3, Y: 42.5, Text: "Deleted"},
	}, fragments)

	rows := GroupRows(fragments, DefaultTolerance)
	require.Len(t, rows, 2)
	assert.Equal(t, "1_43.75", rows[0].Key)
	assert.Equal(t, []string{"Added", "141", "o", "30"}, rows[0].Tokens)
	assert.Equal(t, "1_42.5", rows[1].Key)
	assert.Equal(t, []string{"Deleted"}, rows[1].Tokens)
}

func TestPDFReader_Read_Cancelled(t *testing.T) {
	path := writeTestPDF(t, "BT /F1 10 Tf 1 0 0 1 48 700 Tm (Added) Tj ET")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDFReader(DefaultWordGap).Read(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
