package layout

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultWordGap is the largest horizontal gap between two glyphs of the
// same fragment.
const DefaultWordGap = 1.5

// PointsPerUnit is the size of one layout unit in PDF points. Fragments
// are reported in layout units so that row tolerances stay independent of
// the page's point size.
const PointsPerUnit = 16.0

// baselineEpsilon separates glyphs that sit on different baselines.
const baselineEpsilon = 0.01

// PDFReader extracts positioned fragments from a PDF file.
type PDFReader struct {
	WordGap float64
}

// NewPDFReader creates a reader that joins glyphs closer than wordGap points.
func NewPDFReader(wordGap float64) *PDFReader {
	if wordGap <= 0 {
		wordGap = DefaultWordGap
	}
	return &PDFReader{WordGap: wordGap}
}

// glyph is a single text run as the PDF content stream reports it.
type glyph struct {
	X, Y, W float64
	S       string
}

// Read returns all fragments of the document, page by page, with
// positions in layout units.
func (r *PDFReader) Read(ctx context.Context, path string) (fragments []Fragment, err error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layout: failed to open %s: %w", path, err)
	}
	defer file.Close()

	// The pdf package panics on malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			fragments = nil
			err = fmt.Errorf("layout: failed to parse %s: %v", path, p)
		}
	}()

	for n := 1; n <= reader.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}

		texts := page.Content().Text
		glyphs := make([]glyph, 0, len(texts))
		for _, t := range texts {
			glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, S: t.S})
		}
		for _, f := range coalesce(n, glyphs, r.WordGap) {
			f.X /= PointsPerUnit
			f.Y /= PointsPerUnit
			fragments = append(fragments, f)
		}
	}

	return fragments, nil
}

// coalesce joins consecutive glyphs on one baseline into fragments. A glyph
// further than gap from the end of the previous one starts a new fragment.
// Fragments holding only whitespace are dropped.
func coalesce(page int, glyphs []glyph, gap float64) []Fragment {
	var (
		out     []Fragment
		current *Fragment
		end     float64
		text    strings.Builder
	)

	flush := func() {
		if current == nil {
			return
		}
		if strings.TrimSpace(text.String()) != "" {
			current.Text = text.String()
			out = append(out, *current)
		}
		current = nil
		text.Reset()
	}

	for _, g := range glyphs {
		if current != nil &&
			math.Abs(g.Y-current.Y) <= baselineEpsilon &&
			g.X >= current.X &&
			g.X-end <= gap {
			text.WriteString(g.S)
			end = math.Max(end, g.X+g.W)
			continue
		}

		flush()
		current = &Fragment{Page: page, X: g.X, Y: g.Y}
		text.WriteString(g.S)
		end = g.X + g.W
	}
	flush()

	return out
}
