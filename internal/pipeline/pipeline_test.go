package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"jp-municipalities/internal/config"
	"jp-municipalities/internal/layout"
	"jp-municipalities/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFragmentReader is a mock implementation of layout.FragmentReader.
type MockFragmentReader struct {
	mock.Mock
}

func (m *MockFragmentReader) Read(ctx context.Context, path string) ([]layout.Fragment, error) {
	args := m.Called(ctx, path)
	return args.Get(0).([]layout.Fragment), args.Error(1)
}

func fragments(page int, y float64, tokens ...string) []layout.Fragment {
	out := make([]layout.Fragment, 0, len(tokens))
	for i, tok := range tokens {
		out = append(out, layout.Fragment{Page: page, X: float64(i * 40), Y: y, Text: tok})
	}
	return out
}

func changeDocument() []layout.Fragment {
	var doc []layout.Fragment
	doc = append(doc, fragments(1, 800, "Updated list of municipalities")...)
	doc = append(doc, fragments(1, 780, "Grid", "Kanji", "Hiragana", "Romaji")...)
	doc = append(doc, fragments(1, 760, "Added", "6441", "北広島市", "きたひろしまし", "Kitahiroshima-shi", "141", "゜", "30", "42", "゜", "45", "Municipality")...)
	doc = append(doc, fragments(1, 740, "Deleted", "6441", "広島町", "ひろしまちょう", "Hiroshima-cho", "141", "゜", "33", "42", "゜", "59", "Municipality")...)
	doc = append(doc, fragments(1, 720, "Modified", "5339", "北海道", "ほっかいどう", "Hokkaido", "141", "゜", "21", "43", "゜", "04", "Prefecture")...)
	doc = append(doc, fragments(2, 760, "Added", "1", "誤記町", "ごきちょう", "Goki-cho", "x", "゜", "0", "42", "゜", "0", "Municipality")...)
	return doc
}

func writeFixtures(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	return Paths{
		CodeList: write("codes.csv", "code,municipality,prefecture\n"+
			"010006,,北海道\n"+
			"011002,札幌市,北海道\n"+
			"012343,北広島市,北海道\n"+
			"013455,広島町,北海道\n"+
			"132063,府中市,東京都\n"+
			"133817,三宅村,東京都\n"+
			"999999,幻村,北海道\n"),
		Gazetteer: write("gazetteer.csv", "JP_Kanji,hiragana,romaji,JP_Kana,JP_Roma,lat,lon,org_Longitude\n"+
			"札幌市,さっぽろし,Sapporo-shi,,,43.06,141.35,141°21'\n"+
			"広島町,ひろしまちょう,Hiroshima-cho,,,42.98,141.56,141°33'\n"+
			"府中市,,,ふちゅうし,Fuchu-shi,35.67,139.47,139°28'\n"+
			"府中市,,,ふちゅうし,Fuchu-shi,34.56,133.23,133°14'\n"),
		Changes: filepath.Join(dir, "changes.pdf"),
		Disambiguations: write("disambiguations.csv", "municipality,prefecture,org_Longitude\n"+
			"府中市,東京都,139°28'\n"),
		MissingRomaji: write("missingRomaji.csv", "code,hiragana,romaji,lat,lon\n"+
			"133817,みやけむら,Miyake-mura,34.08,139.53\n"),
		Prefectures: write("prefectures.csv", "prefecture_kanji,prefecture_kana,prefecture_romaji\n"+
			"北海道,ほっかいどう,Hokkaido\n"+
			"東京都,とうきょうと,Tokyo\n"),
		Output:       filepath.Join(dir, "municipalities.json"),
		OutputFormat: "json",
	}
}

func newPipeline(paths Paths) (*Pipeline, *MockFragmentReader) {
	reader := new(MockFragmentReader)
	reader.On("Read", mock.Anything, paths.Changes).Return(changeDocument(), nil)
	return &Pipeline{Paths: paths, Tolerance: layout.DefaultTolerance, Reader: reader}, reader
}

func TestPipeline_Run(t *testing.T) {
	paths := writeFixtures(t)
	p, reader := newPipeline(paths)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	reader.AssertExpectations(t)

	var codes []string
	for _, m := range result.Municipalities {
		codes = append(codes, m.Code)
	}
	assert.Equal(t, []string{"011002", "012343", "132063", "133817"}, codes)

	assert.Equal(t, models.Municipality{
		Code: "011002", NameKanji: "札幌市", NameKana: "さっぽろし", NameRomaji: "Sapporo-shi", Lat: 43.06, Lon: 141.35,
		PrefectureKanji: "北海道", PrefectureKana: "ほっかいどう", PrefectureRomaji: "Hokkaido",
	}, result.Municipalities[0])
	assert.Equal(t, "Kitahiroshima-shi", result.Municipalities[1].NameRomaji)
	assert.Equal(t, 141.5, result.Municipalities[1].Lon)
	assert.Equal(t, 35.67, result.Municipalities[2].Lat)
	assert.Equal(t, "Miyake-mura", result.Municipalities[3].NameRomaji)

	var kinds []models.DiagnosticKind
	for _, d := range result.Diagnostics {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []models.DiagnosticKind{models.KindInvalidCoordinates, models.KindUnresolved}, kinds)
	assert.Equal(t, "2_760", result.Diagnostics[0].Position)
	assert.Equal(t, "999999", result.Diagnostics[1].Position)
}

func TestPipeline_GenerateIsDeterministic(t *testing.T) {
	paths := writeFixtures(t)
	p, _ := newPipeline(paths)

	_, err := p.Generate(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(paths.Output)
	require.NoError(t, err)

	_, err = p.Generate(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(paths.Output)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `"name_kanji": "札幌市"`)
}

func TestPipeline_FatalErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Paths)
		reader func(*MockFragmentReader, Paths)
	}{
		{
			name:   "missing code list",
			mutate: func(p *Paths) { p.CodeList = p.CodeList + ".absent" },
		},
		{
			name:   "missing prefectures",
			mutate: func(p *Paths) { p.Prefectures = p.Prefectures + ".absent" },
			reader: func(m *MockFragmentReader, p Paths) {
				m.On("Read", mock.Anything, p.Changes).Return(changeDocument(), nil)
			},
		},
		{
			name: "unreadable change list",
			reader: func(m *MockFragmentReader, p Paths) {
				m.On("Read", mock.Anything, p.Changes).Return([]layout.Fragment(nil), assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := writeFixtures(t)
			if tt.mutate != nil {
				tt.mutate(&paths)
			}
			reader := new(MockFragmentReader)
			if tt.reader != nil {
				tt.reader(reader, paths)
			}
			p := &Pipeline{Paths: paths, Tolerance: layout.DefaultTolerance, Reader: reader}

			result, err := p.Generate(context.Background())

			assert.Error(t, err)
			assert.Nil(t, result)
			_, statErr := os.Stat(paths.Output)
			assert.True(t, os.IsNotExist(statErr), "nothing is written on a fatal error")
			reader.AssertExpectations(t)
		})
	}
}

func TestNew(t *testing.T) {
	p := New(config.Config{
		CodeListPath: "codes.csv",
		OutputPath:   "out.json",
		OutputFormat: "yaml",
		RowTolerance: 0.75,
		WordGap:      2,
	})

	assert.Equal(t, "codes.csv", p.Paths.CodeList)
	assert.Equal(t, "yaml", p.Paths.OutputFormat)
	assert.Equal(t, 0.75, p.Tolerance)
	require.IsType(t, &layout.PDFReader{}, p.Reader)
	assert.Equal(t, 2.0, p.Reader.(*layout.PDFReader).WordGap)
}
