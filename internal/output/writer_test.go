package output

import (
	"os"
	"path/filepath"
	"testing"

	"jp-municipalities/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sapporo = models.Municipality{
	Code:             "01100",
	NameKanji:        "札幌市",
	NameKana:         "さっぽろし",
	NameRomaji:       "Sapporo-shi",
	Lat:              43.06,
	Lon:              141.35,
	PrefectureKanji:  "北海道",
	PrefectureKana:   "ほっかいどう",
	PrefectureRomaji: "Hokkaido",
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "municipalities.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteJSON(path, []models.Municipality{sapporo}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := `[
  {
    "code": "01100",
    "name_kanji": "札幌市",
    "name_kana": "さっぽろし",
    "name_romaji": "Sapporo-shi",
    "lat": 43.06,
    "lon": 141.35,
    "prefecture_kanji": "北海道",
    "prefecture_kana": "ほっかいどう",
    "prefecture_romaji": "Hokkaido"
  }
]`
	assert.Equal(t, expected, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestEncode(t *testing.T) {
	data, err := Encode(FormatJSON, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = Encode(FormatYAML, []models.Municipality{sapporo})
	require.NoError(t, err)
	assert.Contains(t, string(data), "name_romaji: Sapporo-shi")
	assert.Contains(t, string(data), "prefecture_kanji: 北海道")

	_, err = Encode("xml", nil)
	assert.Error(t, err)
}

func TestWrite_MissingDirectory(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "absent", "out.json"), FormatJSON, nil)
	assert.Error(t, err)
}
