package resolver

import (
	"jp-municipalities/internal/models"
)

// PrefectureIndex looks up prefecture names by their kanji spelling.
type PrefectureIndex map[string]models.Prefecture

// IndexPrefectures builds a PrefectureIndex. The first row for a name wins.
func IndexPrefectures(prefectures []models.Prefecture) PrefectureIndex {
	index := make(PrefectureIndex, len(prefectures))
	for _, p := range prefectures {
		if _, ok := index[p.Kanji]; !ok {
			index[p.Kanji] = p
		}
	}
	return index
}

// Merge combines a code-list entry with its resolved reference and the
// prefecture names. When the prefecture is unknown the record keeps blank
// prefecture kana and romaji and ok is false.
func Merge(entry models.CodeListEntry, ref models.Reference, prefectures PrefectureIndex) (m models.Municipality, ok bool) {
	pref, ok := prefectures[entry.Prefecture]
	return models.Municipality{
		Code:             entry.Code,
		NameKanji:        entry.Municipality,
		NameKana:         ref.Kana,
		NameRomaji:       ref.Romaji,
		Lat:              ref.Lat,
		Lon:              ref.Lon,
		PrefectureKanji:  entry.Prefecture,
		PrefectureKana:   pref.Kana,
		PrefectureRomaji: pref.Romaji,
	}, ok
}
