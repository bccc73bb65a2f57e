package models

// Municipality is one merged output record: a municipality from the code list
// joined with its reading, romanisation, position and prefecture names.
type Municipality struct {
	Code             string  `json:"code" yaml:"code"`
	NameKanji        string  `json:"name_kanji" yaml:"name_kanji"`
	NameKana         string  `json:"name_kana" yaml:"name_kana"`
	NameRomaji       string  `json:"name_romaji" yaml:"name_romaji"`
	Lat              float64 `json:"lat" yaml:"lat"`
	Lon              float64 `json:"lon" yaml:"lon"`
	PrefectureKanji  string  `json:"prefecture_kanji" yaml:"prefecture_kanji"`
	PrefectureKana   string  `json:"prefecture_kana" yaml:"prefecture_kana"`
	PrefectureRomaji string  `json:"prefecture_romaji" yaml:"prefecture_romaji"`
}
