package models

// CodeListEntry is a row of the ministry code list. An empty Municipality
// marks a prefecture-level row.
type CodeListEntry struct {
	Code         string `json:"code"`
	Municipality string `json:"municipality"`
	Prefecture   string `json:"prefecture"`
}

// GazetteerEntry is a row of the historical gazetteer, kept as read.
// Newer exports carry hiragana/romaji, older ones JP_Kana/JP_Roma.
type GazetteerEntry struct {
	Kanji        string `json:"JP_Kanji"`
	Hiragana     string `json:"hiragana"`
	Romaji       string `json:"romaji"`
	Kana         string `json:"JP_Kana"`
	Roma         string `json:"JP_Roma"`
	Lat          string `json:"lat"`
	Lon          string `json:"lon"`
	OrgLongitude string `json:"org_Longitude"`
}

// Disambiguation picks one gazetteer row, by its original longitude, when a
// name occurs more than once.
type Disambiguation struct {
	Municipality string `json:"municipality"`
	Prefecture   string `json:"prefecture"`
	OrgLongitude string `json:"org_Longitude"`
}

// MissingRomaji is a manual correction for a code that the gazetteer lacks.
type MissingRomaji struct {
	Code     string `json:"code"`
	Hiragana string `json:"hiragana"`
	Romaji   string `json:"romaji"`
	Lat      string `json:"lat"`
	Lon      string `json:"lon"`
}

// Prefecture holds the three spellings of a prefecture name.
type Prefecture struct {
	Kanji  string `json:"prefecture_kanji"`
	Kana   string `json:"prefecture_kana"`
	Romaji string `json:"prefecture_romaji"`
}

// ReferenceSource tags where a resolved Reference came from.
type ReferenceSource string

const (
	SourceGazetteer     ReferenceSource = "gazetteer"
	SourceAdded         ReferenceSource = "added"
	SourceMissingRomaji ReferenceSource = "missing_romaji"
)

// Reference is the canonical shape every source is normalised to before it
// is merged with a code-list entry.
type Reference struct {
	Source ReferenceSource
	Kana   string
	Romaji string
	Lat    float64
	Lon    float64
}
