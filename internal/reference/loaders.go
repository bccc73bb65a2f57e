package reference

import (
	"jp-municipalities/internal/models"
)

// LoadCodeList reads the ministry code list (code, municipality, prefecture).
func LoadCodeList(path, enc string) ([]models.CodeListEntry, error) {
	table, err := ReadTable(path, enc)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CodeListEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, models.CodeListEntry{
			Code:         row.Get("code"),
			Municipality: row.Get("municipality"),
			Prefecture:   row.Get("prefecture"),
		})
	}
	return entries, nil
}

// LoadGazetteer reads the historical gazetteer.
func LoadGazetteer(path string) ([]models.GazetteerEntry, error) {
	table, err := ReadTable(path, EncodingUTF8)
	if err != nil {
		return nil, err
	}

	entries := make([]models.GazetteerEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, models.GazetteerEntry{
			Kanji:        row.Get("JP_Kanji"),
			Hiragana:     row.Get("hiragana"),
			Romaji:       row.Get("romaji"),
			Kana:         row.Get("JP_Kana"),
			Roma:         row.Get("JP_Roma"),
			Lat:          row.Get("lat"),
			Lon:          row.Get("lon"),
			OrgLongitude: row.Get("org_Longitude"),
		})
	}
	return entries, nil
}

// LoadDisambiguations reads the manual disambiguation table.
func LoadDisambiguations(path string) ([]models.Disambiguation, error) {
	table, err := ReadTable(path, EncodingUTF8)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Disambiguation, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, models.Disambiguation{
			Municipality: row.Get("municipality"),
			Prefecture:   row.Get("prefecture"),
			OrgLongitude: row.Get("org_Longitude"),
		})
	}
	return entries, nil
}

// LoadMissingRomaji reads the corrections for codes the gazetteer lacks.
func LoadMissingRomaji(path string) ([]models.MissingRomaji, error) {
	table, err := ReadTable(path, EncodingUTF8)
	if err != nil {
		return nil, err
	}

	entries := make([]models.MissingRomaji, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, models.MissingRomaji{
			Code:     row.Get("code"),
			Hiragana: row.Get("hiragana"),
			Romaji:   row.Get("romaji"),
			Lat:      row.Get("lat"),
			Lon:      row.Get("lon"),
		})
	}
	return entries, nil
}

// LoadPrefectures reads the prefecture name table.
func LoadPrefectures(path string) ([]models.Prefecture, error) {
	table, err := ReadTable(path, EncodingUTF8)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Prefecture, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, models.Prefecture{
			Kanji:  row.Get("prefecture_kanji"),
			Kana:   row.Get("prefecture_kana"),
			Romaji: row.Get("prefecture_romaji"),
		})
	}
	return entries, nil
}
