package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"jp-municipalities/internal/models"
)

// fromGazetteer normalises a gazetteer row. The hiragana/romaji columns win
// over the older JP_Kana/JP_Roma ones.
func fromGazetteer(g models.GazetteerEntry) (models.Reference, error) {
	lat, lon, err := coordinates(g.Lat, g.Lon)
	if err != nil {
		return models.Reference{}, err
	}
	return models.Reference{
		Source: models.SourceGazetteer,
		Kana:   firstNonEmpty(g.Hiragana, g.Kana),
		Romaji: firstNonEmpty(g.Romaji, g.Roma),
		Lat:    lat,
		Lon:    lon,
	}, nil
}

func fromChange(c models.ChangeRecord) models.Reference {
	return models.Reference{
		Source: models.SourceAdded,
		Kana:   c.Hiragana,
		Romaji: c.Romaji,
		Lat:    c.Lat,
		Lon:    c.Lon,
	}
}

func fromMissingRomaji(m models.MissingRomaji) (models.Reference, error) {
	lat, lon, err := coordinates(m.Lat, m.Lon)
	if err != nil {
		return models.Reference{}, err
	}
	return models.Reference{
		Source: models.SourceMissingRomaji,
		Kana:   m.Hiragana,
		Romaji: m.Romaji,
		Lat:    lat,
		Lon:    lon,
	}, nil
}

func coordinates(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %q", lonStr)
	}
	return lat, lon, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
