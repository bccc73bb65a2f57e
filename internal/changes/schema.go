// Package changes maps the rows of the municipality update list onto change
// records.
package changes

import (
	"fmt"
	"strconv"
	"strings"

	"jp-municipalities/internal/layout"
	"jp-municipalities/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// DegreeMarker is the glyph printed between degrees and minutes.
const DegreeMarker = "゜"

const classificationMunicipality = "municipality"

var actions = map[string]bool{
	models.ActionModified: true,
	models.ActionAdded:    true,
	models.ActionDeleted:  true,
}

// line is the fixed column layout of one update-list row.
type line struct {
	action, grid, kanji, hiragana, romaji                  string
	lon1, lonDegree, lon2, lat1, latDegree, lat2, category string
}

func destructure(tokens []string) line {
	at := func(i int) string {
		if i < len(tokens) {
			return tokens[i]
		}
		return ""
	}
	return line{
		action: at(0), grid: at(1), kanji: at(2), hiragana: at(3), romaji: at(4),
		lon1: at(5), lonDegree: at(6), lon2: at(7),
		lat1: at(8), latDegree: at(9), lat2: at(10),
		category: at(11),
	}
}

// ApplyUpdateSchema turns grouped rows into a change set. Header and footer
// rows are ignored. Rows that fail validation are skipped and reported;
// rows that describe anything but a municipality are skipped silently.
// A later row replaces an earlier one with the same action and kanji.
func ApplyUpdateSchema(rows []layout.Row) (models.ChangeSet, []models.Diagnostic) {
	result := make(models.ChangeSet)
	fold := cases.Fold()
	var diagnostics []models.Diagnostic

	for _, row := range rows {
		l := destructure(row.Tokens)
		if l.action == "Grid" || strings.HasPrefix(l.action, "Updated list") {
			continue
		}

		lon, lonErr := degrees(l.lon1, l.lon2)
		lat, latErr := degrees(l.lat1, l.lat2)

		report := func(kind models.DiagnosticKind, message string) {
			diagnostics = append(diagnostics, models.Diagnostic{
				Stage:    models.StageChanges,
				Kind:     kind,
				Position: row.Key,
				Message:  message,
				Subject:  row.Tokens,
			})
		}

		switch {
		case !actions[l.action]:
			report(models.KindUnknownAction, "does not match any action")
		case lonErr != nil || latErr != nil:
			report(models.KindInvalidCoordinates, "incorrect coordinates")
		case l.lonDegree != DegreeMarker || l.latDegree != DegreeMarker:
			report(models.KindMissingDegreeMarker, "missing degree marker")
		case fold.String(l.category) != classificationMunicipality:
			// Prefectures and other regions are not part of the dataset.
		default:
			grid, _ := parseInt(l.grid)
			result.Add(models.ChangeRecord{
				Action:         l.action,
				Grid:           grid,
				Kanji:          l.kanji,
				Hiragana:       l.hiragana,
				Romaji:         l.romaji,
				Lat:            lat,
				Lon:            lon,
				Classification: l.category,
			})
		}
	}

	return result, diagnostics
}

// degrees combines whole degrees and minutes into decimal degrees.
func degrees(deg, minutes string) (float64, error) {
	d, err := parseInt(deg)
	if err != nil {
		return 0, err
	}
	m, err := parseInt(minutes)
	if err != nil {
		return 0, err
	}
	return float64(d) + float64(m)/60, nil
}

// parseInt reads the leading decimal integer of s, ignoring surrounding
// space and anything after the digits. Full-width digits are accepted.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(width.Narrow.String(s))

	digits := 0
	if s != "" && (s[0] == '-' || s[0] == '+') {
		digits = 1
	}
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}

	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}
