// Package resolver links each code-list entry to the record that describes
// it today and merges the two into the output shape.
package resolver

import (
	"fmt"

	"jp-municipalities/internal/models"
)

// Inputs are the loaded tables one run resolves against.
type Inputs struct {
	CodeList        []models.CodeListEntry
	Gazetteer       []models.GazetteerEntry
	Changes         models.ChangeSet
	Disambiguations []models.Disambiguation
	MissingRomaji   []models.MissingRomaji
	Prefectures     []models.Prefecture
}

type placeKey struct {
	municipality string
	prefecture   string
}

// Resolver holds indexes over Inputs built once per run.
type Resolver struct {
	codeList        []models.CodeListEntry
	changes         models.ChangeSet
	gazetteer       map[string][]models.GazetteerEntry
	disambiguations map[placeKey]models.Disambiguation
	missingRomaji   map[string]models.MissingRomaji
	prefectures     PrefectureIndex
}

// New indexes in. Where a table repeats a key the first row wins; gazetteer
// candidates keep their file order.
func New(in Inputs) *Resolver {
	r := &Resolver{
		codeList:        in.CodeList,
		changes:         in.Changes,
		gazetteer:       make(map[string][]models.GazetteerEntry),
		disambiguations: make(map[placeKey]models.Disambiguation),
		missingRomaji:   make(map[string]models.MissingRomaji),
		prefectures:     IndexPrefectures(in.Prefectures),
	}
	if r.changes == nil {
		r.changes = models.ChangeSet{}
	}

	for _, g := range in.Gazetteer {
		r.gazetteer[g.Kanji] = append(r.gazetteer[g.Kanji], g)
	}
	for _, d := range in.Disambiguations {
		key := placeKey{d.Municipality, d.Prefecture}
		if _, ok := r.disambiguations[key]; !ok {
			r.disambiguations[key] = d
		}
	}
	for _, m := range in.MissingRomaji {
		if _, ok := r.missingRomaji[m.Code]; !ok {
			r.missingRomaji[m.Code] = m
		}
	}

	return r
}

// Resolve returns the merged municipalities in code-list order. Prefecture
// rows, deleted municipalities and entries that cannot be resolved are left
// out; the latter are reported as diagnostics.
func (r *Resolver) Resolve() ([]models.Municipality, []models.Diagnostic) {
	municipalities := make([]models.Municipality, 0, len(r.codeList))
	var diagnostics []models.Diagnostic

	for _, entry := range r.codeList {
		if entry.Municipality == "" {
			continue
		}

		ref, found, diags := r.lookup(entry)
		diagnostics = append(diagnostics, diags...)
		if !found {
			continue
		}

		m, ok := Merge(entry, ref, r.prefectures)
		if !ok {
			diagnostics = append(diagnostics, models.Diagnostic{
				Stage:    models.StageMerge,
				Kind:     models.KindMissingPrefecture,
				Position: entry.Code,
				Message:  fmt.Sprintf("could not find prefecture %q", entry.Prefecture),
				Subject:  entry,
			})
		}
		municipalities = append(municipalities, m)
	}

	return municipalities, diagnostics
}

// lookup walks the resolution chain for one entry: deleted, added, unique
// gazetteer name, disambiguated gazetteer name, missing-romaji correction.
func (r *Resolver) lookup(entry models.CodeListEntry) (models.Reference, bool, []models.Diagnostic) {
	var diagnostics []models.Diagnostic
	report := func(kind models.DiagnosticKind, message string) {
		diagnostics = append(diagnostics, models.Diagnostic{
			Stage:    models.StageResolve,
			Kind:     kind,
			Position: entry.Code,
			Message:  message,
			Subject:  entry,
		})
	}

	if _, deleted := r.changes.Lookup(models.ActionDeleted, entry.Municipality); deleted {
		return models.Reference{}, false, nil
	}
	if added, ok := r.changes.Lookup(models.ActionAdded, entry.Municipality); ok {
		return fromChange(added), true, nil
	}

	candidates := r.gazetteer[entry.Municipality]
	if len(candidates) == 1 {
		ref, err := fromGazetteer(candidates[0])
		if err != nil {
			report(models.KindInvalidReference, fmt.Sprintf("gazetteer row for %s: %v", entry.Municipality, err))
			return models.Reference{}, false, diagnostics
		}
		return ref, true, nil
	}

	if d, ok := r.disambiguations[placeKey{entry.Municipality, entry.Prefecture}]; ok {
		if g, ok := pickByLongitude(candidates, d.OrgLongitude); ok {
			ref, err := fromGazetteer(g)
			if err != nil {
				report(models.KindInvalidReference, fmt.Sprintf("gazetteer row for %s: %v", entry.Municipality, err))
				return models.Reference{}, false, diagnostics
			}
			return ref, true, nil
		}
		report(models.KindDisambiguationMismatch,
			fmt.Sprintf("no gazetteer row for %s at longitude %q", entry.Municipality, d.OrgLongitude))
	}

	if m, ok := r.missingRomaji[entry.Code]; ok {
		ref, err := fromMissingRomaji(m)
		if err != nil {
			report(models.KindInvalidReference, fmt.Sprintf("missing romaji row for %s: %v", entry.Code, err))
			return models.Reference{}, false, diagnostics
		}
		return ref, true, diagnostics
	}

	report(models.KindUnresolved, "could not find")
	return models.Reference{}, false, diagnostics
}

func pickByLongitude(candidates []models.GazetteerEntry, longitude string) (models.GazetteerEntry, bool) {
	for _, g := range candidates {
		if g.OrgLongitude == longitude {
			return g, true
		}
	}
	return models.GazetteerEntry{}, false
}
