// Package pipeline runs the dataset build: load the reference tables, extract
// the change list, resolve every code and write the result.
package pipeline

import (
	"context"
	"fmt"

	"jp-municipalities/internal/changes"
	"jp-municipalities/internal/config"
	"jp-municipalities/internal/layout"
	"jp-municipalities/internal/models"
	"jp-municipalities/internal/output"
	"jp-municipalities/internal/reference"
	"jp-municipalities/internal/resolver"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Paths locates the inputs and the output of a run.
type Paths struct {
	CodeList         string
	CodeListEncoding string
	Gazetteer        string
	Changes          string
	Disambiguations  string
	MissingRomaji    string
	Prefectures      string
	Output           string
	OutputFormat     string
}

// Pipeline is one configured build.
type Pipeline struct {
	Paths     Paths
	Tolerance float64
	Reader    layout.FragmentReader
}

// Result is what a run produced.
type Result struct {
	Municipalities []models.Municipality
	Diagnostics    []models.Diagnostic
}

// New creates a pipeline from configuration, reading the change list as PDF.
func New(cfg config.Config) *Pipeline {
	return &Pipeline{
		Paths: Paths{
			CodeList:         cfg.CodeListPath,
			CodeListEncoding: cfg.CodeListEncoding,
			Gazetteer:        cfg.GazetteerPath,
			Changes:          cfg.ChangesPath,
			Disambiguations:  cfg.DisambiguationsPath,
			MissingRomaji:    cfg.MissingRomajiPath,
			Prefectures:      cfg.PrefecturesPath,
			Output:           cfg.OutputPath,
			OutputFormat:     cfg.OutputFormat,
		},
		Tolerance: cfg.RowTolerance,
		Reader:    layout.NewPDFReader(cfg.WordGap),
	}
}

// Run loads every input and resolves the municipalities. Any read or parse
// failure aborts the run; per-record problems are logged and returned as
// diagnostics.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	codeList, err := reference.LoadCodeList(p.Paths.CodeList, p.Paths.CodeListEncoding)
	if err != nil {
		return nil, fmt.Errorf("pipeline: code list: %w", err)
	}
	gazetteer, err := reference.LoadGazetteer(p.Paths.Gazetteer)
	if err != nil {
		return nil, fmt.Errorf("pipeline: gazetteer: %w", err)
	}

	fragments, err := p.Reader.Read(ctx, p.Paths.Changes)
	if err != nil {
		return nil, fmt.Errorf("pipeline: change list: %w", err)
	}
	rows := layout.GroupRows(fragments, p.Tolerance)
	changeSet, diagnostics := changes.ApplyUpdateSchema(rows)
	log.Debug().
		Int("fragments", len(fragments)).
		Int("rows", len(rows)).
		Int("added", len(changeSet[models.ActionAdded])).
		Int("modified", len(changeSet[models.ActionModified])).
		Int("deleted", len(changeSet[models.ActionDeleted])).
		Msg("extracted change list")

	disambiguations, err := reference.LoadDisambiguations(p.Paths.Disambiguations)
	if err != nil {
		return nil, fmt.Errorf("pipeline: disambiguations: %w", err)
	}
	missingRomaji, err := reference.LoadMissingRomaji(p.Paths.MissingRomaji)
	if err != nil {
		return nil, fmt.Errorf("pipeline: missing romaji: %w", err)
	}
	prefectures, err := reference.LoadPrefectures(p.Paths.Prefectures)
	if err != nil {
		return nil, fmt.Errorf("pipeline: prefectures: %w", err)
	}

	municipalities, resolveDiagnostics := resolver.New(resolver.Inputs{
		CodeList:        codeList,
		Gazetteer:       gazetteer,
		Changes:         changeSet,
		Disambiguations: disambiguations,
		MissingRomaji:   missingRomaji,
		Prefectures:     prefectures,
	}).Resolve()
	diagnostics = append(diagnostics, resolveDiagnostics...)

	for _, d := range diagnostics {
		logDiagnostic(d)
	}

	return &Result{Municipalities: municipalities, Diagnostics: diagnostics}, nil
}

// Generate runs the pipeline and writes the output file.
func (p *Pipeline) Generate(ctx context.Context) (*Result, error) {
	result, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().Int("count", len(result.Municipalities)).Str("path", p.Paths.Output).Msg("saving municipalities")
	if err := output.Write(p.Paths.Output, p.Paths.OutputFormat, result.Municipalities); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return result, nil
}

func logDiagnostic(d models.Diagnostic) {
	level := zerolog.WarnLevel
	switch d.Kind {
	case models.KindMissingPrefecture:
		level = zerolog.ErrorLevel
	case models.KindUnresolved:
		level = zerolog.InfoLevel
	}

	log.WithLevel(level).
		Str("stage", d.Stage).
		Str("kind", string(d.Kind)).
		Str("position", d.Position).
		Interface("subject", d.Subject).
		Msg(d.Message)
}
