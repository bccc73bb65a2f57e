package models

import "fmt"

// DiagnosticKind classifies a non-fatal finding.
type DiagnosticKind string

const (
	KindUnknownAction          DiagnosticKind = "unknown_action"
	KindInvalidCoordinates     DiagnosticKind = "invalid_coordinates"
	KindMissingDegreeMarker    DiagnosticKind = "missing_degree_marker"
	KindUnresolved             DiagnosticKind = "unresolved"
	KindDisambiguationMismatch DiagnosticKind = "disambiguation_mismatch"
	KindMissingPrefecture      DiagnosticKind = "missing_prefecture"
	KindInvalidReference       DiagnosticKind = "invalid_reference"
)

// Stages that emit diagnostics.
const (
	StageChanges = "changes"
	StageResolve = "resolve"
	StageMerge   = "merge"
)

// Diagnostic records a per-record problem. The run carries on; the record
// is skipped or emitted with partial data.
type Diagnostic struct {
	Stage    string         `json:"stage"`
	Kind     DiagnosticKind `json:"kind"`
	Position string         `json:"position,omitempty"`
	Message  string         `json:"message"`
	Subject  any            `json:"subject,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Position != "" {
		return fmt.Sprintf("%s: %s at %s", d.Stage, d.Message, d.Position)
	}
	return fmt.Sprintf("%s: %s", d.Stage, d.Message)
}
