// Package output writes the merged municipality list.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jp-municipalities/internal/models"

	"github.com/goccy/go-yaml"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode renders records in format. JSON is an array indented by two spaces.
func Encode(format string, records []models.Municipality) ([]byte, error) {
	if records == nil {
		records = []models.Municipality{}
	}

	switch strings.ToLower(format) {
	case "", FormatJSON:
		return json.MarshalIndent(records, "", "  ")
	case FormatYAML, "yml":
		return yaml.Marshal(records)
	}
	return nil, fmt.Errorf("output: unsupported format %q", format)
}

// Write encodes records and replaces the file at path. The file is written
// next to its destination first and renamed into place.
func Write(path, format string, records []models.Municipality) error {
	data, err := Encode(format, records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("output: failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("output: failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("output: failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("output: failed to set mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("output: failed to replace %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes records as a pretty-printed JSON array.
func WriteJSON(path string, records []models.Municipality) error {
	return Write(path, FormatJSON, records)
}
