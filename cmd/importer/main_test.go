package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataset(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expected    []string
		expectError bool
	}{
		{
			name:     "generated dataset",
			content:  `[{"code":"011002","name_kanji":"札幌市","lat":43.06,"lon":141.35},{"code":"131016","name_kanji":"千代田区"}]`,
			expected: []string{"011002", "131016"},
		},
		{
			name:     "empty dataset",
			content:  `[]`,
			expected: nil,
		},
		{
			name:        "not json",
			content:     `code,name`,
			expectError: true,
		},
		{
			name:        "missing code",
			content:     `[{"name_kanji":"札幌市"}]`,
			expectError: true,
		},
		{
			name:        "duplicate code",
			content:     `[{"code":"011002"},{"code":"011002"}]`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "municipalities.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			records, err := parseDataset(path)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var codes []string
			for _, r := range records {
				codes = append(codes, r.Code)
			}
			assert.Equal(t, tt.expected, codes)
		})
	}
}

func TestParseDataset_MissingFile(t *testing.T) {
	_, err := parseDataset(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
