package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveText(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "dir", "summary.txt")

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "adds newline", text: "The gist.", want: "The gist.\n"},
		{name: "keeps one newline", text: "The gist.\n\n", want: "The gist.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := s.SaveText(path, tt.text)
			require.NoError(t, err)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
			assert.Equal(t, int64(len(tt.want)), stats.SizeBytes)
		})
	}

	assert.True(t, s.HasFile(path))
	assert.False(t, s.HasFile(filepath.Join(t.TempDir(), "missing.txt")))
}

func TestGetFileStatsMissing(t *testing.T) {
	_, err := (&Storage{}).GetFileStats(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
