// Package storage writes summaries and other outputs to disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// SaveFile writes content to filePath, creating parent directories.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// SaveText writes text with exactly one trailing newline.
func (s *Storage) SaveText(filePath, text string) (*FileStats, error) {
	if err := s.SaveFile(filePath, []byte(strings.TrimRight(text, "\n")+"\n")); err != nil {
		return nil, err
	}
	return s.GetFileStats(filePath)
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil || !os.IsNotExist(err)
}

// GetFileStats returns metadata about a file using os.Stat.
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
