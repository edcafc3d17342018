// Package acquire captures the single file a user picks for summarization.
package acquire

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// File is an opaque binary blob plus the name it was selected under.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *File) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}

// Open reads a file from disk, the picker gesture.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return &File{Name: name, ContentType: detectContentType(name, data), Data: data}, nil
}

// FromReader drains r into a File named name, the drop gesture.
func FromReader(name string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return &File{Name: name, ContentType: detectContentType(name, data), Data: data}, nil
}

func detectContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// Picker holds at most one pending file. It is not safe for concurrent use;
// the workflow controller serializes access.
type Picker struct {
	pending *File
}

// Select replaces the pending file with candidate. A nil candidate, as from
// an empty drop event, leaves the picker untouched. No validation of type or
// size happens here; the extraction service decides what it accepts.
func (p *Picker) Select(candidate *File) bool {
	if candidate == nil {
		return false
	}
	p.pending = candidate
	return true
}

func (p *Picker) Pending() *File {
	return p.pending
}
