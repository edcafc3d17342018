package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/dtnitsch/doc-summarizer/pkg/acquire"
	"github.com/dtnitsch/doc-summarizer/pkg/textstats"
	"github.com/dtnitsch/doc-summarizer/pkg/workflow"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is the outcome of one extract or summarize run.
type Report struct {
	File        string               `json:"file" yaml:"file"`
	SizeBytes   int                  `json:"size_bytes" yaml:"size_bytes"`
	SHA256      string               `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Status      string               `json:"status" yaml:"status"`
	Error       string               `json:"error,omitempty" yaml:"error,omitempty"`
	FailureKind models.FailureKind   `json:"failure_kind,omitempty" yaml:"failure_kind,omitempty"`
	Text        string               `json:"text,omitempty" yaml:"text,omitempty"`
	Truncated   bool                 `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Hidden      int                  `json:"hidden_chars,omitempty" yaml:"hidden_chars,omitempty"`
	Stats       *textstats.Stats     `json:"stats,omitempty" yaml:"stats,omitempty"`
	Length      models.SummaryLength `json:"length,omitempty" yaml:"length,omitempty"`
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// NewReport builds a Report from a controller snapshot. analyzer may be nil.
func NewReport(s workflow.State, file *acquire.File, analyzer *textstats.Analyzer) *Report {
	r := &Report{
		Status:    "success",
		Text:      s.Display(),
		Truncated: s.Truncated(),
		Summary:   s.Summary,
	}
	if file != nil {
		r.File = file.Name
		r.SizeBytes = file.Size()
		r.SHA256 = ContentHash(file.Data)
	}
	if r.Truncated {
		r.Hidden = utf8.RuneCountInString(s.Text) - s.PreviewLimit
	}
	if s.Summary != "" {
		r.Length = s.Length
	}
	if s.Failure != nil {
		r.Status = "failed"
		r.Error = s.ErrorMessage()
		r.FailureKind = s.Failure.Kind
	}
	if analyzer != nil && s.Text != "" {
		stats := analyzer.Analyze(s.Text)
		r.Stats = &stats
	}
	return r
}

// WriteReport renders r as text, json or yaml.
func WriteReport(w io.Writer, format string, r *Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func writeText(w io.Writer, r *Report) error {
	var sb strings.Builder
	if r.File != "" {
		fmt.Fprintf(&sb, "📄 %s (%d bytes, sha256 %.12s)\n", r.File, r.SizeBytes, r.SHA256)
	}
	if r.Error != "" {
		fmt.Fprintf(&sb, "%s\n", r.Error)
	}
	if r.Text != "" {
		sb.WriteString("\n")
		sb.WriteString(Section("Extracted Text", r.Text))
		if r.Truncated {
			fmt.Fprintf(&sb, "[Show More: %d more characters, rerun with --full]\n", r.Hidden)
		}
	}
	if r.Stats != nil {
		fmt.Fprintf(&sb, "\n%d words, ~%d tokens", r.Stats.Words, r.Stats.EstimatedTokens)
		if r.Stats.Language != "" {
			fmt.Fprintf(&sb, ", %s", r.Stats.Language)
		}
		sb.WriteString("\n")
		if len(r.Stats.Keywords) > 0 {
			fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(r.Stats.Keywords, ", "))
		}
	}
	if r.Summary != "" {
		sb.WriteString("\n")
		sb.WriteString(Section("Summary ("+string(r.Length)+")", r.Summary))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Section renders a titled block of text.
func Section(title, body string) string {
	return fmt.Sprintf("%s\n%s\n%s\n", title, strings.Repeat("-", utf8.RuneCountInString(title)), body)
}
