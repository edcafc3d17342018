package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/doc-summarizer/internal/common"
	"github.com/dtnitsch/doc-summarizer/internal/testutil"
	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:     "docsum",
		Flags:    common.GlobalFlags(),
		Commands: []*cli.Command{Command()},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractPrintsPreview(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	long := strings.Repeat("a", 350)
	srv := testutil.NewBackend(t, &testutil.Backend{Text: long})

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", srv.URL, "extract", "--no-stats", writeFile(t, "doc.txt", "raw"))

	require.Equal(t, 0, res.Code, res.Stderr)
	assert.Contains(t, res.Stdout, "📄 doc.txt")
	assert.Contains(t, res.Stdout, strings.Repeat("a", 300)+"...\n")
	assert.NotContains(t, res.Stdout, long)
	assert.Contains(t, res.Stdout, "Show More: 50 more characters")
}

func TestExtractFullSkipsPreview(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	long := strings.Repeat("a", 350)
	srv := testutil.NewBackend(t, &testutil.Backend{Text: long})

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", srv.URL, "extract", "--no-stats", "--full", writeFile(t, "doc.txt", "raw"))

	require.Equal(t, 0, res.Code, res.Stderr)
	assert.Contains(t, res.Stdout, long+"\n")
	assert.NotContains(t, res.Stdout, "Show More")
}

func TestExtractJSON(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	srv := testutil.NewBackend(t, &testutil.Backend{Text: "Hello world"})

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", srv.URL, "--format", "json", "extract", "--no-stats", writeFile(t, "doc.txt", "raw"))

	require.Equal(t, 0, res.Code, res.Stderr)
	var report common.Report
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &report))
	assert.Equal(t, "success", report.Status)
	assert.Equal(t, "Hello world", report.Text)
	assert.Equal(t, "doc.txt", report.File)
	assert.Nil(t, report.Stats)
}

func TestExtractFailuresExitOne(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")

	tests := []struct {
		name    string
		baseURL func(t *testing.T) string
		wantMsg string
	}{
		{
			name: "unsupported format",
			baseURL: func(t *testing.T) string {
				return testutil.NewBackend(t, &testutil.Backend{}).URL
			},
			wantMsg: models.MessageUnsupportedFormat,
		},
		{
			name:    "backend unreachable",
			baseURL: func(t *testing.T) string { return testutil.DeadURL(t) },
			wantMsg: models.MessageUploadFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", tt.baseURL(t), "extract", "--no-stats", writeFile(t, "scan.png", "raw"))

			assert.Equal(t, 1, res.Code)
			assert.Contains(t, res.Stdout, tt.wantMsg)
		})
	}
}

func TestExtractBadInputExitsTwo(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	srv := testutil.NewBackend(t, &testutil.Backend{Text: "x"})

	tests := []struct {
		name string
		args []string
	}{
		{name: "no file argument", args: []string{"--base-url", srv.URL, "extract"}},
		{name: "missing file", args: []string{"--base-url", srv.URL, "extract", filepath.Join(t.TempDir(), "nope.pdf")}},
		{name: "invalid base url", args: []string{"--base-url", "not a url", "extract", writeFile(t, "a.txt", "x")}},
		{name: "invalid config file", args: []string{"--config", writeFile(t, "c.yaml", "base_url: /relative\n"), "extract", writeFile(t, "b.txt", "x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.RunApp(t, newApp(), "", append([]string{"--quiet"}, tt.args...)...)
			assert.Equal(t, 2, res.Code)
		})
	}
}

func TestExtractFlagOverridesInvalidConfig(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	srv := testutil.NewBackend(t, &testutil.Backend{Text: "Hello"})
	cfg := writeFile(t, "config.yaml", "base_url: /relative\npreview_limit: 2\n")

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--config", cfg, "--base-url", srv.URL, "extract", "--no-stats", writeFile(t, "doc.txt", "raw"))

	require.Equal(t, 0, res.Code, res.Stderr)
	assert.Contains(t, res.Stdout, "He...\n", "preview_limit from the file still applies")
}

func TestExtractFromStdin(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	b := &testutil.Backend{Text: "piped"}
	srv := testutil.NewBackend(t, b)

	res := testutil.RunApp(t, newApp(), "piped content", "--quiet", "--base-url", srv.URL, "extract", "--no-stats", "--name", "notes.txt", "-")

	require.Equal(t, 0, res.Code, res.Stderr)
	assert.Equal(t, "notes.txt", b.LastFile())
	assert.Contains(t, res.Stdout, "piped")
}
