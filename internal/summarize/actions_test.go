package summarize

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/doc-summarizer/internal/common"
	"github.com/dtnitsch/doc-summarizer/internal/testutil"
	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
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

func TestSummarizeWritesOutFile(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	b := &testutil.Backend{Text: "Quarterly revenue grew.", Summary: "Revenue up."}
	srv := testutil.NewBackend(t, b)
	out := filepath.Join(t.TempDir(), "out", "summary.txt")

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", srv.URL,
		"summarize", "--length", "short", "--out", out, writeFile(t, "report.txt", "raw"))

	require.Equal(t, 0, res.Code, res.Stderr)
	assert.Equal(t, "short", b.LastLength())
	assert.Contains(t, res.Stdout, "Summary (short)")
	assert.Contains(t, res.Stdout, "Revenue up.")
	assert.NotContains(t, res.Stdout, "Quarterly revenue grew.")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Revenue up.\n", string(data))
}

func TestSummarizeYAML(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	srv := testutil.NewBackend(t, &testutil.Backend{Text: "text", Summary: "gist"})

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", srv.URL, "--format", "yaml",
		"summarize", writeFile(t, "report.txt", "raw"))

	require.Equal(t, 0, res.Code, res.Stderr)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, "gist", got["summary"])
	assert.Equal(t, "medium", got["length"])
}

func TestSummarizeLengthFromConfig(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	b := &testutil.Backend{Text: "text", Summary: "gist"}
	srv := testutil.NewBackend(t, b)
	cfg := writeFile(t, "config.yaml", "default_length: long\n")

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--config", cfg, "--base-url", srv.URL,
		"summarize", writeFile(t, "report.txt", "raw"))

	require.Equal(t, 0, res.Code, res.Stderr)
	assert.Equal(t, "long", b.LastLength())
}

func TestSummarizeExtractionFailure(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	b := &testutil.Backend{Summary: "never"}
	srv := testutil.NewBackend(t, b)
	out := filepath.Join(t.TempDir(), "summary.txt")

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", srv.URL,
		"summarize", "--out", out, writeFile(t, "scan.png", "raw"))

	assert.Equal(t, 1, res.Code)
	assert.Contains(t, res.Stdout, models.MessageUnsupportedFormat)
	assert.Equal(t, 0, b.Summaries(), "no summary is requested without text")
	assert.NoFileExists(t, out)
}

func TestSummarizeServiceFailure(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	srv := testutil.NewBackend(t, &testutil.Backend{Text: "text", SummarizeStatus: http.StatusInternalServerError})
	out := filepath.Join(t.TempDir(), "summary.txt")

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", srv.URL,
		"summarize", "--out", out, writeFile(t, "report.txt", "raw"))

	assert.Equal(t, 1, res.Code)
	assert.Contains(t, res.Stdout, models.MessageSummarizationFailed)
	assert.NoFileExists(t, out)
}

func TestSummarizeInvalidLength(t *testing.T) {
	t.Setenv(models.BaseURLEnv, "")
	b := &testutil.Backend{Text: "text", Summary: "gist"}
	srv := testutil.NewBackend(t, b)

	res := testutil.RunApp(t, newApp(), "", "--quiet", "--base-url", srv.URL,
		"summarize", "--length", "huge", writeFile(t, "report.txt", "raw"))

	assert.Equal(t, 2, res.Code)
	assert.Equal(t, 0, b.Uploads())
}
