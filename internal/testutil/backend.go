// Package testutil provides a fake summarization backend and a CLI runner
// for tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dtnitsch/doc-summarizer/pkg/remote"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v2"
)

// Backend answers /upload/ with Text and /summarize/ with Summary. An empty
// Text answers the way the real service does for unsupported files.
type Backend struct {
	mu sync.Mutex

	Text            string
	UploadStatus    int
	Summary         string
	SummarizeStatus int

	uploads   int
	summaries int
	gotLength string
	gotFile   string
}

// NewBackend serves b until the test ends.
func NewBackend(t testing.TB, b *Backend) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.HideBanner = true

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Document Summary Assistant API is running"})
	})
	e.POST(remote.UploadPath, func(c echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.uploads++
		if fh, err := c.FormFile(remote.UploadFormField); err == nil {
			b.gotFile = fh.Filename
		}
		if b.UploadStatus != 0 && b.UploadStatus != http.StatusOK {
			return c.JSON(b.UploadStatus, map[string]string{"detail": "upload failed"})
		}
		if b.Text == "" {
			return c.JSON(http.StatusOK, map[string]string{"error": "Unsupported file format"})
		}
		return c.JSON(http.StatusOK, map[string]string{"text": b.Text})
	})
	e.POST(remote.SummarizePath, func(c echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.summaries++
		var req struct {
			Length string `json:"length"`
		}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "bad json"})
		}
		b.gotLength = req.Length
		if b.SummarizeStatus != 0 && b.SummarizeStatus != http.StatusOK {
			return c.JSON(b.SummarizeStatus, map[string]string{"detail": "summarize failed"})
		}
		return c.JSON(http.StatusOK, map[string]string{"summary": b.Summary})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func (b *Backend) Uploads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploads
}

func (b *Backend) Summaries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.summaries
}

// LastLength is the length sent with the latest summarize request.
func (b *Backend) LastLength() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gotLength
}

// LastFile is the file name sent with the latest upload.
func (b *Backend) LastFile() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gotFile
}

// DeadURL returns a base URL nothing listens on.
func DeadURL(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// RunResult is what a CLI run produced.
type RunResult struct {
	Code   int
	Stdout string
	Stderr string
	Err    error
}

// RunApp runs app with args, capturing output and the exit code instead of
// exiting. A returned error that is not a cli.ExitCoder counts as exit 1, as
// in main.
func RunApp(t testing.TB, app *cli.App, stdin string, args ...string) RunResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)

	code, exited := 0, false
	origExiter, origErrWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code, exited = c, true }
	cli.ErrWriter = &stderr
	defer func() { cli.OsExiter, cli.ErrWriter = origExiter, origErrWriter }()

	err := app.RunContext(context.Background(), append([]string{app.Name}, args...))
	if !exited && err != nil {
		code = 1
	}
	return RunResult{Code: code, Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
