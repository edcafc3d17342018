package common

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/dtnitsch/doc-summarizer/pkg/acquire"
	"github.com/dtnitsch/doc-summarizer/pkg/remote"
	"github.com/dtnitsch/doc-summarizer/pkg/workflow"
	"github.com/urfave/cli/v2"
)

// StdinName is the path argument that reads the file from standard input.
const StdinName = "-"

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// NewLogger builds the JSON logger every action uses, writing to the app's
// error stream. --quiet keeps only errors.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if c.App != nil && c.App.ErrWriter != nil {
		w = c.App.ErrWriter
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig resolves configuration: defaults, then --config file, then
// DOCSUM_BASE_URL, then flags. Validation runs once, on the merged result.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.ReadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("preview-limit") {
		cfg.PreviewLimit = c.Int("preview-limit")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewClient builds the remote client for cfg.
func NewClient(cfg *models.Config, logger *slog.Logger) *remote.Client {
	return remote.NewClient(cfg.BaseURL, cfg.Timeout,
		remote.WithLogger(logger),
		remote.WithUserAgent(cfg.UserAgent),
	)
}

// NewController wires a workflow controller to the remote service.
func NewController(cfg *models.Config, logger *slog.Logger, opts ...workflow.Option) *workflow.Controller {
	client := NewClient(cfg, logger)
	base := []workflow.Option{
		workflow.WithLogger(logger),
		workflow.WithPreviewLimit(cfg.PreviewLimit),
		workflow.WithLength(cfg.DefaultLength),
	}
	return workflow.NewController(client, client, append(base, opts...)...)
}

// LoadFile opens path, or reads stdin when path is "-" and names the result
// stdinName.
func LoadFile(path, stdinName string, stdin io.Reader) (*acquire.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no file given")
	}
	if path == StdinName {
		if stdinName == "" {
			stdinName = "stdin.txt"
		}
		return acquire.FromReader(stdinName, stdin)
	}
	return acquire.Open(path)
}
