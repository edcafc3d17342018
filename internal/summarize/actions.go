package summarize

import (
	"fmt"

	"github.com/dtnitsch/doc-summarizer/internal/common"
	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/dtnitsch/doc-summarizer/pkg/storage"
	"github.com/urfave/cli/v2"
)

// Command is the `summarize` command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "summarize",
		Usage:     "Upload a file and summarize its text",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "length",
				Aliases: []string{"l"},
				Usage:   "Summary length: short, medium or long",
				Value:   string(models.LengthMedium),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Also write the summary to this file",
			},
		}, common.FileFlags()...),
		Action: SummarizeAction,
	}
}

// SummarizeAction uploads one file, summarizes the extracted text and
// prints the summary.
func SummarizeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	if c.NArg() != 1 {
		return cli.Exit("usage: docsum summarize <file> [--length short|medium|long]", 2)
	}

	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	length := cfg.DefaultLength
	if c.IsSet("length") {
		length, err = models.ParseSummaryLength(c.String("length"))
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}

	file, err := common.LoadFile(c.Args().First(), c.String("name"), c.App.Reader)
	if err != nil {
		logger.Error("failed to read file", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	ctrl := common.NewController(cfg, logger)
	ctrl.Select(file)
	if _, err := ctrl.SetLength(length); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	state, err := ctrl.Upload(c.Context)
	if err != nil {
		return fmt.Errorf("extraction did not run: %w", err)
	}
	// Extraction failed; the failure is already recorded in state.
	if state.Text != "" {
		state, err = ctrl.Summarize(c.Context)
		if err != nil {
			return fmt.Errorf("summarization did not run: %w", err)
		}
	}

	if out := c.String("out"); out != "" && state.Summary != "" {
		stats, err := (&storage.Storage{}).SaveText(out, state.Summary)
		if err != nil {
			return fmt.Errorf("failed to write summary to %s: %w", out, err)
		}
		logger.Info("summary written", "path", out, "size_bytes", stats.SizeBytes)
	}

	report := common.NewReport(state, file, nil)
	// Only the summary is printed.
	report.Text, report.Truncated, report.Hidden = "", false, 0
	if err := common.WriteReport(c.App.Writer, c.String("format"), report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if state.Failure != nil {
		return cli.Exit("", 1)
	}
	return nil
}
