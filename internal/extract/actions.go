package extract

import (
	"fmt"

	"github.com/dtnitsch/doc-summarizer/internal/common"
	"github.com/dtnitsch/doc-summarizer/pkg/textstats"
	"github.com/urfave/cli/v2"
)

// Command is the `extract` command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Upload a file and print its extracted text",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "full",
				Usage: "Print the whole text instead of the preview",
			},
			&cli.BoolFlag{
				Name:  "no-stats",
				Usage: "Skip word count, keywords and language detection",
			},
		}, common.FileFlags()...),
		Action: ExtractAction,
	}
}

// ExtractAction uploads one file and prints the extracted text.
func ExtractAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	if c.NArg() != 1 {
		return cli.Exit("usage: docsum extract <file> (use - for stdin)", 2)
	}

	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	file, err := common.LoadFile(c.Args().First(), c.String("name"), c.App.Reader)
	if err != nil {
		logger.Error("failed to read file", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	ctrl := common.NewController(cfg, logger)
	ctrl.Select(file)

	state, err := ctrl.Upload(c.Context)
	if err != nil {
		return fmt.Errorf("extraction did not run: %w", err)
	}
	if c.Bool("full") && state.CanToggle() {
		state, _ = ctrl.Expand()
	}

	var analyzer *textstats.Analyzer
	if !c.Bool("no-stats") {
		analyzer = textstats.NewAnalyzer()
	}
	report := common.NewReport(state, file, analyzer)
	if err := common.WriteReport(c.App.Writer, c.String("format"), report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if state.Failure != nil {
		return cli.Exit("", 1)
	}
	return nil
}
