package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/doc-summarizer/internal/common"
	"github.com/dtnitsch/doc-summarizer/internal/extract"
	"github.com/dtnitsch/doc-summarizer/internal/health"
	"github.com/dtnitsch/doc-summarizer/internal/shell"
	"github.com/dtnitsch/doc-summarizer/internal/summarize"
	"github.com/dtnitsch/doc-summarizer/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "docsum",
		Usage: "Extract text from documents and summarize it with a remote service",
		Flags: common.GlobalFlags(),
		Commands: []*cli.Command{
			extract.Command(),
			summarize.Command(),
			shell.Command(),
			health.Command(),
			{
				Name:  "quickstart",
				Usage: "Print a YAML quick-start guide",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
					return err
				},
			},
		},
	}
}
