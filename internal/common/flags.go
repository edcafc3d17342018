package common

import (
	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/urfave/cli/v2"
)

// GlobalFlags are accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file",
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Summarization service base URL",
			EnvVars: []string{models.BaseURLEnv},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout",
			Value: models.DefaultTimeout,
		},
		&cli.IntFlag{
			Name:  "preview-limit",
			Usage: "Characters of extracted text shown before Show More",
			Value: models.DefaultPreviewLimit,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json or yaml",
			Value:   FormatText,
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only log errors",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log request details",
		},
	}
}

// FileFlags are shared by commands that take a <file> argument.
func FileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "File name to send when reading from stdin (-)",
		},
	}
}
