package health

import (
	"fmt"
	"time"

	"github.com/dtnitsch/doc-summarizer/internal/common"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

type Result struct {
	BaseURL    string `yaml:"base_url"`
	Status     string `yaml:"status"`
	Error      string `yaml:"error,omitempty"`
	DurationMS int64  `yaml:"duration_ms"`
}

// Command is the `health` command.
func Command() *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check that the summarization service answers",
		Action: HealthAction,
	}
}

// HealthAction checks the backend root and prints the result as YAML.
func HealthAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	client := common.NewClient(cfg, logger)
	start := time.Now()
	pingErr := client.Ping(c.Context)

	result := Result{
		BaseURL:    client.BaseURL(),
		Status:     "ok",
		DurationMS: time.Since(start).Milliseconds(),
	}
	if pingErr != nil {
		result.Status = "unreachable"
		result.Error = pingErr.Error()
	}

	yamlBytes, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprint(c.App.Writer, string(yamlBytes))

	if pingErr != nil {
		return cli.Exit("", 1)
	}
	return nil
}
