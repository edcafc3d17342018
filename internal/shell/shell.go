// Package shell is an interactive front end for the workflow controller.
// Uploads and summaries run in the background so the prompt stays live;
// results are printed as the controller publishes them.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dtnitsch/doc-summarizer/internal/common"
	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/dtnitsch/doc-summarizer/pkg/acquire"
	"github.com/dtnitsch/doc-summarizer/pkg/storage"
	"github.com/dtnitsch/doc-summarizer/pkg/workflow"
	"github.com/urfave/cli/v2"
)

const (
	Prompt        = "docsum> "
	MsgProcessing = "Processing..."
	MsgNoFile     = "No file selected. Use: select <path>"
	MsgNoText     = "Nothing to summarize. Upload a file first."
	MsgNoSummary  = "No summary yet."
)

type command struct {
	usage string
	help  string
	run   func(s *Shell, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"select":    {"select <path>", "choose the file to upload", (*Shell).cmdSelect},
		"upload":    {"upload", "extract text from the selected file", (*Shell).cmdUpload},
		"length":    {"length [short|medium|long]", "show or set the summary length", (*Shell).cmdLength},
		"summarize": {"summarize", "summarize the extracted text", (*Shell).cmdSummarize},
		"more":      {"more", "show the full extracted text", (*Shell).cmdMore},
		"less":      {"less", "show the preview only", (*Shell).cmdLess},
		"show":      {"show", "print the extracted text and summary", (*Shell).cmdShow},
		"copy":      {"copy <path>", "write the summary to a file", (*Shell).cmdCopy},
		"status":    {"status", "print the workflow status", (*Shell).cmdStatus},
		"wait":      {"wait", "block until background requests finish", (*Shell).cmdWait},
		"help":      {"help", "list commands", (*Shell).cmdHelp},
	}
}

var errQuit = errors.New("quit")

type Shell struct {
	ctrl  *workflow.Controller
	out   io.Writer
	store *storage.Storage

	wg sync.WaitGroup

	mu   sync.Mutex
	last workflow.State
}

// New attaches a shell to ctrl. Output goes to out.
func New(ctrl *workflow.Controller, out io.Writer) *Shell {
	s := &Shell{ctrl: ctrl, out: out, store: &storage.Storage{}, last: ctrl.Snapshot()}
	ctrl.Subscribe(s.render)
	return s
}

func (s *Shell) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// render prints what changed between the last rendered snapshot and st.
// Snapshots can arrive out of order from concurrent requests; older
// versions are dropped.
func (s *Shell) render(st workflow.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.Version <= s.last.Version {
		return
	}
	prev := s.last
	s.last = st

	if st.Busy() && !prev.Busy() {
		fmt.Fprintln(s.out, MsgProcessing)
	}
	if st.Failure != nil && st.Failure != prev.Failure {
		fmt.Fprintln(s.out, st.Failure.Message())
	}
	if st.Text != "" && st.Text != prev.Text {
		fmt.Fprintf(s.out, "Extracted %d characters. Type 'show' to read them.\n", utf8.RuneCountInString(st.Text))
	}
	if st.Summary != "" && st.Summary != prev.Summary {
		fmt.Fprint(s.out, common.Section("Summary ("+string(st.Length)+")", st.Summary))
	}
}

// Run reads commands from in until quit, EOF or ctx is done, then waits for
// background requests to finish. Lines are read on a separate goroutine so
// cancellation is seen at an idle prompt.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	defer s.wg.Wait()

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.printf("Type 'help' for commands.\n%s", Prompt)
	for {
		select {
		case <-ctx.Done():
			s.printf("\n")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if err := s.Exec(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				s.printf("error: %v\n", err)
			}
			s.printf("%s", Prompt)
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	if name == "quit" || name == "exit" {
		return errQuit
	}
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (try 'help')", name)
	}
	return cmd.run(s, ctx, args)
}

// Wait blocks until background uploads and summaries finish.
func (s *Shell) Wait() {
	s.wg.Wait()
}

func (s *Shell) cmdSelect(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", commands["select"].usage)
	}
	file, err := acquire.Open(args[0])
	if err != nil {
		return err
	}
	s.ctrl.Select(file)
	s.printf("Selected %s (%d bytes)\n", file.Name, file.Size())
	return nil
}

func (s *Shell) cmdUpload(ctx context.Context, _ []string) error {
	st := s.ctrl.Snapshot()
	switch {
	case st.Busy():
		s.printf("%s\n", MsgProcessing)
		return nil
	case st.PendingFile == "":
		s.printf("%s\n", MsgNoFile)
		return nil
	}
	s.background(func() error {
		_, err := s.ctrl.Upload(ctx)
		return err
	})
	return nil
}

func (s *Shell) cmdSummarize(ctx context.Context, _ []string) error {
	st := s.ctrl.Snapshot()
	switch {
	case st.Busy():
		s.printf("%s\n", MsgProcessing)
		return nil
	case st.Text == "":
		s.printf("%s\n", MsgNoText)
		return nil
	}
	s.background(func() error {
		_, err := s.ctrl.Summarize(ctx)
		return err
	})
	return nil
}

// background runs fn on its own goroutine. Refusals that race past the
// busy check are reported the same way as the synchronous ones.
func (s *Shell) background(fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		switch err := fn(); {
		case err == nil, errors.Is(err, workflow.ErrSuperseded):
		case errors.Is(err, workflow.ErrBusy):
			s.printf("%s\n", MsgProcessing)
		case errors.Is(err, workflow.ErrNoFile):
			s.printf("%s\n", MsgNoFile)
		case errors.Is(err, workflow.ErrNoText):
			s.printf("%s\n", MsgNoText)
		default:
			s.printf("error: %v\n", err)
		}
	}()
}

func (s *Shell) cmdLength(_ context.Context, args []string) error {
	if len(args) == 0 {
		options := make([]string, len(models.SummaryLengths))
		for i, l := range models.SummaryLengths {
			options[i] = string(l)
		}
		s.printf("Summary length: %s (options: %s)\n", s.ctrl.Snapshot().Length.Label(), strings.Join(options, ", "))
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", commands["length"].usage)
	}
	length, err := models.ParseSummaryLength(args[0])
	if err != nil {
		return err
	}
	st, err := s.ctrl.SetLength(length)
	if err != nil {
		return err
	}
	s.printf("Summary length: %s\n", st.Length.Label())
	return nil
}

func (s *Shell) cmdMore(_ context.Context, _ []string) error {
	return s.toggle(s.ctrl.Expand)
}

func (s *Shell) cmdLess(_ context.Context, _ []string) error {
	return s.toggle(s.ctrl.Collapse)
}

func (s *Shell) toggle(fn func() (workflow.State, error)) error {
	st, err := fn()
	if errors.Is(err, workflow.ErrNotExpandable) {
		if st.Text == "" {
			s.printf("No extracted text.\n")
		} else {
			s.printf("The whole text is already shown.\n")
		}
		return nil
	}
	if err != nil {
		return err
	}
	s.printText(st)
	return nil
}

func (s *Shell) cmdShow(_ context.Context, _ []string) error {
	st := s.ctrl.Snapshot()
	if st.Text == "" && st.Summary == "" {
		s.printf("Nothing to show yet.\n")
		return nil
	}
	if st.Text != "" {
		s.printText(st)
	}
	if st.Summary != "" {
		s.printf("\n%s", common.Section("Summary ("+string(st.Length)+")", st.Summary))
	}
	return nil
}

func (s *Shell) printText(st workflow.State) {
	var sb strings.Builder
	sb.WriteString(common.Section("Extracted Text", st.Display()))
	if st.CanToggle() {
		cmd := "more"
		if st.Expanded {
			cmd = "less"
		}
		fmt.Fprintf(&sb, "[%s: type '%s']\n", st.ToggleLabel(), cmd)
	}
	s.printf("%s", sb.String())
}

func (s *Shell) cmdCopy(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", commands["copy"].usage)
	}
	st := s.ctrl.Snapshot()
	if st.Summary == "" {
		s.printf("%s\n", MsgNoSummary)
		return nil
	}
	if s.store.HasFile(args[0]) {
		s.printf("Overwriting %s\n", args[0])
	}
	stats, err := s.store.SaveText(args[0], st.Summary)
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	s.printf("Summary written to %s (%d bytes)\n", args[0], stats.SizeBytes)
	return nil
}

func (s *Shell) cmdStatus(_ context.Context, _ []string) error {
	st := s.ctrl.Snapshot()
	var sb strings.Builder
	fmt.Fprintf(&sb, "status:  %s\n", st.Status)
	if st.PendingFile != "" {
		fmt.Fprintf(&sb, "file:    %s\n", st.PendingFile)
	}
	fmt.Fprintf(&sb, "length:  %s\n", st.Length.Label())
	fmt.Fprintf(&sb, "text:    %d characters\n", utf8.RuneCountInString(st.Text))
	fmt.Fprintf(&sb, "summary: %t\n", st.Summary != "")
	if msg := st.ErrorMessage(); msg != "" {
		fmt.Fprintf(&sb, "error:   %s\n", msg)
	}
	s.printf("%s", sb.String())
	return nil
}

func (s *Shell) cmdWait(_ context.Context, _ []string) error {
	s.wg.Wait()
	return nil
}

func (s *Shell) cmdHelp(_ context.Context, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-26s %s\n", commands[name].usage, commands[name].help)
	}
	fmt.Fprintf(&sb, "  %-26s %s\n", "quit", "leave the shell")
	s.printf("%s", sb.String())
	return nil
}

// Command is the `shell` command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "shell",
		Usage:     "Interactive session: select, upload, summarize, show more/less",
		ArgsUsage: "[file]",
		Action:    ShellAction,
	}
}

// ShellAction starts an interactive session on stdin.
func ShellAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	ctrl := common.NewController(cfg, logger)
	sh := New(ctrl, c.App.Writer)
	if path := c.Args().First(); path != "" {
		if err := sh.cmdSelect(c.Context, []string{path}); err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}
	if err := sh.Run(c.Context, c.App.Reader); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
