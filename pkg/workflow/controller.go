// Package workflow sequences file acquisition, extraction and summarization.
// The Controller is the only writer of the extracted text, the summary and
// the workflow status; everything else reads snapshots.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/dtnitsch/doc-summarizer/pkg/acquire"
	"github.com/dtnitsch/doc-summarizer/pkg/disclosure"
)

var (
	ErrNoFile        = errors.New("no file selected")
	ErrNoText        = errors.New("no extracted text to summarize")
	ErrBusy          = errors.New("a request is already in progress")
	ErrSuperseded    = errors.New("result discarded: a newer request was issued")
	ErrNotExpandable = errors.New("text fits in the preview")
)

// Extractor turns a file into text.
type Extractor interface {
	Extract(ctx context.Context, file *acquire.File) (string, error)
}

// Summarizer turns text into a summary of the requested length.
type Summarizer interface {
	Summarize(ctx context.Context, text string, length models.SummaryLength) (string, error)
}

type Controller struct {
	extractor  Extractor
	summarizer Summarizer
	logger     *slog.Logger

	// allowOverlap lets a trigger fire while another request is in flight.
	// Stale results are then dropped by sequence number.
	allowOverlap bool

	mu          sync.Mutex
	picker      acquire.Picker
	view        disclosure.View
	state       State
	inflight    int
	subscribers []func(State)
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithPreviewLimit(limit int) Option {
	return func(c *Controller) { c.view.Limit = limit }
}

func WithLength(length models.SummaryLength) Option {
	return func(c *Controller) {
		if length.Valid() {
			c.state.Length = length
		}
	}
}

// AllowOverlap keeps the upload and summarize triggers live while busy.
func AllowOverlap() Option {
	return func(c *Controller) { c.allowOverlap = true }
}

func NewController(extractor Extractor, summarizer Summarizer, opts ...Option) *Controller {
	c := &Controller{
		extractor:  extractor,
		summarizer: summarizer,
		logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		view:       disclosure.View{Limit: disclosure.DefaultLimit},
		state: State{
			Length: models.LengthMedium,
			Status: models.StatusIdle,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.view.Limit <= 0 {
		c.view.Limit = disclosure.DefaultLimit
	}
	c.state.PreviewLimit = c.view.Limit
	return c
}

// Subscribe registers fn to receive a snapshot after every transition.
// fn runs on the goroutine that caused the transition and must not block.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Expanded = c.view.Expanded
	return s
}

// commitLocked bumps the version and returns the snapshot to publish.
func (c *Controller) commitLocked() (State, []func(State)) {
	c.state.Version++
	subs := make([]func(State), len(c.subscribers))
	copy(subs, c.subscribers)
	return c.snapshotLocked(), subs
}

func publish(s State, subs []func(State)) {
	for _, fn := range subs {
		fn(s)
	}
}

// Select replaces the pending file. A nil file changes nothing.
func (c *Controller) Select(file *acquire.File) State {
	c.mu.Lock()
	if !c.picker.Select(file) {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s
	}
	c.state.PendingFile = file.Name
	s, subs := c.commitLocked()
	c.mu.Unlock()

	c.logger.Info("file selected", "file", file.Name, "size_bytes", file.Size(), "content_type", file.ContentType)
	publish(s, subs)
	return s
}

// SetLength changes the summary length preference. Extracted text and the
// summary are unaffected.
func (c *Controller) SetLength(length models.SummaryLength) (State, error) {
	if !length.Valid() {
		return c.Snapshot(), fmt.Errorf("%w: got %q", models.ErrInvalidLength, length)
	}
	c.mu.Lock()
	c.state.Length = length
	s, subs := c.commitLocked()
	c.mu.Unlock()

	publish(s, subs)
	return s, nil
}

func (c *Controller) beginLocked() {
	c.inflight++
	c.state.Status = models.StatusBusy
}

func (c *Controller) endLocked() {
	c.inflight--
	if c.inflight <= 0 {
		c.inflight = 0
		c.state.Status = models.StatusIdle
	}
}

// Upload sends the pending file for extraction and blocks until the result
// is applied. The extracted text is cleared as soon as the upload starts.
// On success the text is set, the error cleared and the view reset to the
// preview; on failure the error is set and the text stays empty. The summary
// is left as it was either way.
//
// The returned error reports only why the trigger was refused or its result
// discarded. Extraction failures are recorded in State.Failure.
func (c *Controller) Upload(ctx context.Context) (State, error) {
	c.mu.Lock()
	file := c.picker.Pending()
	if file == nil {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrNoFile
	}
	if c.inflight > 0 && !c.allowOverlap {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrBusy
	}
	c.state.ExtractSeq++
	seq := c.state.ExtractSeq
	c.beginLocked()
	c.state.Text = ""
	c.view.Reset()
	s, subs := c.commitLocked()
	c.mu.Unlock()

	c.logger.Info("extraction started", "file", file.Name, "seq", seq)
	publish(s, subs)

	text, err := c.extractor.Extract(ctx, file)

	c.mu.Lock()
	c.endLocked()
	if seq != c.state.ExtractSeq {
		s, subs := c.commitLocked()
		c.mu.Unlock()
		c.logger.Warn("discarding stale extraction result", "seq", seq, "latest_seq", s.ExtractSeq)
		publish(s, subs)
		return s, ErrSuperseded
	}
	if err != nil {
		c.state.Failure = models.NewFailure(models.PhaseExtraction, err)
		c.state.Text = ""
	} else {
		c.state.Failure = nil
		c.state.Text = text
		c.view.Reset()
	}
	s, subs = c.commitLocked()
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("extraction failed", "file", file.Name, "seq", seq, "kind", s.Failure.Kind, "error", err)
	} else {
		c.logger.Info("extraction complete", "file", file.Name, "seq", seq, "chars", len(text))
	}
	publish(s, subs)
	return s, nil
}

// Summarize sends the current text with the length preference and blocks
// until the result is applied. On success the summary is replaced and the
// error cleared; on failure the error is set and the previous summary kept.
func (c *Controller) Summarize(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.state.Text == "" {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrNoText
	}
	if c.inflight > 0 && !c.allowOverlap {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrBusy
	}
	c.state.SummarizeSeq++
	seq := c.state.SummarizeSeq
	text, length := c.state.Text, c.state.Length
	c.beginLocked()
	s, subs := c.commitLocked()
	c.mu.Unlock()

	c.logger.Info("summarization started", "length", length, "chars", len(text), "seq", seq)
	publish(s, subs)

	summary, err := c.summarizer.Summarize(ctx, text, length)

	c.mu.Lock()
	c.endLocked()
	if seq != c.state.SummarizeSeq {
		s, subs := c.commitLocked()
		c.mu.Unlock()
		c.logger.Warn("discarding stale summary", "seq", seq, "latest_seq", s.SummarizeSeq)
		publish(s, subs)
		return s, ErrSuperseded
	}
	if err != nil {
		c.state.Failure = models.NewFailure(models.PhaseSummarization, err)
	} else {
		c.state.Failure = nil
		c.state.Summary = summary
	}
	s, subs = c.commitLocked()
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("summarization failed", "seq", seq, "error", err)
	} else {
		c.logger.Info("summarization complete", "seq", seq, "chars", len(summary))
	}
	publish(s, subs)
	return s, nil
}

// Expand shows the full text. It is only offered when the text is longer
// than the preview limit.
func (c *Controller) Expand() (State, error) {
	return c.updateView((*disclosure.View).Expand)
}

func (c *Controller) Collapse() (State, error) {
	return c.updateView((*disclosure.View).Collapse)
}

func (c *Controller) Toggle() (State, error) {
	return c.updateView((*disclosure.View).Toggle)
}

func (c *Controller) updateView(fn func(*disclosure.View)) (State, error) {
	c.mu.Lock()
	if !c.view.CanToggle(c.state.Text) {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrNotExpandable
	}
	fn(&c.view)
	s, subs := c.commitLocked()
	c.mu.Unlock()

	publish(s, subs)
	return s, nil
}
