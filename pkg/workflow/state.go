package workflow

import (
	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/dtnitsch/doc-summarizer/pkg/disclosure"
)

// State is an immutable snapshot of everything the controller owns.
type State struct {
	// Version increases with every transition, so subscribers can drop
	// snapshots that arrive out of order.
	Version uint64 `json:"-" yaml:"-"`

	PendingFile  string               `json:"pending_file,omitempty" yaml:"pending_file,omitempty"`
	Text         string               `json:"text" yaml:"text"`
	Summary      string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	Length       models.SummaryLength `json:"length" yaml:"length"`
	Status       models.Status        `json:"status" yaml:"status"`
	Failure      *models.Failure      `json:"failure,omitempty" yaml:"failure,omitempty"`
	Expanded     bool                 `json:"expanded" yaml:"expanded"`
	PreviewLimit int                  `json:"preview_limit" yaml:"preview_limit"`

	// Latest request sequence number issued per phase.
	ExtractSeq   uint64 `json:"-" yaml:"-"`
	SummarizeSeq uint64 `json:"-" yaml:"-"`
}

func (s State) Busy() bool {
	return s.Status == models.StatusBusy
}

// ErrorMessage is the single error line to show, or "".
func (s State) ErrorMessage() string {
	return s.Failure.Message()
}

// CanSummarize mirrors the "Generate Summary" control: offered only when
// extracted text exists and nothing is in flight.
func (s State) CanSummarize() bool {
	return s.Text != "" && !s.Busy()
}

func (s State) view() disclosure.View {
	return disclosure.View{Limit: s.PreviewLimit, Expanded: s.Expanded}
}

// Display is the extracted text as currently disclosed.
func (s State) Display() string {
	return s.view().Render(s.Text)
}

// CanToggle reports whether the Show More / Show Less control is offered.
func (s State) CanToggle() bool {
	return s.view().CanToggle(s.Text)
}

func (s State) ToggleLabel() string {
	return s.view().ToggleLabel()
}

func (s State) Truncated() bool {
	return s.view().Truncated(s.Text)
}
