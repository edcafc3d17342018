package models

import "errors"

// Transport and content errors shared by the remote clients and the workflow.
// Clients wrap these; the workflow classifies with errors.Is.
var (
	ErrTransport         = errors.New("transport failure")
	ErrUnsupportedFormat = errors.New("no text could be extracted from the file")
	ErrPrecondition      = errors.New("precondition not met")
)

// Status is the workflow's activity state. An error is an overlay on Idle,
// not a status of its own.
type Status string

const (
	StatusIdle Status = "idle"
	StatusBusy Status = "busy"
)

// Phase is one of the two sequential remote-call stages.
type Phase string

const (
	PhaseExtraction    Phase = "extraction"
	PhaseSummarization Phase = "summarization"
)

type FailureKind string

const (
	FailureTransport         FailureKind = "transport"
	FailureUnsupportedFormat FailureKind = "unsupported_format"
	// FailureSummarizationContent is reserved; summarization content failures
	// are currently reported as FailureTransport.
	FailureSummarizationContent FailureKind = "summarization_content"
)

const (
	MessageUnsupportedFormat   = "❌ Could not extract text from this file type. Please upload PDF, DOC, or TXT."
	MessageUploadFailed        = "❌ Upload failed. Please try again."
	MessageSummarizationFailed = "❌ Summarization failed. Please try again."
)

// Failure is the single error slot shown to the user.
type Failure struct {
	Phase Phase       `json:"phase" yaml:"phase"`
	Kind  FailureKind `json:"kind" yaml:"kind"`
}

// NewFailure classifies err for the given phase.
func NewFailure(phase Phase, err error) *Failure {
	kind := FailureTransport
	if phase == PhaseExtraction && errors.Is(err, ErrUnsupportedFormat) {
		kind = FailureUnsupportedFormat
	}
	return &Failure{Phase: phase, Kind: kind}
}

// Message renders the fixed user-facing text for the failure.
func (f *Failure) Message() string {
	if f == nil {
		return ""
	}
	if f.Phase == PhaseSummarization {
		return MessageSummarizationFailed
	}
	if f.Kind == FailureUnsupportedFormat {
		return MessageUnsupportedFormat
	}
	return MessageUploadFailed
}
