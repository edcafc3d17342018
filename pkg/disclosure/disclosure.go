// Package disclosure derives the bounded preview of extracted text and tracks
// whether the full text is shown.
package disclosure

import "unicode/utf8"

const (
	DefaultLimit = 300
	Ellipsis     = "..."
)

// Preview returns the first limit characters of text followed by Ellipsis when
// text is longer than limit, and text unchanged otherwise. Characters are
// counted as runes. A non-positive limit means DefaultLimit.
func Preview(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + Ellipsis
		}
		n++
	}
	return text
}

// View is the preview/full toggle. It holds no copy of the text; Render
// recomputes from whatever text it is given.
type View struct {
	Limit    int
	Expanded bool
}

func (v View) limit() int {
	if v.Limit <= 0 {
		return DefaultLimit
	}
	return v.Limit
}

func (v View) Render(text string) string {
	if v.Expanded {
		return text
	}
	return Preview(text, v.limit())
}

// CanToggle reports whether the expand/collapse control is offered for text.
func (v View) CanToggle(text string) bool {
	return utf8.RuneCountInString(text) > v.limit()
}

// Truncated reports whether Render(text) hides part of text.
func (v View) Truncated(text string) bool {
	return !v.Expanded && v.CanToggle(text)
}

func (v View) ToggleLabel() string {
	if v.Expanded {
		return "Show Less"
	}
	return "Show More"
}

func (v *View) Expand()   { v.Expanded = true }
func (v *View) Collapse() { v.Expanded = false }
func (v *View) Toggle()   { v.Expanded = !v.Expanded }

// Reset returns to the preview, as happens whenever new text arrives.
func (v *View) Reset() { v.Expanded = false }
