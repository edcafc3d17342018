package disclosure

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	long := strings.Repeat("abcdefghij", 40) // 400 chars

	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "empty", text: "", limit: 300, want: ""},
		{name: "short text unchanged", text: "Hello world", limit: 300, want: "Hello world"},
		{name: "exactly at limit unchanged", text: long[:300], limit: 300, want: long[:300]},
		{name: "one over limit", text: long[:301], limit: 300, want: long[:300] + "..."},
		{name: "long text", text: long, limit: 300, want: long[:300] + "..."},
		{name: "zero limit uses default", text: long, limit: 0, want: long[:DefaultLimit] + "..."},
		{name: "custom limit", text: "abcdef", limit: 3, want: "abc..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.text, tt.limit))
		})
	}
}

func TestPreviewLengthOverLimit(t *testing.T) {
	for _, n := range []int{301, 302, 500, 4000} {
		text := strings.Repeat("x", n)
		got := Preview(text, 300)
		assert.Len(t, got, 303, "%d chars", n)
		assert.Equal(t, text[:300]+"...", got, "%d chars", n)
	}
}

func TestPreviewCountsRunes(t *testing.T) {
	got := Preview(strings.Repeat("é", 301), 300)
	assert.Equal(t, 303, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got), "split a multi-byte character")

	short := strings.Repeat("é", 300)
	assert.Equal(t, short, Preview(short, 300), "300 two-byte runes fit the limit")
}

func TestViewToggleRoundTrip(t *testing.T) {
	text := strings.Repeat("lorem ipsum ", 50)
	var v View
	before := v.Render(text)

	v.Expand()
	assert.Equal(t, text, v.Render(text))
	assert.Equal(t, "Show Less", v.ToggleLabel())

	v.Collapse()
	assert.Equal(t, before, v.Render(text), "expand then collapse restores the preview")

	v.Toggle()
	assert.True(t, v.Expanded)
	v.Reset()
	assert.False(t, v.Expanded)
	assert.Equal(t, "Show More", v.ToggleLabel())
}

func TestViewCanToggle(t *testing.T) {
	v := View{}
	assert.False(t, v.CanToggle(""))
	assert.False(t, v.CanToggle(strings.Repeat("a", 300)))
	assert.True(t, v.CanToggle(strings.Repeat("a", 301)))
	assert.True(t, v.Truncated(strings.Repeat("a", 301)))

	v.Expand()
	assert.False(t, v.Truncated(strings.Repeat("a", 301)))
}
