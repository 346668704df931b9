package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SliceHorizontal cuts the window [start, start+width) in visual
// columns, keeping styling intact.
func SliceHorizontal(s string, start, width int) string {
	if start <= 0 {
		return ansi.Truncate(s, width, "")
	}
	head := ansi.Truncate(s, start+width, "")
	return ansi.TruncateLeft(head, start, "")
}

// ClipToWidth truncates to at most w columns without an ellipsis.
func ClipToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "")
}

// TruncateToWidth truncates to width, marking the cut with an ellipsis.
func TruncateToWidth(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// PadExact pads with spaces to exactly w columns.
func PadExact(s string, w int) string {
	if d := w - VisualWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
