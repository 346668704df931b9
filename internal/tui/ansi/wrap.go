package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// WrapLine hard-wraps one line to the given width.
func WrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	return strings.Split(ansi.Hardwrap(s, width, false), "\n")
}
