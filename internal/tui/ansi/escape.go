package ansi

import "github.com/charmbracelet/x/ansi"

// ConsumeEscape returns the index just past the escape sequence that
// starts at i. When s[i] does not start one, it advances one byte.
func ConsumeEscape(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	if s[i] != 0x1b {
		return i + 1
	}
	j := i + 1
	if j >= len(s) {
		return j
	}
	switch s[j] {
	case '[': // CSI ends at a final byte in @-~
		for j++; j < len(s); j++ {
			if c := s[j]; c >= 0x40 && c <= 0x7e {
				return j + 1
			}
		}
	case ']': // OSC runs to BEL
		for j++; j < len(s); j++ {
			if s[j] == 0x07 {
				return j + 1
			}
		}
	case 'P', 'X', '^', '_': // DCS, SOS, PM, APC run to the next ESC
		for j++; j < len(s); j++ {
			if s[j] == 0x1b {
				return j + 1
			}
		}
	default:
		return j + 1
	}
	return len(s)
}

// Strip removes all escape sequences from the string.
func Strip(s string) string {
	return ansi.Strip(s)
}

// VisualWidth returns the number of terminal cells the string occupies.
func VisualWidth(s string) int {
	return ansi.StringWidth(s)
}
