package diff

import "strings"

// cursor walks the input lines once, front to back. Splitting on "\n"
// leaves a trailing "" element when the input ends with a newline; last()
// lets the parser tell that sentinel apart from a real empty line.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(input string) *cursor {
	return &cursor{lines: strings.Split(input, "\n")}
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.lines)
}

func (c *cursor) peek() string {
	return c.lines[c.pos]
}

func (c *cursor) advance() {
	c.pos++
}

// last reports whether the cursor is on the final element of the input.
func (c *cursor) last() bool {
	return c.pos == len(c.lines)-1
}
