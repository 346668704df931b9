package diff

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fileHeaderRe = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(.*)$`)
)

// Parse reads a unified diff and returns one File per per-file section.
// It never fails: lines it does not understand are skipped, malformed
// hunk headers drop the hunk, and unparseable input yields an empty
// slice. expandAll sets the initial expanded state on every file and
// hunk.
func Parse(input string, expandAll bool) []File {
	var files []File
	c := newCursor(input)
	for !c.atEnd() {
		if fileHeaderRe.MatchString(c.peek()) {
			files = append(files, parseFile(c, expandAll))
			continue
		}
		c.advance()
	}
	return files
}

// parseFile consumes one file section starting at its "diff --git" line.
// It returns with the cursor on the next file header or at end of input.
func parseFile(c *cursor, expandAll bool) File {
	m := fileHeaderRe.FindStringSubmatch(c.peek())
	c.advance()

	f := File{
		OldPath:  m[1],
		NewPath:  m[2],
		Status:   StatusModified,
		Expanded: expandAll,
	}

	// Metadata lines between the header and the first hunk. The first
	// status marker wins; everything unrecognized is skipped.
	statusSet := false
	for !c.atEnd() {
		line := c.peek()
		switch {
		case fileHeaderRe.MatchString(line):
			return f
		case strings.HasPrefix(line, "@@"):
			// Fall through to the hunk loop.
		case strings.HasPrefix(line, "new file mode"):
			if !statusSet {
				f.Status = StatusAdded
				statusSet = true
			}
			c.advance()
			continue
		case strings.HasPrefix(line, "deleted file mode"):
			if !statusSet {
				f.Status = StatusDeleted
				statusSet = true
			}
			c.advance()
			continue
		case strings.HasPrefix(line, "rename from"):
			if !statusSet {
				f.Status = StatusRenamed
				statusSet = true
			}
			c.advance()
			continue
		case strings.HasPrefix(line, "copy from"):
			if !statusSet {
				f.Status = StatusCopied
				statusSet = true
			}
			c.advance()
			continue
		case strings.HasPrefix(line, "Binary files"):
			f.Binary = true
			c.advance()
			return f
		default:
			// index, ---, +++, similarity index, rename to, copy
			// to, mode changes, anything else.
			c.advance()
			continue
		}
		break
	}

	for !c.atEnd() {
		line := c.peek()
		if fileHeaderRe.MatchString(line) {
			break
		}
		if strings.HasPrefix(line, "@@") {
			if h, ok := parseHunk(c, expandAll); ok {
				f.Hunks = append(f.Hunks, h)
			}
			continue
		}
		// Stray line between hunks; skip it.
		c.advance()
	}
	return f
}

// parseHunk consumes one hunk starting at its @@ line. A header the
// pattern does not match drops the whole hunk. It returns with the
// cursor on the first line it did not consume.
func parseHunk(c *cursor, expandAll bool) (Hunk, bool) {
	header := c.peek()
	c.advance()

	m := hunkHeaderRe.FindStringSubmatch(header)
	if m == nil {
		return Hunk{}, false
	}

	h := Hunk{
		Header:   header,
		Section:  strings.TrimPrefix(m[5], " "),
		OldStart: atoiDefault(m[1], 0),
		OldLines: atoiDefault(m[2], 1),
		NewStart: atoiDefault(m[3], 0),
		NewLines: atoiDefault(m[4], 1),
		Expanded: expandAll,
	}

	oldLine := h.OldStart
	newLine := h.NewStart
	for !c.atEnd() {
		line := c.peek()
		if strings.HasPrefix(line, "@@") || fileHeaderRe.MatchString(line) {
			break
		}
		if line == "" {
			if c.last() {
				break
			}
			// An empty line inside a diff body is a context line
			// whose content is empty.
			h.Changes = append(h.Changes, Change{
				Kind:    KindNormal,
				OldLine: oldLine,
				NewLine: newLine,
			})
			oldLine++
			newLine++
			c.advance()
			continue
		}
		switch line[0] {
		case '+':
			h.Changes = append(h.Changes, Change{
				Kind:    KindAdd,
				Content: line[1:],
				NewLine: newLine,
			})
			newLine++
		case '-':
			h.Changes = append(h.Changes, Change{
				Kind:    KindDelete,
				Content: line[1:],
				OldLine: oldLine,
			})
			oldLine++
		case ' ':
			h.Changes = append(h.Changes, Change{
				Kind:    KindNormal,
				Content: line[1:],
				OldLine: oldLine,
				NewLine: newLine,
			})
			oldLine++
			newLine++
		case '\\':
			// "\ No newline at end of file"; no counter moves.
		default:
			// Not a change line. The hunk ends here; the outer
			// loop decides what the line is.
			return h, true
		}
		c.advance()
	}
	return h, true
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
