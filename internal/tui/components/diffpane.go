package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/interpretive-systems/diffscope/internal/diff"
	"github.com/interpretive-systems/diffscope/internal/render"
	"github.com/interpretive-systems/diffscope/internal/theme"
)

// DiffPane manages the right pane: the rendered diff inside a viewport,
// plus expansion state and the hunk cursor.
type DiffPane struct {
	viewport   viewport.Model
	files      []diff.File
	rows       []render.Row
	exp        *render.Expansion
	curTheme   theme.Theme
	highlight  *render.Highlighter
	syntax     bool
	sideBySide bool
	wrapLines  bool
	xOffset    int
	hunkCursor int
	loaded     bool
	content    []string
	starts     []int
}

// NewDiffPane creates a diff pane with side-by-side rendering on.
func NewDiffPane(defaultTheme theme.Theme) *DiffPane {
	return &DiffPane{
		curTheme:   defaultTheme,
		exp:        render.NewExpansion(),
		highlight:  render.NewHighlighter(defaultTheme.SyntaxStyle),
		sideBySide: true,
		hunkCursor: -1,
	}
}

// SetFiles replaces the parsed files. Expansion toggles are keyed by
// path, so they survive the refresh.
func (d *DiffPane) SetFiles(files []diff.File) {
	d.files = files
	d.loaded = true
	if hunks := d.hunkRowIndexes(); d.hunkCursor >= len(hunks) {
		d.hunkCursor = -1
	}
	d.Refresh()
}

// Files returns the parsed files backing the pane.
func (d *DiffPane) Files() []diff.File {
	return d.files
}

// SetTheme switches colors and the syntax style.
func (d *DiffPane) SetTheme(t theme.Theme) {
	d.curTheme = t
	d.highlight = render.NewHighlighter(t.SyntaxStyle)
	d.Refresh()
}

// SetSize updates the viewport dimensions.
func (d *DiffPane) SetSize(width, height int) {
	d.viewport.Width = width
	d.viewport.Height = height
	d.Refresh()
}

func (d *DiffPane) GetSideBySide() bool {
	return d.sideBySide
}

// SetSideBySide sets the display mode.
func (d *DiffPane) SetSideBySide(sideBySide bool) {
	d.sideBySide = sideBySide
	d.Refresh()
}

func (d *DiffPane) GetWrap() bool {
	return d.wrapLines
}

// SetWrap sets line wrapping. Wrapping resets horizontal scroll.
func (d *DiffPane) SetWrap(wrap bool) {
	d.wrapLines = wrap
	if wrap {
		d.xOffset = 0
	}
	d.Refresh()
}

func (d *DiffPane) GetSyntax() bool {
	return d.syntax
}

// SetSyntax toggles syntax highlighting of context lines.
func (d *DiffPane) SetSyntax(on bool) {
	d.syntax = on
	d.Refresh()
}

// XOffset returns the current horizontal offset.
func (d *DiffPane) XOffset() int {
	return d.xOffset
}

// ScrollLeft scrolls left by delta.
func (d *DiffPane) ScrollLeft(delta int) {
	if d.wrapLines {
		return
	}
	d.xOffset -= delta
	if d.xOffset < 0 {
		d.xOffset = 0
	}
	d.Refresh()
}

// ScrollRight scrolls right by delta.
func (d *DiffPane) ScrollRight(delta int) {
	if d.wrapLines {
		return
	}
	d.xOffset += delta
	d.Refresh()
}

// ScrollHome resets horizontal scroll.
func (d *DiffPane) ScrollHome() {
	d.xOffset = 0
	d.Refresh()
}

// ToggleFile flips one file between collapsed and expanded.
func (d *DiffPane) ToggleFile(fi int) {
	if fi < 0 || fi >= len(d.files) {
		return
	}
	d.exp.ToggleFile(d.files[fi])
	d.Refresh()
}

// ExpandAll expands every file and hunk.
func (d *DiffPane) ExpandAll() {
	d.exp.SetAll(d.files, true)
	d.Refresh()
}

// CollapseAll collapses every file and hunk.
func (d *DiffPane) CollapseAll() {
	d.exp.SetAll(d.files, false)
	d.Refresh()
}

// NextHunk moves the hunk cursor forward and scrolls to it.
func (d *DiffPane) NextHunk() {
	d.moveHunkCursor(1)
}

// PrevHunk moves the hunk cursor back and scrolls to it.
func (d *DiffPane) PrevHunk() {
	d.moveHunkCursor(-1)
}

func (d *DiffPane) moveHunkCursor(delta int) {
	hunks := d.hunkRowIndexes()
	if len(hunks) == 0 {
		d.hunkCursor = -1
		return
	}
	next := d.hunkCursor + delta
	if d.hunkCursor < 0 && delta > 0 {
		next = 0
	}
	if next < 0 {
		next = 0
	}
	if next >= len(hunks) {
		next = len(hunks) - 1
	}
	d.hunkCursor = next
	d.Refresh()
	d.scrollToLine(d.starts[hunks[next]])
}

// ToggleCurrentHunk flips the hunk under the cursor.
func (d *DiffPane) ToggleCurrentHunk() {
	hunks := d.hunkRowIndexes()
	if d.hunkCursor < 0 || d.hunkCursor >= len(hunks) {
		return
	}
	row := d.rows[hunks[d.hunkCursor]]
	d.exp.ToggleHunk(d.files[row.File], row.Hunk)
	d.Refresh()
}

// ScrollToFile aligns the viewport with a file's header row.
func (d *DiffPane) ScrollToFile(fi int) {
	for i, r := range d.rows {
		if r.Kind == render.RowFile && r.File == fi {
			d.scrollToLine(d.starts[i])
			return
		}
	}
}

func (d *DiffPane) scrollToLine(line int) {
	if line < d.viewport.YOffset || line >= d.viewport.YOffset+d.viewport.Height {
		d.viewport.SetYOffset(line)
	}
}

func (d *DiffPane) hunkRowIndexes() []int {
	var idx []int
	for i, r := range d.rows {
		if r.Kind == render.RowHunk {
			idx = append(idx, i)
		}
	}
	return idx
}

// Refresh re-renders the content and pushes it into the viewport,
// keeping the scroll position.
func (d *DiffPane) Refresh() {
	width := d.viewport.Width
	if width <= 0 {
		width = 80
	}
	switch {
	case !d.loaded:
		d.rows = nil
		d.starts = nil
		d.content = []string{"Loading diff…"}
	case len(d.files) == 0:
		d.rows = nil
		d.starts = nil
		d.content = []string{"No changes detected"}
	default:
		d.rows = render.Rows(d.files, d.exp)
		r := render.Renderer{
			Theme:   d.curTheme,
			Wrap:    d.wrapLines,
			XOffset: d.xOffset,
		}
		if d.syntax {
			r.Highlight = d.highlight
		}
		if d.sideBySide {
			d.content, d.starts = r.SideBySide(d.files, d.rows, width)
		} else {
			d.content, d.starts = r.Inline(d.files, d.rows, width)
		}
		d.markHunkCursor()
	}
	y := d.viewport.YOffset
	d.viewport.SetContent(strings.Join(d.content, "\n"))
	d.viewport.SetYOffset(y)
}

func (d *DiffPane) markHunkCursor() {
	hunks := d.hunkRowIndexes()
	if d.hunkCursor < 0 || d.hunkCursor >= len(hunks) {
		return
	}
	line := d.starts[hunks[d.hunkCursor]]
	if line >= 0 && line < len(d.content) {
		d.content[line] = "»" + strings.TrimPrefix(d.content[line], " ")
	}
}

// Content returns the rendered lines backing the viewport.
func (d *DiffPane) Content() []string {
	return d.content
}

// SetContent overrides the viewport content, e.g. with search
// highlights layered on top of the rendered lines.
func (d *DiffPane) SetContent(lines []string) {
	y := d.viewport.YOffset
	d.viewport.SetContent(strings.Join(lines, "\n"))
	d.viewport.SetYOffset(y)
}

// View returns the viewport view.
func (d *DiffPane) View() string {
	return d.viewport.View()
}

// Viewport returns the underlying viewport for direct manipulation.
func (d *DiffPane) Viewport() *viewport.Model {
	return &d.viewport
}
