package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/diffscope/internal/diff"
	"github.com/interpretive-systems/diffscope/internal/theme"
	tuiansi "github.com/interpretive-systems/diffscope/internal/tui/ansi"
)

// Renderer turns rows into styled terminal lines. Wrap and XOffset are
// mutually exclusive; the caller resets the offset when wrapping.
type Renderer struct {
	Theme     theme.Theme
	Wrap      bool
	XOffset   int
	Highlight *Highlighter
}

// StatusLabel returns the single-letter badge for a file status.
func StatusLabel(s diff.Status) string {
	switch s {
	case diff.StatusAdded:
		return "A"
	case diff.StatusDeleted:
		return "D"
	case diff.StatusRenamed:
		return "R"
	case diff.StatusCopied:
		return "C"
	default:
		return "M"
	}
}

// DisplayPath returns the path to show for a file, both sides for
// renames and copies.
func DisplayPath(f diff.File) string {
	if (f.Status == diff.StatusRenamed || f.Status == diff.StatusCopied) && f.OldPath != f.NewPath {
		return f.OldPath + " → " + f.NewPath
	}
	return f.Path()
}

// Inline renders rows as a single column. It returns the lines plus,
// for each row, the index of its first line; replace rows and wrapped
// lines produce more than one.
func (r Renderer) Inline(files []diff.File, rows []Row, width int) (lines []string, starts []int) {
	for _, row := range rows {
		starts = append(starts, len(lines))
		switch row.Kind {
		case RowFile:
			lines = append(lines, tuiansi.TruncateToWidth(r.fileRow(files, row), width))
		case RowBinary:
			lines = append(lines, r.binaryRow())
		case RowHunk:
			lines = append(lines, tuiansi.TruncateToWidth(r.hunkRow(files, row), width))
		case RowContext:
			base := "  " + r.contextSpan(files, row)
			lines = r.appendInline(lines, base, width)
		case RowAdd:
			base := r.Theme.AddText("+ ") + r.addSpan(row.Right)
			lines = r.appendInline(lines, base, width)
		case RowDel:
			base := r.Theme.DelText("- ") + r.delSpan(row.Left)
			lines = r.appendInline(lines, base, width)
		case RowReplace:
			del := r.Theme.DelText("- ") + r.delSpan(row.Left)
			add := r.Theme.AddText("+ ") + r.addSpan(row.Right)
			lines = r.appendInline(lines, del, width)
			lines = r.appendInline(lines, add, width)
		}
	}
	return lines, starts
}

func (r Renderer) appendInline(lines []string, base string, width int) []string {
	if r.Wrap {
		return append(lines, tuiansi.WrapLine(base, width)...)
	}
	if r.XOffset > 0 {
		base = tuiansi.SliceHorizontal(base, r.XOffset, width)
		base = tuiansi.PadExact(base, width)
	}
	return append(lines, base)
}

// SideBySide renders rows as two columns split by a divider. Header
// rows span the full width.
func (r Renderer) SideBySide(files []diff.File, rows []Row, width int) (lines []string, starts []int) {
	colW := (width - 1) / 2
	if colW < 10 {
		colW = 10
	}
	mid := r.Theme.DividerText("│")
	for _, row := range rows {
		starts = append(starts, len(lines))
		switch row.Kind {
		case RowFile:
			lines = append(lines, tuiansi.TruncateToWidth(r.fileRow(files, row), width))
		case RowBinary:
			lines = append(lines, r.binaryRow())
		case RowHunk:
			lines = append(lines, tuiansi.TruncateToWidth(r.hunkRow(files, row), width))
		default:
			if r.Wrap {
				left := r.sideCellWrap(files, row, false, colW)
				right := r.sideCellWrap(files, row, true, colW)
				n := len(left)
				if len(right) > n {
					n = len(right)
				}
				blank := strings.Repeat(" ", colW)
				for i := 0; i < n; i++ {
					l, rr := blank, blank
					if i < len(left) {
						l = left[i]
					}
					if i < len(right) {
						rr = right[i]
					}
					lines = append(lines, l+mid+rr)
				}
				continue
			}
			l := tuiansi.PadExact(r.sideCell(files, row, false, colW), colW)
			rr := tuiansi.PadExact(r.sideCell(files, row, true, colW), colW)
			lines = append(lines, l+mid+rr)
		}
	}
	return lines, starts
}

func (r Renderer) fileRow(files []diff.File, row Row) string {
	f := files[row.File]
	marker := "▸"
	if row.Expanded {
		marker = "▾"
	}
	head := r.Theme.MetaText(marker + " " + DisplayPath(f) + " (" + StatusLabel(f.Status) + ")")
	if f.Binary {
		return head
	}
	add, del := f.Counts()
	if add > 0 {
		head += " " + r.Theme.AddText("+"+strconv.Itoa(add))
	}
	if del > 0 {
		head += " " + r.Theme.DelText("-"+strconv.Itoa(del))
	}
	return head
}

func (r Renderer) binaryRow() string {
	return lipgloss.NewStyle().Faint(true).Render("  (binary file; no text diff)")
}

func (r Renderer) hunkRow(files []diff.File, row Row) string {
	h := files[row.File].Hunks[row.Hunk]
	marker := "▸"
	if row.Expanded {
		marker = "▾"
	}
	return "  " + r.Theme.MetaText(marker+" "+h.Header)
}

// contextSpan colors a context line with syntax highlighting when a
// highlighter is set.
func (r Renderer) contextSpan(files []diff.File, row Row) string {
	content := row.Left.Content
	if r.Highlight == nil {
		return content
	}
	return r.Highlight.Line(files[row.File].Path(), content)
}

func (r Renderer) addSpan(ch *diff.Change) string {
	if len(ch.WordDiff) == 0 {
		return r.Theme.AddText(ch.Content)
	}
	var sb strings.Builder
	for _, tok := range ch.WordDiff {
		if tok.Kind == diff.TokenAdd {
			sb.WriteString(r.Theme.AddWord(tok.Value))
		} else {
			sb.WriteString(r.Theme.AddText(tok.Value))
		}
	}
	return sb.String()
}

func (r Renderer) delSpan(ch *diff.Change) string {
	if len(ch.WordDiff) == 0 {
		return r.Theme.DelText(ch.Content)
	}
	var sb strings.Builder
	for _, tok := range ch.WordDiff {
		if tok.Kind == diff.TokenDelete {
			sb.WriteString(r.Theme.DelWord(tok.Value))
		} else {
			sb.WriteString(r.Theme.DelText(tok.Value))
		}
	}
	return sb.String()
}

func (r Renderer) sideSpan(files []diff.File, row Row, right bool) (marker, content string) {
	if right {
		switch row.Kind {
		case RowContext:
			return " ", r.contextSpan(files, row)
		case RowAdd, RowReplace:
			return r.Theme.AddText("+"), r.addSpan(row.Right)
		default:
			return " ", ""
		}
	}
	switch row.Kind {
	case RowContext:
		return " ", r.contextSpan(files, row)
	case RowDel, RowReplace:
		return r.Theme.DelText("-"), r.delSpan(row.Left)
	default:
		return " ", ""
	}
}

func (r Renderer) sideCell(files []diff.File, row Row, right bool, width int) string {
	marker, content := r.sideSpan(files, row, right)
	if width <= 2 {
		return tuiansi.ClipToWidth(marker+" ", width)
	}
	bodyW := width - 2
	clipped := tuiansi.SliceHorizontal(content, r.XOffset, bodyW)
	return marker + " " + clipped
}

func (r Renderer) sideCellWrap(files []diff.File, row Row, right bool, width int) []string {
	marker, content := r.sideSpan(files, row, right)
	if width <= 2 {
		return []string{tuiansi.ClipToWidth(marker+" ", width)}
	}
	bodyW := width - 2
	wrapped := tuiansi.WrapLine(content, bodyW)
	out := make([]string, 0, len(wrapped))
	for _, p := range wrapped {
		out = append(out, marker+" "+tuiansi.PadExact(p, bodyW))
	}
	if len(out) == 0 {
		out = append(out, marker+" "+strings.Repeat(" ", bodyW))
	}
	return out
}
