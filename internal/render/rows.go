package render

import (
	"strconv"

	"github.com/interpretive-systems/diffscope/internal/diff"
)

// RowKind labels one visual row of a rendered diff.
type RowKind int

const (
	RowFile RowKind = iota
	RowBinary
	RowHunk
	RowContext
	RowAdd
	RowDel
	RowReplace
)

// Row is one structural row. File and Hunk index into the parsed files;
// Left and Right point at the underlying changes. A context row carries
// the same change on both sides, a replace row a delete on the left and
// an add on the right.
type Row struct {
	Kind     RowKind
	File     int
	Hunk     int
	Left     *diff.Change
	Right    *diff.Change
	Expanded bool
}

// Expansion overlays user toggles on top of the parsed expanded state.
// Keys are file paths so toggles survive a refresh.
type Expansion struct {
	files map[string]bool
	hunks map[string]bool
}

func NewExpansion() *Expansion {
	return &Expansion{
		files: map[string]bool{},
		hunks: map[string]bool{},
	}
}

func hunkKey(f diff.File, hi int) string {
	return f.Path() + "#" + strconv.Itoa(hi)
}

// FileExpanded reports the effective expanded state of a file.
func (e *Expansion) FileExpanded(f diff.File) bool {
	if v, ok := e.files[f.Path()]; ok {
		return v
	}
	return f.Expanded
}

// ToggleFile flips a file's expanded state.
func (e *Expansion) ToggleFile(f diff.File) {
	e.files[f.Path()] = !e.FileExpanded(f)
}

// HunkExpanded reports the effective expanded state of one hunk.
func (e *Expansion) HunkExpanded(f diff.File, hi int) bool {
	if v, ok := e.hunks[hunkKey(f, hi)]; ok {
		return v
	}
	if hi < len(f.Hunks) {
		return f.Hunks[hi].Expanded
	}
	return false
}

// ToggleHunk flips one hunk's expanded state.
func (e *Expansion) ToggleHunk(f diff.File, hi int) {
	e.hunks[hunkKey(f, hi)] = !e.HunkExpanded(f, hi)
}

// SetAll forces every file and hunk to the given state.
func (e *Expansion) SetAll(files []diff.File, expanded bool) {
	for _, f := range files {
		e.files[f.Path()] = expanded
		for hi := range f.Hunks {
			e.hunks[hunkKey(f, hi)] = expanded
		}
	}
}

// Reset drops all user toggles, returning to the parsed state.
func (e *Expansion) Reset() {
	e.files = map[string]bool{}
	e.hunks = map[string]bool{}
}

// Rows flattens parsed files into visual rows. Collapsed files keep
// only their header row, collapsed hunks only theirs. Within a hunk,
// deletes pair up positionally with the adds that follow them to form
// replace rows. A nil Expansion uses the parsed state as is.
func Rows(files []diff.File, exp *Expansion) []Row {
	if exp == nil {
		exp = NewExpansion()
	}
	var rows []Row
	for fi := range files {
		f := files[fi]
		rows = append(rows, Row{Kind: RowFile, File: fi, Expanded: exp.FileExpanded(f)})
		if f.Binary {
			rows = append(rows, Row{Kind: RowBinary, File: fi})
			continue
		}
		if !exp.FileExpanded(f) {
			continue
		}
		for hi := range f.Hunks {
			rows = append(rows, Row{
				Kind:     RowHunk,
				File:     fi,
				Hunk:     hi,
				Expanded: exp.HunkExpanded(f, hi),
			})
			if !exp.HunkExpanded(f, hi) {
				continue
			}
			rows = append(rows, hunkRows(files, fi, hi)...)
		}
	}
	return rows
}

func hunkRows(files []diff.File, fi, hi int) []Row {
	changes := files[fi].Hunks[hi].Changes
	var rows []Row
	var pending []*diff.Change
	flush := func() {
		for _, d := range pending {
			rows = append(rows, Row{Kind: RowDel, File: fi, Hunk: hi, Left: d})
		}
		pending = pending[:0]
	}
	for ci := range changes {
		ch := &changes[ci]
		switch ch.Kind {
		case diff.KindDelete:
			pending = append(pending, ch)
		case diff.KindAdd:
			if len(pending) > 0 {
				rows = append(rows, Row{Kind: RowReplace, File: fi, Hunk: hi, Left: pending[0], Right: ch})
				pending = pending[1:]
				continue
			}
			rows = append(rows, Row{Kind: RowAdd, File: fi, Hunk: hi, Right: ch})
		default:
			flush()
			rows = append(rows, Row{Kind: RowContext, File: fi, Hunk: hi, Left: ch, Right: ch})
		}
	}
	flush()
	return rows
}
