package components

import (
	"fmt"

	"github.com/interpretive-systems/diffscope/internal/diff"
	"github.com/interpretive-systems/diffscope/internal/render"
)

// FileList manages the left pane file list.
type FileList struct {
	files    []diff.File
	selected int
	offset   int
}

// NewFileList creates a new file list.
func NewFileList() *FileList {
	return &FileList{}
}

// SetFiles updates the file list, keeping the selection in range.
func (f *FileList) SetFiles(files []diff.File) {
	f.files = files
	if f.selected >= len(files) {
		f.selected = len(files) - 1
	}
	if f.selected < 0 {
		f.selected = 0
	}
}

// Files returns the current file list.
func (f *FileList) Files() []diff.File {
	return f.files
}

// Selected returns the currently selected file index.
func (f *FileList) Selected() int {
	return f.selected
}

// SelectedFile returns the currently selected file.
func (f *FileList) SelectedFile() *diff.File {
	if len(f.files) == 0 || f.selected < 0 || f.selected >= len(f.files) {
		return nil
	}
	return &f.files[f.selected]
}

// Select moves the selection to index i.
func (f *FileList) Select(i int) bool {
	if i < 0 || i >= len(f.files) || i == f.selected {
		return false
	}
	f.selected = i
	return true
}

// MoveSelection moves the selection by delta.
func (f *FileList) MoveSelection(delta int) bool {
	if len(f.files) == 0 {
		return false
	}
	newSel := f.selected + delta
	if newSel < 0 {
		newSel = 0
	}
	if newSel >= len(f.files) {
		newSel = len(f.files) - 1
	}
	changed := newSel != f.selected
	f.selected = newSel
	return changed
}

// GoToTop moves selection to the first file.
func (f *FileList) GoToTop() bool {
	if len(f.files) == 0 || f.selected == 0 {
		return false
	}
	f.selected = 0
	return true
}

// GoToBottom moves selection to the last file.
func (f *FileList) GoToBottom() bool {
	if len(f.files) == 0 {
		return false
	}
	last := len(f.files) - 1
	if f.selected == last {
		return false
	}
	f.selected = last
	return true
}

// EnsureVisible keeps the selected item inside the window.
func (f *FileList) EnsureVisible(visibleCount int) {
	if len(f.files) == 0 || visibleCount <= 0 {
		return
	}
	if f.offset < 0 {
		f.offset = 0
	}
	maxStart := len(f.files) - visibleCount
	if maxStart < 0 {
		maxStart = 0
	}
	if f.offset > maxStart {
		f.offset = maxStart
	}
	if f.selected < f.offset {
		f.offset = f.selected
	} else if f.selected >= f.offset+visibleCount {
		f.offset = f.selected - visibleCount + 1
		if f.offset < 0 {
			f.offset = 0
		}
	}
	if f.offset > maxStart {
		f.offset = maxStart
	}
}

// Render renders the file list to lines.
func (f *FileList) Render(height int) []string {
	lines := make([]string, 0, height)
	if len(f.files) == 0 {
		lines = append(lines, "No changes detected")
		return lines
	}

	f.EnsureVisible(height)

	start := f.offset
	end := start + height
	if end > len(f.files) {
		end = len(f.files)
	}
	for i := start; i < end; i++ {
		file := f.files[i]
		marker := "  "
		if i == f.selected {
			marker = "> "
		}
		label := render.StatusLabel(file.Status)
		if file.Binary {
			label += "B"
		}
		line := fmt.Sprintf("%s%s %s", marker, label, render.DisplayPath(file))
		if add, del := file.Counts(); add > 0 || del > 0 {
			line += fmt.Sprintf(" +%d -%d", add, del)
		}
		lines = append(lines, line)
	}
	return lines
}
