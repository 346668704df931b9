package tui

import (
	"github.com/interpretive-systems/diffscope/internal/diff"
	"github.com/interpretive-systems/diffscope/internal/prefs"
)

// tickMsg triggers periodic refresh.
type tickMsg struct{}

// diffMsg contains the parsed diff for the current source. One load
// feeds the file list, the diff pane, and the stats line.
type diffMsg struct {
	files []diff.File
	stats diff.Stats
	err   error
}

// lastCommitMsg contains the last commit summary.
type lastCommitMsg struct {
	summary string
	err     error
}

// currentBranchMsg contains the current branch name.
type currentBranchMsg struct {
	name string
	err  error
}

// prefsMsg contains loaded preferences.
type prefsMsg struct {
	p   prefs.Prefs
	err error
}
