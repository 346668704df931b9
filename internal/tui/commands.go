package tui

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/diffscope/internal/diff"
	"github.com/interpretive-systems/diffscope/internal/gitx"
	"github.com/interpretive-systems/diffscope/internal/prefs"
)

// loadDiff acquires the unified diff for the source, parses it, runs
// word annotation, and summarizes the counts.
func loadDiff(repoRoot, source string, expandAll bool) tea.Cmd {
	return func() tea.Msg {
		var text string
		var err error
		if source == "staged" {
			text, err = gitx.DiffStaged(repoRoot)
		} else {
			text, err = gitx.DiffWorktree(repoRoot)
		}
		if err != nil {
			return diffMsg{err: err}
		}

		files := diff.Parse(text, expandAll)
		diff.Annotate(files)

		// Stable sort for deterministic UI; untracked sections arrive
		// after the tracked diff.
		sort.Slice(files, func(i, j int) bool {
			return files[i].Path() < files[j].Path()
		})

		return diffMsg{files: files, stats: diff.Summarize(files)}
	}
}

// loadLastCommit loads the last commit summary.
func loadLastCommit(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		s, err := gitx.LastCommitSummary(repoRoot)
		return lastCommitMsg{summary: s, err: err}
	}
}

// loadCurrentBranch loads the current branch name.
func loadCurrentBranch(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		name, err := gitx.CurrentBranch(repoRoot)
		return currentBranchMsg{name: name, err: err}
	}
}

// loadPrefs loads user preferences.
func loadPrefs(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		return prefsMsg{p: prefs.Load(repoRoot)}
	}
}

// savePref persists one preference off the UI goroutine. Save failures
// are ignored.
func savePref(save func() error) tea.Cmd {
	return func() tea.Msg {
		_ = save()
		return nil
	}
}

// tickOnce schedules a single tick after 1 second.
func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
