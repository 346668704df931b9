package tui

import (
	"time"

	"github.com/interpretive-systems/diffscope/internal/diff"
	"github.com/interpretive-systems/diffscope/internal/theme"
	"github.com/interpretive-systems/diffscope/internal/tui/components"
	"github.com/interpretive-systems/diffscope/internal/tui/overlays"
	"github.com/interpretive-systems/diffscope/internal/tui/search"
)

// Options configure the viewer at startup.
type Options struct {
	// Staged starts on the staged diff instead of the worktree diff.
	Staged bool
	// Collapsed starts with all files and hunks collapsed.
	Collapsed bool
	// Theme names the starting theme; empty means dark.
	Theme string
}

// Outcome is what a viewer session ends with. Decision is "accepted" or
// "rejected" when the user recorded one, "dismissed" otherwise.
type Outcome struct {
	Decision string `json:"decision"`
	Note     string `json:"note,omitempty"`
}

// State holds all application state.
type State struct {
	// Repository
	RepoRoot      string
	Files         []diff.File
	Stats         diff.Stats
	CurrentBranch string
	Source        string // "worktree" or "staged"
	LastCommit    string

	// UI state
	Width       int
	Height      int
	LeftWidth   int
	ShowHelp    bool
	ExpandAll   bool
	LastRefresh time.Time
	Status      string

	// Active overlay
	ActiveOverlay string // "", "decision", "jump"

	// Components
	FileList     *components.FileList
	DiffPane     *components.DiffPane
	StatusBar    *components.StatusBar
	SearchEngine *search.Engine

	// Overlays
	Overlays map[string]overlays.Overlay

	// Theme
	ThemeName string
	Theme     theme.Theme

	// Result
	Outcome Outcome
}

// NewState creates initial application state.
func NewState(repoRoot string, opts Options) *State {
	source := "worktree"
	if opts.Staged {
		source = "staged"
	}
	themeName := opts.Theme
	if themeName == "" {
		themeName = "dark"
	}
	curTheme := theme.Load(repoRoot, themeName)

	st := &State{
		RepoRoot:     repoRoot,
		Source:       source,
		ExpandAll:    !opts.Collapsed,
		ThemeName:    themeName,
		Theme:        curTheme,
		FileList:     components.NewFileList(),
		DiffPane:     components.NewDiffPane(curTheme),
		StatusBar:    components.NewStatusBar(),
		SearchEngine: search.New(),
		Overlays: map[string]overlays.Overlay{
			"decision": overlays.NewDecisionOverlay(),
			"jump":     overlays.NewJumpOverlay(),
		},
		Outcome: Outcome{Decision: "dismissed"},
	}
	st.StatusBar.SetSource(source)
	return st
}
