package overlays

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/diffscope/internal/diff"
)

// Action represents what the overlay wants the parent to do.
type Action int

const (
	ActionContinue Action = iota // keep the overlay open
	ActionClose                  // close the overlay
)

// Overlay is the interface all overlays implement.
type Overlay interface {
	// Init initializes the overlay with the current files.
	Init(repoRoot string, files []diff.File) tea.Cmd

	// HandleKey processes keyboard input while the overlay is open.
	HandleKey(msg tea.KeyMsg) (Action, tea.Cmd)

	// Update processes tea messages (for async results).
	Update(msg tea.Msg) tea.Cmd

	// RenderOverlay returns the overlay UI lines.
	RenderOverlay(width int) []string
}
