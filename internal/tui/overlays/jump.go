package overlays

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/diffscope/internal/diff"
	"github.com/interpretive-systems/diffscope/internal/render"
)

const jumpVisible = 8

// JumpOverlay picks a file by typing part of its path.
type JumpOverlay struct {
	files    []diff.File
	input    textinput.Model
	index    int
	filtered []int
	chosen   int
}

// NewJumpOverlay creates a jump overlay.
func NewJumpOverlay() *JumpOverlay {
	return &JumpOverlay{chosen: -1}
}

// Init initializes the overlay with the current files.
func (o *JumpOverlay) Init(repoRoot string, files []diff.File) tea.Cmd {
	o.files = files
	o.index = 0
	o.chosen = -1
	ti := textinput.New()
	ti.Placeholder = "File path"
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()
	o.input = ti
	o.refilter()
	return textinput.Blink
}

// HandleKey processes keyboard input. Typing narrows the list; up and
// down move the selection.
func (o *JumpOverlay) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionClose, nil
	case "down", "ctrl+n":
		if o.index < len(o.filtered)-1 {
			o.index++
		}
		return ActionContinue, nil
	case "up", "ctrl+p":
		if o.index > 0 {
			o.index--
		}
		return ActionContinue, nil
	case "enter":
		if o.index >= 0 && o.index < len(o.filtered) {
			o.chosen = o.filtered[o.index]
		}
		return ActionClose, nil
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	o.refilter()
	return ActionContinue, cmd
}

func (o *JumpOverlay) refilter() {
	query := strings.ToLower(strings.TrimSpace(o.input.Value()))
	o.filtered = o.filtered[:0]
	for i, f := range o.files {
		if query == "" || strings.Contains(strings.ToLower(f.Path()), query) {
			o.filtered = append(o.filtered, i)
		}
	}
	if o.index >= len(o.filtered) {
		o.index = len(o.filtered) - 1
	}
	if o.index < 0 {
		o.index = 0
	}
}

// Update processes messages. The jump overlay has no async work.
func (o *JumpOverlay) Update(msg tea.Msg) tea.Cmd {
	return nil
}

// RenderOverlay renders the overlay UI.
func (o *JumpOverlay) RenderOverlay(width int) []string {
	lines := make([]string, 0, jumpVisible+3)
	lines = append(lines, strings.Repeat("─", width))
	title := lipgloss.NewStyle().Bold(true).
		Render("Jump to file (type to filter, ↑/↓: move, enter: open, esc: close)")
	lines = append(lines, title, o.input.View())

	if len(o.filtered) == 0 {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("No matching files"))
		return lines
	}

	start := 0
	if o.index >= jumpVisible {
		start = o.index - jumpVisible + 1
	}
	end := start + jumpVisible
	if end > len(o.filtered) {
		end = len(o.filtered)
	}
	for i := start; i < end; i++ {
		f := o.files[o.filtered[i]]
		cur := "  "
		if i == o.index {
			cur = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", cur, render.StatusLabel(f.Status), render.DisplayPath(f)))
	}
	return lines
}

// Result returns the chosen file index once the overlay completed.
func (o *JumpOverlay) Result() (int, bool) {
	if o.chosen < 0 {
		return 0, false
	}
	return o.chosen, true
}
