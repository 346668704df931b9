package overlays

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/diffscope/internal/diff"
)

// DecisionResult is what a completed decision overlay produced.
type DecisionResult struct {
	Accepted bool
	Note     string
}

// DecisionOverlay walks through recording a review decision: pick
// accept or reject, optionally attach a note, confirm.
type DecisionOverlay struct {
	step        int // 0: choose, 1: note, 2: confirm
	stats       diff.Stats
	accepted    bool
	input       textinput.Model
	inputActive bool
	done        bool
}

// NewDecisionOverlay creates a decision overlay.
func NewDecisionOverlay() *DecisionOverlay {
	return &DecisionOverlay{}
}

// Init initializes the overlay.
func (o *DecisionOverlay) Init(repoRoot string, files []diff.File) tea.Cmd {
	o.step = 0
	o.stats = diff.Summarize(files)
	o.accepted = true
	o.inputActive = false
	o.done = false
	ti := textinput.New()
	ti.Placeholder = "Review note"
	ti.Prompt = "> "
	ti.CharLimit = 0
	o.input = ti
	return nil
}

// Preset picks the decision up front and skips to the note step.
func (o *DecisionOverlay) Preset(accepted bool) {
	o.accepted = accepted
	o.step = 1
}

// HandleKey processes keyboard input.
func (o *DecisionOverlay) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch o.step {
	case 0:
		return o.handleChoose(msg)
	case 1:
		return o.handleNote(msg)
	case 2:
		return o.handleConfirm(msg)
	}
	return ActionContinue, nil
}

func (o *DecisionOverlay) handleChoose(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionClose, nil
	case "j", "down", "k", "up":
		o.accepted = !o.accepted
	case "a":
		o.accepted = true
	case "x":
		o.accepted = false
	case "enter":
		o.step = 1
	}
	return ActionContinue, nil
}

func (o *DecisionOverlay) handleNote(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if o.inputActive {
			o.inputActive = false
			o.input.Blur()
			return ActionContinue, nil
		}
		return ActionClose, nil
	case "i":
		if !o.inputActive {
			o.inputActive = true
			o.input.Focus()
			return ActionContinue, nil
		}
	case "b":
		if !o.inputActive {
			o.step = 0
			return ActionContinue, nil
		}
	case "enter":
		if !o.inputActive {
			o.step = 2
			return ActionContinue, nil
		}
	}

	if o.inputActive {
		var cmd tea.Cmd
		o.input, cmd = o.input.Update(msg)
		return ActionContinue, cmd
	}
	return ActionContinue, nil
}

func (o *DecisionOverlay) handleConfirm(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionClose, nil
	case "b":
		o.step = 1
		return ActionContinue, nil
	case "y", "enter":
		o.done = true
		return ActionClose, nil
	}
	return ActionContinue, nil
}

// Update processes messages. The decision overlay has no async work.
func (o *DecisionOverlay) Update(msg tea.Msg) tea.Cmd {
	return nil
}

// RenderOverlay renders the overlay UI.
func (o *DecisionOverlay) RenderOverlay(width int) []string {
	lines := make([]string, 0, 8)
	lines = append(lines, strings.Repeat("─", width))

	switch o.step {
	case 0:
		lines = append(lines, o.renderChoose()...)
	case 1:
		lines = append(lines, o.renderNote()...)
	case 2:
		lines = append(lines, o.renderConfirm()...)
	}
	return lines
}

func (o *DecisionOverlay) renderChoose() []string {
	title := lipgloss.NewStyle().Bold(true).
		Render("Review — Decision (j/k: choose, a/x: pick, enter: continue, esc: cancel)")
	accept, reject := "  ( ) accept", "  ( ) reject"
	if o.accepted {
		accept = "> (x) accept"
	} else {
		reject = "> (x) reject"
	}
	return []string{title, accept, reject}
}

func (o *DecisionOverlay) renderNote() []string {
	mode := "action"
	escAction := "cancel"
	if o.inputActive {
		mode = "input"
		escAction = "leave input"
	}
	title := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Review — Note (i: input, enter: continue, b: back, esc: %s) [%s]", escAction, mode))
	return []string{title, o.input.View()}
}

func (o *DecisionOverlay) renderConfirm() []string {
	title := lipgloss.NewStyle().Bold(true).
		Render("Review — Confirm (y/enter: record, b: back, esc: cancel)")

	decision := "reject"
	if o.accepted {
		decision = "accept"
	}
	note := strings.TrimSpace(o.input.Value())
	if note == "" {
		note = "(none)"
	}
	return []string{
		title,
		"Decision: " + decision,
		"Note: " + note,
		"Changes: " + o.stats.String(),
	}
}

// Result returns the recorded decision once the overlay completed.
func (o *DecisionOverlay) Result() (DecisionResult, bool) {
	if !o.done {
		return DecisionResult{}, false
	}
	return DecisionResult{
		Accepted: o.accepted,
		Note:     strings.TrimSpace(o.input.Value()),
	}, true
}
