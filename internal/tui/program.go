package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/diffscope/internal/prefs"
	"github.com/interpretive-systems/diffscope/internal/render"
	"github.com/interpretive-systems/diffscope/internal/theme"
	"github.com/interpretive-systems/diffscope/internal/tui/overlays"
)

// Program wires state, layout, and key handling into a Bubble Tea
// model. The struct is copied by value between updates; all mutable
// state lives behind the pointers.
type Program struct {
	state      *State
	layout     *Layout
	keyHandler *KeyHandler
}

// Run opens the viewer on the repository and blocks until it exits.
// The returned Outcome reports the decision recorded in the session,
// or "dismissed" when the viewer was quit without one.
func Run(repoRoot string, opts Options) (Outcome, error) {
	p := Program{
		state:      NewState(repoRoot, opts),
		layout:     NewLayout(),
		keyHandler: NewKeyHandler(),
	}
	final, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	if err != nil {
		return Outcome{Decision: "dismissed"}, err
	}
	if fp, ok := final.(Program); ok {
		return fp.state.Outcome, nil
	}
	return Outcome{Decision: "dismissed"}, nil
}

func (p Program) Init() tea.Cmd {
	st := p.state
	return tea.Batch(
		loadDiff(st.RepoRoot, st.Source, st.ExpandAll),
		loadLastCommit(st.RepoRoot),
		loadCurrentBranch(st.RepoRoot),
		loadPrefs(st.RepoRoot),
		tickOnce(),
	)
}

func (p Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	st := p.state
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	case tea.WindowSizeMsg:
		st.Width = msg.Width
		st.Height = msg.Height
		if st.LeftWidth == 0 {
			// Initialize left width once
			st.LeftWidth = msg.Width / 3
			if st.LeftWidth < 24 {
				st.LeftWidth = 24
			}
		}
		p.recalcViewport()
		return p, nil
	case tickMsg:
		// Periodic refresh re-runs acquisition and parsing.
		return p, tea.Batch(loadDiff(st.RepoRoot, st.Source, st.ExpandAll), tickOnce())
	case diffMsg:
		p.handleDiff(msg)
		return p, nil
	case lastCommitMsg:
		if msg.err == nil {
			st.LastCommit = msg.summary
			st.StatusBar.SetLastCommit(msg.summary)
		}
		return p, nil
	case currentBranchMsg:
		if msg.err == nil {
			st.CurrentBranch = msg.name
		}
		return p, nil
	case prefsMsg:
		p.handlePrefs(msg)
		return p, nil
	}
	// Everything else (cursor blink and friends) goes to the active
	// overlay.
	if ov := p.activeOverlay(); ov != nil {
		return p, ov.Update(msg)
	}
	return p, nil
}

func (p Program) handleDiff(msg diffMsg) {
	st := p.state
	if msg.err != nil {
		st.Status = fmt.Sprintf("diff error: %v", msg.err)
		return
	}
	st.Status = ""

	// Preserve selection by path across refreshes.
	var selPath string
	if f := st.FileList.SelectedFile(); f != nil {
		selPath = f.Path()
	}

	st.Files = msg.files
	st.Stats = msg.stats
	st.LastRefresh = time.Now()

	st.FileList.SetFiles(msg.files)
	if selPath != "" {
		for i, f := range msg.files {
			if f.Path() == selPath {
				st.FileList.Select(i)
				break
			}
		}
	}

	st.StatusBar.SetLastRefresh(st.LastRefresh)
	st.StatusBar.SetStats(msg.stats.String())
	st.DiffPane.SetFiles(msg.files)
	p.applySearchHighlights()
}

func (p Program) handlePrefs(msg prefsMsg) {
	if msg.err != nil {
		return
	}
	st := p.state
	pr := msg.p
	if pr.SideSet {
		st.DiffPane.SetSideBySide(pr.SideBySide)
	}
	if pr.WrapSet {
		st.DiffPane.SetWrap(pr.Wrap)
	}
	if pr.SyntaxSet {
		st.DiffPane.SetSyntax(pr.Syntax)
	}
	if pr.LeftSet {
		st.LeftWidth = pr.LeftWidth
	}
	if pr.Theme != "" && pr.Theme != st.ThemeName {
		p.applyTheme(pr.Theme)
	}
	p.recalcViewport()
}

func (p Program) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := p.state

	// The search prompt grabs keys first, then the active overlay.
	if st.SearchEngine.IsActive() {
		return p.handleSearchKey(msg)
	}
	if ov := p.activeOverlay(); ov != nil {
		return p.handleOverlayKey(ov, msg)
	}

	if st.ShowHelp {
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case "h", "esc":
			st.ShowHelp = false
			p.recalcViewport()
		}
		return p, nil
	}

	action, count := p.keyHandler.Handle(msg)
	st.StatusBar.SetKeyBuffer(p.keyHandler.KeyBuffer())

	switch action {
	case ActionQuit:
		return p, tea.Quit
	case ActionToggleHelp:
		st.ShowHelp = !st.ShowHelp
		p.recalcViewport()
	case ActionOpenDecision, ActionAccept, ActionReject:
		ov := st.Overlays["decision"]
		if ov == nil {
			return p, nil
		}
		cmd := ov.Init(st.RepoRoot, st.Files)
		if d, ok := ov.(*overlays.DecisionOverlay); ok && action != ActionOpenDecision {
			d.Preset(action == ActionAccept)
		}
		st.ActiveOverlay = "decision"
		p.recalcViewport()
		return p, cmd
	case ActionOpenJump:
		ov := st.Overlays["jump"]
		if ov == nil {
			return p, nil
		}
		cmd := ov.Init(st.RepoRoot, st.Files)
		st.ActiveOverlay = "jump"
		p.recalcViewport()
		return p, cmd
	case ActionOpenSearch:
		st.SearchEngine.Activate()
		p.recalcViewport()
	case ActionRefresh:
		return p, tea.Batch(
			loadDiff(st.RepoRoot, st.Source, st.ExpandAll),
			loadLastCommit(st.RepoRoot),
			loadCurrentBranch(st.RepoRoot),
		)
	case ActionToggleSideBySide:
		sb := !st.DiffPane.GetSideBySide()
		st.DiffPane.SetSideBySide(sb)
		p.applySearchHighlights()
		return p, savePref(func() error { return prefs.SaveSideBySide(st.RepoRoot, sb) })
	case ActionToggleSource:
		if st.Source == "staged" {
			st.Source = "worktree"
		} else {
			st.Source = "staged"
		}
		st.StatusBar.SetSource(st.Source)
		return p, loadDiff(st.RepoRoot, st.Source, st.ExpandAll)
	case ActionToggleWrap:
		w := !st.DiffPane.GetWrap()
		st.DiffPane.SetWrap(w)
		p.applySearchHighlights()
		return p, savePref(func() error { return prefs.SaveWrap(st.RepoRoot, w) })
	case ActionToggleSyntax:
		on := !st.DiffPane.GetSyntax()
		st.DiffPane.SetSyntax(on)
		p.applySearchHighlights()
		return p, savePref(func() error { return prefs.SaveSyntax(st.RepoRoot, on) })
	case ActionCycleTheme:
		name := "light"
		if st.ThemeName == "light" {
			name = "dark"
		}
		p.applyTheme(name)
		return p, savePref(func() error { return prefs.SaveTheme(st.RepoRoot, name) })
	case ActionToggleFile:
		st.DiffPane.ToggleFile(st.FileList.Selected())
		p.applySearchHighlights()
	case ActionToggleHunk:
		st.DiffPane.ToggleCurrentHunk()
		p.applySearchHighlights()
	case ActionExpandAll:
		st.DiffPane.ExpandAll()
		p.applySearchHighlights()
	case ActionCollapseAll:
		st.DiffPane.CollapseAll()
		p.applySearchHighlights()
	case ActionNextHunk:
		for i := 0; i < count; i++ {
			st.DiffPane.NextHunk()
		}
		p.applySearchHighlights()
	case ActionPrevHunk:
		for i := 0; i < count; i++ {
			st.DiffPane.PrevHunk()
		}
		p.applySearchHighlights()
	case ActionMoveDown:
		p.moveSelection(count)
	case ActionMoveUp:
		p.moveSelection(-count)
	case ActionGoToTop:
		if st.FileList.GoToTop() {
			p.syncSelection()
		}
	case ActionGoToBottom:
		if st.FileList.GoToBottom() {
			p.syncSelection()
		}
	case ActionScrollLeft:
		st.DiffPane.ScrollLeft(4 * count)
	case ActionScrollRight:
		st.DiffPane.ScrollRight(4 * count)
	case ActionScrollHome:
		st.DiffPane.ScrollHome()
	case ActionPageDown:
		for i := 0; i < count; i++ {
			st.DiffPane.Viewport().PageDown()
		}
	case ActionPageUp:
		for i := 0; i < count; i++ {
			st.DiffPane.Viewport().PageUp()
		}
	case ActionHalfPageDown:
		for i := 0; i < count; i++ {
			st.DiffPane.Viewport().HalfPageDown()
		}
	case ActionHalfPageUp:
		for i := 0; i < count; i++ {
			st.DiffPane.Viewport().HalfPageUp()
		}
	case ActionLineDown:
		st.DiffPane.Viewport().LineDown(count)
	case ActionLineUp:
		st.DiffPane.Viewport().LineUp(count)
	case ActionAdjustLeftNarrower:
		return p, p.adjustLeftWidth(-2 * count)
	case ActionAdjustLeftWider:
		return p, p.adjustLeftWidth(2 * count)
	case ActionSearchNext:
		st.SearchEngine.Next()
		p.scrollToMatch()
	case ActionSearchPrevious:
		st.SearchEngine.Previous()
		p.scrollToMatch()
	}
	return p, nil
}

func (p Program) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	eng := p.state.SearchEngine
	_, cmd := eng.HandleKey(msg)
	if eng.IsActive() {
		p.applySearchHighlights()
	} else {
		// Closed with esc; the overlay row disappears.
		p.recalcViewport()
	}
	p.scrollToMatch()
	return p, cmd
}

func (p Program) handleOverlayKey(ov overlays.Overlay, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := p.state
	act, cmd := ov.HandleKey(msg)
	if act != overlays.ActionClose {
		p.recalcViewport()
		return p, cmd
	}

	st.ActiveOverlay = ""
	switch o := ov.(type) {
	case *overlays.DecisionOverlay:
		if res, ok := o.Result(); ok {
			decision := "rejected"
			if res.Accepted {
				decision = "accepted"
			}
			st.Outcome = Outcome{Decision: decision, Note: res.Note}
			return p, tea.Quit
		}
	case *overlays.JumpOverlay:
		if idx, ok := o.Result(); ok {
			st.FileList.Select(idx)
			p.syncSelection()
		}
	}
	p.recalcViewport()
	return p, cmd
}

func (p Program) moveSelection(delta int) {
	if p.state.FileList.MoveSelection(delta) {
		p.syncSelection()
	}
}

// syncSelection aligns the diff pane with the selected file.
func (p Program) syncSelection() {
	p.state.DiffPane.ScrollToFile(p.state.FileList.Selected())
}

func (p Program) applyTheme(name string) {
	st := p.state
	st.ThemeName = name
	st.Theme = theme.Load(st.RepoRoot, name)
	st.DiffPane.SetTheme(st.Theme)
	p.applySearchHighlights()
}

func (p Program) adjustLeftWidth(delta int) tea.Cmd {
	st := p.state
	p.layout.AdjustLeftWidth(delta)
	st.LeftWidth = p.layout.LeftWidth()
	p.recalcViewport()
	return savePref(func() error { return prefs.SaveLeftWidth(st.RepoRoot, st.LeftWidth) })
}

// recalcViewport resizes the diff pane for the current layout and
// re-layers search highlights over its content.
func (p Program) recalcViewport() {
	st := p.state
	if st.Width == 0 || st.Height == 0 {
		return
	}
	p.layout.SetSize(st.Width, st.Height)
	if st.LeftWidth > 0 {
		p.layout.SetLeftWidth(st.LeftWidth)
	}
	overlayH := len(p.overlayLines())
	st.DiffPane.SetSize(p.layout.RightWidth(), p.layout.ContentHeight(overlayH))
	p.applySearchHighlights()
}

// applySearchHighlights feeds the rendered pane to the search engine
// and pushes the highlighted copy back when a query is live.
func (p Program) applySearchHighlights() {
	eng := p.state.SearchEngine
	eng.SetContent(p.state.DiffPane.Content())
	if eng.Query() != "" {
		p.state.DiffPane.SetContent(eng.HighlightedContent())
	}
}

func (p Program) scrollToMatch() {
	line := p.state.SearchEngine.CurrentMatchLine()
	if line < 0 {
		return
	}
	vp := p.state.DiffPane.Viewport()
	if line < vp.YOffset || line >= vp.YOffset+vp.Height {
		vp.SetYOffset(line)
	}
}

func (p Program) activeOverlay() overlays.Overlay {
	if p.state.ActiveOverlay == "" {
		return nil
	}
	return p.state.Overlays[p.state.ActiveOverlay]
}

func (p Program) View() string {
	st := p.state
	if st.Width == 0 || st.Height == 0 {
		return "Loading..."
	}

	overlay := p.overlayLines()
	contentHeight := p.layout.ContentHeight(len(overlay))

	leftLines := st.FileList.Render(contentHeight)
	rightLines := strings.Split(st.DiffPane.View(), "\n")

	topLeft := "Changes | " + p.topTitle()
	topRight := st.CurrentBranch
	if st.Status != "" {
		topRight = st.Status
	}

	return p.layout.RenderFrame(
		topLeft, topRight,
		leftLines, rightLines,
		overlay,
		st.StatusBar.Render(st.Width),
		st.Theme,
	)
}

func (p Program) topTitle() string {
	f := p.state.FileList.SelectedFile()
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", render.DisplayPath(*f), render.StatusLabel(f.Status))
}

func (p Program) overlayLines() []string {
	st := p.state
	var lines []string
	if st.ShowHelp {
		lines = append(lines, p.helpOverlayLines(st.Width)...)
	}
	if ov := p.activeOverlay(); ov != nil {
		lines = append(lines, ov.RenderOverlay(st.Width)...)
	}
	if st.SearchEngine.IsActive() {
		lines = append(lines, st.SearchEngine.RenderOverlay(st.Width, st.Theme.DividerColor)...)
	}
	return lines
}

// helpOverlayLines returns the bottom overlay lines (without trailing
// newline).
func (p Program) helpOverlayLines(width int) []string {
	title := lipgloss.NewStyle().Bold(true).Render("Help — press 'h' or Esc to close")
	keys := []string{
		"j/k or arrows   Move selection (prefix a count: 3j)",
		"g / G           First / last file",
		"J/K, PgDn/PgUp  Scroll diff    ctrl+e/y  line scroll",
		"[ / ]           Previous / next hunk    z  toggle hunk",
		"space           Toggle file    e / c  expand / collapse all",
		"s / w           Side-by-side / wrap    S  syntax colors",
		"{ / } / home    Scroll diff horizontally",
		"t               Worktree / staged    T  theme",
		"/ then n/N      Search / jump between matches",
		"f               Jump to file",
		"d / a / x       Decision: open / accept / reject",
		"</>             Adjust left pane width",
		"r               Refresh now",
		"q               Quit",
	}
	lines := make([]string, 0, 2+len(keys))
	lines = append(lines, strings.Repeat("─", width))
	lines = append(lines, title)
	lines = append(lines, keys...)
	return lines
}
