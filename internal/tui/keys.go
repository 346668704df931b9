package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionToggleHelp
	ActionOpenDecision
	ActionAccept
	ActionReject
	ActionOpenJump
	ActionOpenSearch
	ActionRefresh
	ActionToggleSideBySide
	ActionToggleSource
	ActionToggleWrap
	ActionToggleSyntax
	ActionCycleTheme
	ActionToggleFile
	ActionToggleHunk
	ActionExpandAll
	ActionCollapseAll
	ActionNextHunk
	ActionPrevHunk
	ActionMoveUp
	ActionMoveDown
	ActionGoToTop
	ActionGoToBottom
	ActionScrollLeft
	ActionScrollRight
	ActionScrollHome
	ActionPageDown
	ActionPageUp
	ActionHalfPageDown
	ActionHalfPageUp
	ActionLineDown
	ActionLineUp
	ActionAdjustLeftNarrower
	ActionAdjustLeftWider
	ActionSearchNext
	ActionSearchPrevious
)

// KeyHandler handles key input and maintains the numeric count buffer.
type KeyHandler struct {
	keyBuffer string
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key message and returns the action plus the count
// accumulated from preceding digit keys.
func (k *KeyHandler) Handle(msg tea.KeyMsg) (KeyAction, int) {
	key := msg.String()

	// Numeric keys build up the buffer
	if isNumericKey(key) {
		k.keyBuffer += key
		return ActionNone, 0
	}

	// Get count from buffer
	count := 1
	if k.keyBuffer != "" {
		if n, err := strconv.Atoi(k.keyBuffer); err == nil {
			count = n
		}
	}
	k.keyBuffer = ""

	return k.keyToAction(key), count
}

// KeyBuffer returns the current key buffer.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

// ClearBuffer clears the key buffer.
func (k *KeyHandler) ClearBuffer() {
	k.keyBuffer = ""
}

func (k *KeyHandler) keyToAction(key string) KeyAction {
	switch key {
	case "ctrl+c", "q":
		return ActionQuit
	case "h":
		return ActionToggleHelp
	case "d":
		return ActionOpenDecision
	case "a":
		return ActionAccept
	case "x":
		return ActionReject
	case "f":
		return ActionOpenJump
	case "/":
		return ActionOpenSearch
	case "r":
		return ActionRefresh
	case "s":
		return ActionToggleSideBySide
	case "t":
		return ActionToggleSource
	case "w":
		return ActionToggleWrap
	case "S":
		return ActionToggleSyntax
	case "T":
		return ActionCycleTheme
	case " ":
		return ActionToggleFile
	case "z":
		return ActionToggleHunk
	case "e":
		return ActionExpandAll
	case "c":
		return ActionCollapseAll
	case "]":
		return ActionNextHunk
	case "[":
		return ActionPrevHunk
	case "j", "down":
		return ActionMoveDown
	case "k", "up":
		return ActionMoveUp
	case "g":
		return ActionGoToTop
	case "G":
		return ActionGoToBottom
	case "left", "{":
		return ActionScrollLeft
	case "right", "}":
		return ActionScrollRight
	case "home":
		return ActionScrollHome
	case "pgdown":
		return ActionPageDown
	case "pgup":
		return ActionPageUp
	case "J", "ctrl+d":
		return ActionHalfPageDown
	case "K", "ctrl+u":
		return ActionHalfPageUp
	case "ctrl+e":
		return ActionLineDown
	case "ctrl+y":
		return ActionLineUp
	case "<":
		return ActionAdjustLeftNarrower
	case ">":
		return ActionAdjustLeftWider
	case "n":
		return ActionSearchNext
	case "N":
		return ActionSearchPrevious
	default:
		return ActionNone
	}
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key >= "0" && key <= "9"
}
