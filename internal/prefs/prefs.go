package prefs

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Prefs represents persisted UI preferences. The *Set flags tell a
// stored false or zero apart from an absent key.
type Prefs struct {
	Wrap       bool
	WrapSet    bool
	SideBySide bool
	SideSet    bool
	Syntax     bool
	SyntaxSet  bool
	LeftWidth  int
	LeftSet    bool
	Theme      string
}

const (
	keyWrap       = "diffscope.wrap"
	keySideBySide = "diffscope.sideBySide"
	keySyntax     = "diffscope.syntax"
	keyLeftWidth  = "diffscope.leftWidth"
	keyTheme      = "diffscope.theme"
)

// Load reads preferences from git local config.
func Load(repoRoot string) Prefs {
	var p Prefs
	if s, ok := get(repoRoot, keyWrap); ok {
		p.WrapSet = true
		p.Wrap = parseBool(s)
	}
	if s, ok := get(repoRoot, keySideBySide); ok {
		p.SideSet = true
		p.SideBySide = parseBool(s)
	}
	if s, ok := get(repoRoot, keySyntax); ok {
		p.SyntaxSet = true
		p.Syntax = parseBool(s)
	}
	if s, ok := get(repoRoot, keyLeftWidth); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			p.LeftSet = true
			p.LeftWidth = n
		}
	}
	if s, ok := get(repoRoot, keyTheme); ok {
		p.Theme = strings.TrimSpace(s)
	}
	return p
}

// SaveWrap persists wrap pref.
func SaveWrap(repoRoot string, v bool) error {
	return set(repoRoot, keyWrap, boolStr(v))
}

// SaveSideBySide persists side-by-side pref.
func SaveSideBySide(repoRoot string, v bool) error {
	return set(repoRoot, keySideBySide, boolStr(v))
}

// SaveSyntax persists the syntax highlighting pref.
func SaveSyntax(repoRoot string, v bool) error {
	return set(repoRoot, keySyntax, boolStr(v))
}

// SaveLeftWidth persists left column width.
func SaveLeftWidth(repoRoot string, w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid left width: %d", w)
	}
	return set(repoRoot, keyLeftWidth, strconv.Itoa(w))
}

// SaveTheme persists the base theme name.
func SaveTheme(repoRoot, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty theme name")
	}
	return set(repoRoot, keyTheme, name)
}

func get(repoRoot, key string) (string, bool) {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--get", key)
	b, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func set(repoRoot, key, value string) error {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--local", key, value)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git config %s: %w: %s", key, err, string(out))
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func boolStr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
