package prefs

import (
	"os/exec"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, out)
	}
	return dir
}

func TestLoadEmptyRepo(t *testing.T) {
	dir := initRepo(t)
	p := Load(dir)
	if p.WrapSet || p.SideSet || p.SyntaxSet || p.LeftSet {
		t.Fatalf("expected no Set flags in a fresh repo, got %+v", p)
	}
	if p.Theme != "" {
		t.Fatalf("expected empty theme, got %q", p.Theme)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := initRepo(t)

	if err := SaveWrap(dir, true); err != nil {
		t.Fatalf("SaveWrap: %v", err)
	}
	if err := SaveSideBySide(dir, false); err != nil {
		t.Fatalf("SaveSideBySide: %v", err)
	}
	if err := SaveSyntax(dir, true); err != nil {
		t.Fatalf("SaveSyntax: %v", err)
	}
	if err := SaveLeftWidth(dir, 42); err != nil {
		t.Fatalf("SaveLeftWidth: %v", err)
	}
	if err := SaveTheme(dir, "light"); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}

	p := Load(dir)
	if !p.WrapSet || !p.Wrap {
		t.Fatalf("wrap pref lost: %+v", p)
	}
	if !p.SideSet || p.SideBySide {
		t.Fatalf("stored false should load as set and false: %+v", p)
	}
	if !p.SyntaxSet || !p.Syntax {
		t.Fatalf("syntax pref lost: %+v", p)
	}
	if !p.LeftSet || p.LeftWidth != 42 {
		t.Fatalf("left width pref lost: %+v", p)
	}
	if p.Theme != "light" {
		t.Fatalf("theme pref lost: %+v", p)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	dir := initRepo(t)
	if err := SaveLeftWidth(dir, 0); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if err := SaveTheme(dir, "  "); err == nil {
		t.Fatalf("expected error for blank theme name")
	}
}
