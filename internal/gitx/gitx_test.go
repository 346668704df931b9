package gitx

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, "git", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")
	return dir
}

func TestChangedFilesAndWorktreeDiff(t *testing.T) {
	dir := initRepo(t)

	// initial commit
	write(t, filepath.Join(dir, "f1.txt"), "one\nline\n")
	write(t, filepath.Join(dir, "del.txt"), "to delete\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")

	// modify f1 (unstaged), create new (untracked), delete del.txt (unstaged)
	write(t, filepath.Join(dir, "f1.txt"), "one\nline changed\n")
	write(t, filepath.Join(dir, "new.txt"), "brand new\n")
	if err := os.Remove(filepath.Join(dir, "del.txt")); err != nil {
		t.Fatal(err)
	}

	files, err := ChangedFiles(dir)
	if err != nil {
		t.Fatalf("ChangedFiles error: %v", err)
	}
	m := map[string]FileChange{}
	for _, f := range files {
		m[f.Path] = f
	}
	if !m["f1.txt"].Unstaged {
		t.Fatalf("expected f1.txt to be unstaged modified, got %+v", m["f1.txt"])
	}
	if !m["new.txt"].Untracked {
		t.Fatalf("expected new.txt to be untracked, got %+v", m["new.txt"])
	}
	if !(m["del.txt"].Deleted && m["del.txt"].Unstaged) {
		t.Fatalf("expected del.txt to be deleted unstaged, got %+v", m["del.txt"])
	}

	// One worktree diff covers modifications, deletions and untracked files.
	d, err := DiffWorktree(dir)
	if err != nil {
		t.Fatalf("DiffWorktree error: %v", err)
	}
	for _, want := range []string{"-line", "+line changed", "deleted file mode", "+brand new", "new file mode"} {
		if !strings.Contains(d, want) {
			t.Fatalf("expected %q in worktree diff:\n%s", want, d)
		}
	}

	df, err := DiffFile(dir, "f1.txt")
	if err != nil {
		t.Fatalf("DiffFile error: %v", err)
	}
	if !strings.Contains(df, "-line") || !strings.Contains(df, "+line changed") {
		t.Fatalf("unexpected diff: %s", df)
	}
}

func TestDiffStaged(t *testing.T) {
	dir := initRepo(t)

	write(t, filepath.Join(dir, "f1.txt"), "one\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")

	write(t, filepath.Join(dir, "f1.txt"), "two\n")
	write(t, filepath.Join(dir, "loose.txt"), "not staged\n")
	mustRun(t, dir, "git", "add", "f1.txt")

	d, err := DiffStaged(dir)
	if err != nil {
		t.Fatalf("DiffStaged error: %v", err)
	}
	if !strings.Contains(d, "+two") {
		t.Fatalf("expected staged change in diff:\n%s", d)
	}
	if strings.Contains(d, "not staged") {
		t.Fatalf("unexpected unstaged content in staged diff:\n%s", d)
	}
}

func TestRepoRootAndBranchInfo(t *testing.T) {
	dir := initRepo(t)
	write(t, filepath.Join(dir, "f.txt"), "x\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "first commit")

	root, err := RepoRoot(dir)
	if err != nil {
		t.Fatalf("RepoRoot error: %v", err)
	}
	wantRoot, _ := filepath.EvalSymlinks(dir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Fatalf("expected root %q, got %q", wantRoot, gotRoot)
	}

	branch, err := CurrentBranch(dir)
	if err != nil {
		t.Fatalf("CurrentBranch error: %v", err)
	}
	if branch == "" {
		t.Fatalf("expected a branch name")
	}

	summary, err := LastCommitSummary(dir)
	if err != nil {
		t.Fatalf("LastCommitSummary error: %v", err)
	}
	if !strings.Contains(summary, "first commit") {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func mustRun(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("command %s %v failed: %v\n%s", name, args, err, out)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
