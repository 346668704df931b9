package gitx

import (
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// FileChange represents a changed file in the repo.
type FileChange struct {
	Path      string
	Staged    bool
	Unstaged  bool
	Untracked bool
	Binary    bool
	Deleted   bool
}

// RepoRoot resolves the git repository root from a given path (or current dir).
func RepoRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("rev-parse: %w", err)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.New("empty git root")
	}
	return root, nil
}

// ChangedFiles lists files changed relative to HEAD, combining staged, unstaged, and untracked.
func ChangedFiles(repoRoot string) ([]FileChange, error) {
	unstaged, err := listNames(repoRoot, []string{"diff", "--name-only", "--diff-filter=ACDMRTUXB"})
	if err != nil {
		return nil, err
	}
	staged, err := listNames(repoRoot, []string{"diff", "--name-only", "--cached", "--diff-filter=ACDMRTUXB"})
	if err != nil {
		return nil, err
	}
	untracked, err := listNames(repoRoot, []string{"ls-files", "--others", "--exclude-standard"})
	if err != nil {
		return nil, err
	}
	deletedUnstaged, _ := listNames(repoRoot, []string{"ls-files", "-d"})
	deletedStaged, _ := listNames(repoRoot, []string{"diff", "--cached", "--name-only", "--diff-filter=D"})

	m := map[string]*FileChange{}
	mark := func(paths []string, fn func(fc *FileChange)) {
		for _, p := range paths {
			if p == "" {
				continue
			}
			fc := m[p]
			if fc == nil {
				fc = &FileChange{Path: p}
				m[p] = fc
			}
			fn(fc)
		}
	}
	mark(unstaged, func(fc *FileChange) { fc.Unstaged = true })
	mark(staged, func(fc *FileChange) { fc.Staged = true })
	mark(untracked, func(fc *FileChange) { fc.Untracked = true })
	mark(deletedUnstaged, func(fc *FileChange) { fc.Deleted = true; fc.Unstaged = true })
	mark(deletedStaged, func(fc *FileChange) { fc.Deleted = true; fc.Staged = true })

	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]FileChange, 0, len(paths))
	for _, p := range paths {
		fc := m[p]
		if isBinary(repoRoot, p) {
			fc.Binary = true
		}
		out = append(out, *fc)
	}
	return out, nil
}

func listNames(repoRoot string, args []string) ([]string, error) {
	a := append([]string{"-C", repoRoot}, args...)
	cmd := exec.Command("git", a...)
	b, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %v: %w", strings.Join(args, " "), err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out, nil
}

// DiffWorktree returns one unified diff of the working tree against HEAD,
// untracked files appended as diffs against /dev/null.
func DiffWorktree(repoRoot string) (string, error) {
	base, err := diffOutput([]string{"-C", repoRoot, "diff", "--no-color", "--text", "HEAD"})
	if err != nil {
		return "", err
	}
	untracked, err := listNames(repoRoot, []string{"ls-files", "--others", "--exclude-standard"})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, p := range untracked {
		d, err := diffOutput([]string{"-C", repoRoot, "diff", "--no-color", "--no-index", "--text", "/dev/null", p})
		if err != nil {
			continue
		}
		sb.WriteString(d)
	}
	return sb.String(), nil
}

// DiffStaged returns a unified diff of the index against HEAD.
func DiffStaged(repoRoot string) (string, error) {
	return diffOutput([]string{"-C", repoRoot, "diff", "--cached", "--no-color", "--text"})
}

// DiffFile returns a unified diff between HEAD and the working tree for a
// single file, falling back to /dev/null for untracked paths.
func DiffFile(repoRoot, path string) (string, error) {
	if isTracked(repoRoot, path) {
		return diffOutput([]string{"-C", repoRoot, "diff", "--no-color", "--text", "HEAD", "--", path})
	}
	return diffOutput([]string{"-C", repoRoot, "diff", "--no-color", "--no-index", "--text", "/dev/null", path})
}

// diffOutput runs a git diff command, tolerating the exit status 1 that
// --no-index uses to signal differences.
func diffOutput(args []string) (string, error) {
	cmd := exec.Command("git", args...)
	b, err := cmd.Output()
	if err != nil && len(b) == 0 {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("git diff: %w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("git diff: %w", err)
	}
	return string(b), nil
}

func isBinary(repoRoot, path string) bool {
	var args []string
	if isTracked(repoRoot, path) {
		args = []string{"-C", repoRoot, "diff", "--numstat", "HEAD", "--", path}
	} else {
		args = []string{"-C", repoRoot, "diff", "--numstat", "--no-index", "/dev/null", path}
	}
	cmd := exec.Command("git", args...)
	b, _ := cmd.Output()
	line := strings.TrimSpace(string(b))
	if line == "" {
		return false
	}
	// numstat prints "-\t-\tpath" for binary files
	parts := strings.Split(line, "\t")
	return len(parts) >= 2 && (parts[0] == "-" || parts[1] == "-")
}

func isTracked(repoRoot, path string) bool {
	cmd := exec.Command("git", "-C", repoRoot, "ls-files", "--error-unmatch", "--", path)
	return cmd.Run() == nil
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch(repoRoot string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "rev-parse", "--abbrev-ref", "HEAD")
	b, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("rev-parse: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// LastCommitSummary returns short hash and subject of last commit.
func LastCommitSummary(repoRoot string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "log", "-1", "--pretty=format:%h %s")
	b, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git log: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
