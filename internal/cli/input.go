package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/diffscope/internal/gitx"
)

// readDiffInput resolves the diff text for parse and stats: a FILE
// argument, "-" or piped stdin, or, interactively with no argument,
// the repository's current diff.
func readDiffInput(cmd *cobra.Command, args []string, staged bool) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(b), nil
	}

	if (len(args) > 0 && args[0] == "-") || stdinIsPipe() {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	repoPath := mustGetStringFlag(cmd.Root(), "repo")
	root, err := gitx.RepoRoot(repoPath)
	if err != nil {
		return "", fmt.Errorf("not a git repo: %w", err)
	}
	if staged {
		return gitx.DiffStaged(root)
	}
	return gitx.DiffWorktree(root)
}

func stdinIsPipe() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
