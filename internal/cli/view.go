package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/diffscope/internal/gitx"
	"github.com/interpretive-systems/diffscope/internal/tui"
)

func newViewCmd() *cobra.Command {
	var (
		staged    bool
		collapsed bool
		themeName string
		report    string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive diff viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := mustGetStringFlag(cmd.Root(), "repo")
			root, err := gitx.RepoRoot(repoPath)
			if err != nil {
				return fmt.Errorf("not a git repo: %w", err)
			}

			outcome, err := tui.Run(root, tui.Options{
				Staged:    staged,
				Collapsed: collapsed,
				Theme:     themeName,
			})
			if err != nil {
				return err
			}

			switch report {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(outcome)
			case "plain":
				if outcome.Note != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", outcome.Decision, outcome.Note)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), outcome.Decision)
				}
				return nil
			case "none":
				return nil
			default:
				return fmt.Errorf("unknown report format %q", report)
			}
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "Start on the staged diff")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Start with all files and hunks collapsed")
	cmd.Flags().StringVar(&themeName, "theme", "", "Theme name (dark or light)")
	cmd.Flags().StringVar(&report, "report", "none", "Print the session outcome on exit: json, plain, or none")
	return cmd
}
