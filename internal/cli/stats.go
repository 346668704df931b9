package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/diffscope/internal/diff"
)

func newStatsCmd() *cobra.Command {
	var (
		jsonOut bool
		staged  bool
	)

	cmd := &cobra.Command{
		Use:   "stats [FILE]",
		Short: "Print change counts for a unified diff",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDiffInput(cmd, args, staged)
			if err != nil {
				return err
			}

			s := diff.Summarize(diff.Parse(text, false))
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(s)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the stats as JSON")
	cmd.Flags().BoolVar(&staged, "staged", false, "Use the staged diff when reading from the repository")
	return cmd
}
