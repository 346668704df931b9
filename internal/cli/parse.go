package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/diffscope/internal/diff"
)

type parseOutput struct {
	Files []diff.File `json:"files"`
	Stats diff.Stats  `json:"stats"`
}

func newParseCmd() *cobra.Command {
	var (
		noWords   bool
		compact   bool
		collapsed bool
		staged    bool
	)

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Parse a unified diff and print it as JSON",
		Long: "Parse reads a unified diff from FILE, from piped stdin (or an explicit \"-\"),\n" +
			"or, with neither, from the repository's current diff, and prints the parsed\n" +
			"structure as JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDiffInput(cmd, args, staged)
			if err != nil {
				return err
			}

			files := diff.Parse(text, !collapsed)
			if !noWords {
				diff.Annotate(files)
			}
			if files == nil {
				files = []diff.File{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(parseOutput{Files: files, Stats: diff.Summarize(files)})
		},
	}

	cmd.Flags().BoolVar(&noWords, "no-words", false, "Skip word-level change annotation")
	cmd.Flags().BoolVar(&compact, "compact", false, "Emit single-line JSON")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Mark all files and hunks collapsed")
	cmd.Flags().BoolVar(&staged, "staged", false, "Use the staged diff when reading from the repository")
	return cmd
}
