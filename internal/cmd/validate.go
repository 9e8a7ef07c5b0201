package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codeyimin/wordseek/internal/puzzle"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <puzzle-file> [wordbank-file...]",
		Short: "Check puzzle and word bank files without solving",
		Long: `Parse the given files and report format problems, checking for:
  - Rows with unequal widths (ragged grids)
  - Tokens that are not single characters
  - Empty puzzle or word bank files
  - Words containing embedded whitespace

The first argument is parsed as a puzzle grid; any further arguments are
parsed as word banks.

Exit code: 0 if all files are well-formed, 1 otherwise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateFiles(args[0], args[1:], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateFiles parses the puzzle and each word bank, printing one line per
// file. Returns an error if any file is malformed.
func validateFiles(puzzlePath string, bankPaths []string, out io.Writer) error {
	failures := 0

	grid, err := puzzle.LoadGrid(puzzlePath)
	if err != nil {
		failures++
		fmt.Fprintf(out, "FAIL %s: %v\n", puzzlePath, err)
	} else {
		fmt.Fprintf(out, "OK   %s: %dx%d grid\n", puzzlePath, grid.Height(), grid.Width())
	}

	for _, bankPath := range bankPaths {
		bank, err := puzzle.LoadWordBank(bankPath)
		if err != nil {
			failures++
			fmt.Fprintf(out, "FAIL %s: %v\n", bankPath, err)
			continue
		}
		fmt.Fprintf(out, "OK   %s: %d words\n", bankPath, len(bank))
	}

	if failures > 0 {
		return fmt.Errorf("%d file(s) failed validation", failures)
	}
	return nil
}
