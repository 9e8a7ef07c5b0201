package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for wordseek
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordseek",
		Short: "Word search puzzle solver",
		Long: `Wordseek finds the words of a word bank inside a rectangular letter
grid, scanning all eight directions with wraparound at the grid edges.

It reads a puzzle file (letters separated by spaces) and a word bank
file (one word per line, or a Markdown list), and writes a solution
file showing only the letters that belong to found words.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewSolveCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
