package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/codeyimin/wordseek/internal/config"
	"github.com/codeyimin/wordseek/internal/history"
	"github.com/codeyimin/wordseek/internal/logger"
	"github.com/codeyimin/wordseek/internal/puzzle"
	"github.com/codeyimin/wordseek/internal/render"
	"github.com/codeyimin/wordseek/internal/solver"
)

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [puzzle-file] [wordbank-file]",
		Short: "Solve a word search puzzle",
		Long: `Solve a word search puzzle and write the solution to a file.

The puzzle file is a rectangular grid of single characters separated by
spaces. The word bank file lists one word per line; files ending in .md
are parsed as Markdown and every list item or bare line becomes a word.

Words are matched in all eight directions and wrap around the grid
edges. The solution file shows only the letters that belong to a found
word, everything else is blanked out.

If the file names are omitted, solve prompts for them on stdin.

Configuration is loaded from .wordseek/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  wordseek solve puzzle.txt words.txt
  wordseek solve puzzle.txt words.md --output solved.txt
  wordseek solve --workers 4 puzzle.txt words.txt
  wordseek solve --placeholder . puzzle.txt words.txt
  wordseek solve --verbose puzzle.txt words.txt
  wordseek solve --no-history puzzle.txt words.txt`,
		Args:         cobra.MaximumNArgs(2),
		RunE:         runSolve,
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .wordseek/config.yaml)")
	cmd.Flags().StringP("output", "o", "", "Path of the solution file (default: solution.txt)")
	cmd.Flags().String("placeholder", "", "Character printed for letters not in any word (default: space)")
	cmd.Flags().Int("workers", 0, "Number of solver goroutines (0 = use config)")
	cmd.Flags().String("color", "", "Colorized grid display: auto, always, never")
	cmd.Flags().BoolP("verbose", "v", false, "List every word placement found")
	cmd.Flags().Bool("no-history", false, "Do not record this solve in the history database")

	return cmd
}

// runSolve implements the solve command logic
func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadSolveConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	puzzlePath, bankPath, err := resolveInputPaths(cmd, args)
	if err != nil {
		return err
	}

	grid, err := puzzle.LoadGrid(puzzlePath)
	if err != nil {
		return err
	}
	bank, err := puzzle.LoadWordBank(bankPath)
	if err != nil {
		return err
	}
	log.Debugf("loaded %dx%d grid from %s, %d words from %s",
		grid.Height(), grid.Width(), puzzlePath, len(bank), bankPath)

	start := time.Now()
	s := &solver.Solver{Workers: cfg.Workers}
	solution := s.Solve(grid, bank)
	elapsed := time.Since(start)

	if err := render.WriteFile(cfg.Output, grid, solution.Mask, cfg.PlaceholderRune()); err != nil {
		return fmt.Errorf("failed to write solution file: %w", err)
	}

	out := cmd.OutOrStdout()
	found := solution.WordsFound()
	fmt.Fprintf(out, "Found %d of %d words (%d letters marked) in %s\n",
		len(found), len(bank), solution.Mask.Count(), elapsed.Round(time.Microsecond))
	fmt.Fprintf(out, "Solution written to %s\n", cfg.Output)

	if verbose {
		for _, m := range solution.Matches {
			orientation := "forward"
			if m.Reversed {
				orientation = "reversed"
			}
			fmt.Fprintf(out, "  %-12s at row %d, col %d (%s, %s)\n",
				m.Word, m.Row+1, m.Col+1, m.Axis(), orientation)
		}
	}

	if show, force := showColorGrid(cfg, out); show {
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Colorized(grid, solution.Mask, force))
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg.History.Enabled && !noHistory {
		if err := recordSolve(cfg, puzzlePath, bankPath, grid, bank, solution, elapsed); err != nil {
			// History is best-effort bookkeeping, never a reason to fail
			// a solve that already produced its artifact.
			log.Warnf("failed to record solve history: %v", err)
		}
	}

	return nil
}

// loadSolveConfig loads the config file and applies flag overrides.
func loadSolveConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.Output = output
	}
	if placeholder, _ := cmd.Flags().GetString("placeholder"); placeholder != "" {
		cfg.Placeholder = placeholder
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Workers = workers
	}
	if colorMode, _ := cmd.Flags().GetString("color"); colorMode != "" {
		cfg.Color = colorMode
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveInputPaths takes the puzzle and word bank paths from args, and
// prompts on stdin for any that are missing.
func resolveInputPaths(cmd *cobra.Command, args []string) (string, string, error) {
	var puzzlePath, bankPath string
	if len(args) > 0 {
		puzzlePath = args[0]
	}
	if len(args) > 1 {
		bankPath = args[1]
	}

	if puzzlePath != "" && bankPath != "" {
		return puzzlePath, bankPath, nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	var err error
	if puzzlePath == "" {
		puzzlePath, err = promptLine(reader, out, "Enter puzzle file name: ")
		if err != nil {
			return "", "", err
		}
	}
	if bankPath == "" {
		bankPath, err = promptLine(reader, out, "Enter word bank file name: ")
		if err != nil {
			return "", "", err
		}
	}
	return puzzlePath, bankPath, nil
}

func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read file name: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no file name given")
	}
	return line, nil
}

// showColorGrid decides whether to print the colorized grid to out, and
// whether color codes must be forced past the library's TTY detection.
func showColorGrid(cfg *config.Config, out io.Writer) (show, force bool) {
	switch cfg.Color {
	case "never":
		return false, false
	case "always":
		return true, true
	default:
		return out == os.Stdout && isatty.IsTerminal(os.Stdout.Fd()), false
	}
}

// recordSolve appends the solve to the history database and prunes old
// records per the configured retention.
func recordSolve(cfg *config.Config, puzzlePath, bankPath string, grid *puzzle.Grid, bank puzzle.WordBank, solution *solver.Solution, elapsed time.Duration) error {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.Prune(ctx, cfg.History.KeepDays); err != nil {
		return err
	}
	return store.Record(ctx, &history.Record{
		PuzzleFile:  puzzlePath,
		BankFile:    bankPath,
		GridHeight:  grid.Height(),
		GridWidth:   grid.Width(),
		BankSize:    len(bank),
		WordsFound:  len(solution.WordsFound()),
		CellsMarked: solution.Mask.Count(),
		Duration:    elapsed,
	})
}
