package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeyimin/wordseek/internal/config"
	"github.com/codeyimin/wordseek/internal/history"
)

// NewHistoryCommand creates the history command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the solve history database",
		Long: `Inspect or reset the local database of past solves.

Every successful solve is recorded (unless --no-history was given) with
the puzzle and word bank files, grid dimensions, how many words were
found, and how long the search took.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .wordseek/config.yaml)")
	cmd.PersistentFlags().String("db", "", "Path to history database (overrides config)")

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryStatsCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent solves, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			records, err := store.List(context.Background(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No solves recorded yet")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(out, "%s  %s + %s  %dx%d  %d/%d words  %s\n",
					rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
					rec.PuzzleFile,
					rec.BankFile,
					rec.GridHeight, rec.GridWidth,
					rec.WordsFound, rec.BankSize,
					rec.Duration.Round(time.Microsecond))
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().Int("limit", 20, "Maximum number of solves to show (0 = all)")
	return cmd
}

func newHistoryStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics over all recorded solves",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Solve History Statistics:\n")
			fmt.Fprintf(out, "  Total solves: %d\n", stats.TotalSolves)
			fmt.Fprintf(out, "  Words found: %d\n", stats.TotalWordsFound)
			fmt.Fprintf(out, "  Letters marked: %d\n", stats.TotalCells)
			fmt.Fprintf(out, "  Average duration: %s\n", stats.AvgDuration.Round(time.Microsecond))
			return nil
		},
		SilenceUsage: true,
	}
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded solves",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Solve history cleared")
			return nil
		},
		SilenceUsage: true,
	}
}

// openHistoryStore resolves the database path from flags and config and
// opens the store.
func openHistoryStore(cmd *cobra.Command) (*history.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.DefaultPath
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		dbPath = cfg.History.DBPath
	}
	return history.NewStore(dbPath)
}
