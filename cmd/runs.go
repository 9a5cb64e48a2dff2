package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pmxbuilder/internal/journal"
	"github.com/zjrosen/pmxbuilder/internal/presentation"
)

var (
	runsLimit int
	runsKeep  int
)

func openJournal() (*journal.DB, error) {
	if !cfg.Journal.Enabled {
		return nil, fmt.Errorf("the run journal is disabled (set journal.enabled: true)")
	}
	return journal.Open(cfg.Journal.Path)
}

var runsListCmd = &cobra.Command{
	Use:   "runs:list",
	Short: "List journaled build runs",
	Long: `List journaled build runs as JSON, newest first.

Examples:
  pmx-builder runs:list
  pmx-builder runs:list --limit 5
  pmx-builder runs:list | jq '.[] | select(.links.failed > 0) | .run_id'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openJournal()
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.List(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatRuns(presentation.FromJournalRuns(runs))
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "runs:show <run-id>",
	Short: "Show the link records of a journaled run",
	Long: `Show every link record of one run as JSON. Link records are only journaled
when the journal-links flag is enabled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openJournal()
		if err != nil {
			return err
		}
		defer db.Close()

		if _, err := db.Get(cmd.Context(), args[0]); err != nil {
			return err
		}
		links, err := db.Links(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatLinks(presentation.FromJournalLinks(links))
	},
}

var runsPruneCmd = &cobra.Command{
	Use:   "runs:prune",
	Short: "Delete all but the newest journaled runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runsKeep < 0 {
			return fmt.Errorf("--keep must not be negative")
		}
		db, err := openJournal()
		if err != nil {
			return err
		}
		defer db.Close()

		removed, err := db.Prune(cmd.Context(), runsKeep)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", removed)
		return err
	},
}

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
	runsPruneCmd.Flags().IntVar(&runsKeep, "keep", 50, "number of runs to keep")
	rootCmd.AddCommand(runsListCmd)
	rootCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsPruneCmd)
}
