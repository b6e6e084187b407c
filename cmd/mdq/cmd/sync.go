package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mdquery/mdq/internal/pipeline"
)

// newSyncCmd creates the sync command.
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Bring the index up to date with the note files",
		Long: `Sync expands the configured source glob, parses each changed note's
front matter and reconciles the index. Unchanged files are skipped via
their checksum; broken files are reported and skipped without aborting
the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			w := newOutputWriter(cmd)
			report, err := a.sync(cmd.Context(), pipeline.WithOnOutcome(w.Outcome))
			if err != nil {
				return err
			}
			w.Report(report)
			return nil
		},
	}
}
