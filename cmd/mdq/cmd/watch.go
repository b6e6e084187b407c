package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mdquery/mdq/internal/pipeline"
	"github.com/mdquery/mdq/internal/watcher"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the index in sync as note files change",
		Long: `Watch runs an initial sync, then watches the source tree and re-syncs
whenever files change. The checksum store keeps re-syncs cheap: only
changed files are reparsed and reindexed. Stop with Ctrl-C.`,
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

			fsw, err := watcher.New(a.cfg.SourceGlob, watcher.Options{DebounceWindow: debounce})
			if err != nil {
				return err
			}
			defer fsw.Close()

			ctx := cmd.Context()
			go fsw.Run(ctx)

			w.Successf("watching %s", watcher.GlobRoot(a.cfg.SourceGlob))
			for {
				select {
				case <-ctx.Done():
					return nil
				case _, ok := <-fsw.Ticks():
					if !ok {
						return nil
					}
					report, err := a.sync(ctx, pipeline.WithOnOutcome(w.Outcome))
					if err != nil {
						// Index write failures at this point are fatal;
						// a stale watch loop helps nobody.
						return err
					}
					if report.Indexed() > 0 || len(report.Failures) > 0 {
						w.Report(report)
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounceWindow,
		"Quiet period before a change triggers a re-sync")
	return cmd
}
