package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// newQueryCmd creates the query command.
func newQueryCmd() *cobra.Command {
	var noSync bool

	cmd := &cobra.Command{
		Use:   "query <terms...>",
		Short: "Run one search and print matches as JSON lines",
		Long: `Query brings the index up to date, runs a single search and prints one
JSON object per match in rank order. Queries support free text, field
qualifiers (title:, author:, tags:, date:), quoted phrases and boolean
operators.

Example:

  mdq query 'tags:gardening +title:tomato'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			w := newOutputWriter(cmd)
			if !noSync {
				if _, err := a.sync(cmd.Context()); err != nil {
					return err
				}
			}

			docs, err := a.executor.Execute(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return w.Documents(docs)
		},
	}

	cmd.Flags().BoolVar(&noSync, "no-sync", false, "Query the existing index without syncing first")
	return cmd
}
