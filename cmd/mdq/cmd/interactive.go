package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mdquery/mdq/internal/tui"
)

// runInteractive backs the bare mdq invocation: sync, then the
// interactive search screen. An accepted selection is printed as JSON
// so the output can be piped onward.
func runInteractive(ctx context.Context, cmd *cobra.Command) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	w := newOutputWriter(cmd)
	if _, err := a.sync(ctx); err != nil {
		return err
	}

	if !w.IsTTY() {
		return cmd.Help()
	}

	model, err := tui.Run(a.executor)
	if err != nil {
		return err
	}

	if model.Status() == tui.StatusAccepted {
		if doc := model.Selection(); doc != nil {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(doc)
		}
	}
	return nil
}
