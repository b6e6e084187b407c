// Package cmd provides the CLI commands for mdq.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mdquery/mdq/internal/config"
	"github.com/mdquery/mdq/internal/logging"
	"github.com/mdquery/mdq/internal/output"
	"github.com/mdquery/mdq/pkg/version"
)

// Persistent flags shared by all commands.
var (
	configPath string
	sourceGlob string
	indexPath  string
	verbose    bool
	debugMode  bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the mdq CLI. Running mdq with
// no subcommand syncs the index and drops into the interactive search
// screen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdq",
		Short: "Index and search Markdown notes with YAML front matter",
		Long: `mdq indexes a tree of Markdown notes carrying YAML front matter
(title, date, tags, author) into a local full-text index and searches it.

Running mdq with no subcommand brings the index up to date and opens the
interactive search screen: type to search, arrow keys to move, Enter to
select, Ctrl-C to quit.`,
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), cmd)
		},
	}

	cmd.SetVersionTemplate("mdq version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/mdq/mdq.toml)")
	cmd.PersistentFlags().StringVarP(&sourceGlob, "source", "s", "", "Glob selecting the note files to index")
	cmd.PersistentFlags().StringVar(&indexPath, "index-path", "", "Index directory (overrides config)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Echo every file as it is processed")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.mdq/logs/")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = teardownLogging

	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with signal-aware context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// setupLogging routes structured logs to the log file. Debug mode raises
// the level and mirrors records to stderr; otherwise the terminal stays
// clean for command output.
func setupLogging(_ *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	logCfg.WriteToStderr = false
	if debugMode {
		logCfg = logging.DebugConfig()
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		// Logging is best effort; a read-only home must not block a query.
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}
	slog.SetDefault(logger)
	loggingCleanup = cleanup
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
}

// loadConfig loads the config file and layers the CLI flag overrides on
// top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if sourceGlob != "" {
		cfg.SourceGlob = sourceGlob
	}
	if indexPath != "" {
		cfg.IndexPath = indexPath
	}
	return cfg, nil
}

// newOutputWriter builds the stdout writer honoring the verbose flag.
func newOutputWriter(cmd *cobra.Command) *output.Writer {
	w := output.New(cmd.OutOrStdout())
	w.SetVerbose(verbose)
	return w
}
