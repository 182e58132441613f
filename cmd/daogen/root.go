package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// app holds the state shared by the commands.
type app struct {
	debug  bool
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}
	root := &cobra.Command{
		Use:   "daogen",
		Short: "Generate DAOs from database schemas",
		Long: `daogen generates table descriptors, value types, records and DAOs
from a schema document or a live database.

Commands:
  generate  Generate code once
  inspect   Dump a database schema to a schema document
  watch     Regenerate code when the schema document changes

Use "daogen [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.setupLogger(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	root.AddCommand(newGenerateCmd(a), newInspectCmd(a), newWatchCmd(a))
	return root
}

func (a *app) setupLogger(w io.Writer) {
	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
