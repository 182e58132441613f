package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/amanteaux/daogen/compiler/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		flags    settingsFlags
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate code when the schema document changes",
		Long: `Generate code, then regenerate it each time the schema document or the
configuration file changes. Failed runs are logged and watching goes on.
Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, config, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if s.Schema == "" {
				return errors.New("watch requires a schema document (use --schema)")
			}
			out := cmd.OutOrStdout()
			run := func(ctx context.Context) error {
				// The configuration file may have changed.
				s, _, err := flags.resolve(cmd)
				if err == nil {
					err = a.generate(ctx, out, s, false)
				}
				if err != nil {
					a.logger.Error("generation failed", "error", err)
				}
				return nil
			}
			ctx := cmd.Context()
			if err := run(ctx); err != nil {
				return err
			}
			paths := []string{s.Schema}
			if config != "" {
				paths = append(paths, config)
			}
			a.logger.Info("watching", "paths", paths)
			return watch.Watch(ctx, paths, debounce, run)
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before regenerating")
	return cmd
}
