package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/amanteaux/daogen/compiler/gen"
	"github.com/amanteaux/daogen/compiler/gen/sql"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		flags  settingsFlags
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code from a schema document or a database",
		Long: `Generate table descriptors, value types, interfaces, records and DAO bases
for every table. With --children, beans and DAO children are also generated,
once: existing files are never overwritten.

The command exits with a non-zero status when an artifact could not be
generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return a.generate(cmd.Context(), cmd.OutOrStdout(), s, dryRun)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render without writing and list the files")
	return cmd
}

// generate runs one generation and prints its summary. It fails when the
// report is not clean.
func (a *app) generate(ctx context.Context, out io.Writer, s *settings, dryRun bool) error {
	c, err := s.genConfig()
	if err != nil {
		return err
	}
	db, err := s.model(ctx)
	if err != nil {
		return err
	}
	opts := []gen.GeneratorOption{gen.WithLogger(a.logger)}
	var mem *gen.DryRunWriter
	if dryRun {
		mem = gen.NewDryRunWriter(c.Target)
		opts = append(opts, gen.WithWriter(mem))
	}
	g, err := sql.NewGenerator(c, opts...)
	if err != nil {
		return err
	}
	run := g.Generate
	if s.Children {
		run = g.GenerateWithChildren
	}
	report, err := run(db)
	if err != nil {
		return err
	}
	if mem != nil {
		for _, p := range mem.Paths() {
			fmt.Fprintln(out, p)
		}
	}
	if s.Report != "" {
		if err := report.WriteFile(s.Report); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, report.Summary())
	if !report.Clean() {
		return fmt.Errorf("generation failed: %w", report.Err())
	}
	return nil
}
