package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amanteaux/daogen/compiler/load"
)

func newInspectCmd(a *app) *cobra.Command {
	var dsn, schemas, output string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump a database schema to a schema document",
		Long: `Inspect the tables, columns and keys of a database and write them as a
YAML schema document that "daogen generate --schema" accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				dsn = os.Getenv(DSNEnv)
			}
			if dsn == "" {
				return fmt.Errorf("database url is required (use --dsn flag or %s environment variable)", DSNEnv)
			}
			db, err := load.Inspect(cmd.Context(), dsn, splitList(schemas)...)
			if err != nil {
				return err
			}
			a.logger.Debug("inspected database", "schemas", len(db.Schemas), "tables", db.Tables())
			buf, err := load.Marshal(db)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(buf)
				return err
			}
			if err := os.WriteFile(output, buf, 0o644); err != nil {
				return fmt.Errorf("write schema document: %w", err)
			}
			a.logger.Info("schema document written", "path", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "Database URL (env: "+DSNEnv+")")
	cmd.Flags().StringVar(&schemas, "schemas", "", "Comma separated schemas to inspect (default: all)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
