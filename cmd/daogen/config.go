package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/amanteaux/daogen/compiler/gen"
	"github.com/amanteaux/daogen/compiler/load"
	"github.com/amanteaux/daogen/schema"
)

// DSNEnv names the environment variable read when no schema source is set.
const DSNEnv = "DAOGEN_DSN"

// defaultConfigFiles are looked up in the working directory when --config
// is not set.
var defaultConfigFiles = []string{"daogen.yaml", "daogen.yml", "daogen.toml"}

// settings is the configuration of a generation run. It is read from the
// configuration file and overridden by flags.
type settings struct {
	Schema       string   `yaml:"schema" toml:"schema"`
	DSN          string   `yaml:"dsn" toml:"dsn"`
	Schemas      []string `yaml:"schemas" toml:"schemas"`
	Target       string   `yaml:"target" toml:"target"`
	Module       string   `yaml:"module" toml:"module"`
	Package      string   `yaml:"package" toml:"package"`
	ChildPackage string   `yaml:"child_package" toml:"child_package"`
	Children     bool     `yaml:"children" toml:"children"`
	GenerateID   bool     `yaml:"generate_id" toml:"generate_id"`
	Extension    string   `yaml:"extension" toml:"extension"`
	Header       string   `yaml:"header" toml:"header"`
	Report       string   `yaml:"report" toml:"report"`
}

// settingsFlags binds the command line flags of settings.
type settingsFlags struct {
	config  string
	schemas string
	s       settings
}

// settingFlagNames lists the flags bound to settings fields.
var settingFlagNames = []string{
	"schema", "dsn", "target", "module", "package", "child-package",
	"children", "generate-id", "extension", "header", "report",
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "Configuration file, yaml or toml (default: daogen.yaml or daogen.toml when present)")
	fs.StringVar(&f.s.Schema, "schema", "", "Schema document to generate from")
	fs.StringVar(&f.s.DSN, "dsn", "", "Database URL to inspect (env: "+DSNEnv+")")
	fs.StringVar(&f.schemas, "schemas", "", "Comma separated schemas to inspect (default: all)")
	fs.StringVar(&f.s.Target, "target", "", "Output directory")
	fs.StringVar(&f.s.Module, "module", "", "Import path of the output directory")
	fs.StringVar(&f.s.Package, "package", "", "Dotted root package of regenerated code")
	fs.StringVar(&f.s.ChildPackage, "child-package", "", "Dotted root package of generate-once code")
	fs.BoolVar(&f.s.Children, "children", false, "Also generate beans and DAO children once")
	fs.BoolVar(&f.s.GenerateID, "generate-id", false, "Generate identities on insert")
	fs.StringVar(&f.s.Extension, "extension", "go", "Extension of generated files")
	fs.StringVar(&f.s.Header, "header", "", "Header comment of regenerated files")
	fs.StringVar(&f.s.Report, "report", "", "Write the run report to this file (.json, .yaml or .msgpack)")
}

// resolve merges the configuration file with the flags set on cmd.
func (f *settingsFlags) resolve(cmd *cobra.Command) (*settings, string, error) {
	changed := make(map[string]string)
	for _, name := range settingFlagNames {
		if fl := cmd.Flags().Lookup(name); fl != nil && fl.Changed {
			changed[name] = fl.Value.String()
		}
	}
	path, err := configPath(f.config)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := readSettings(path, &f.s); err != nil {
			return nil, "", err
		}
		for name, v := range changed {
			if err := cmd.Flags().Set(name, v); err != nil {
				return nil, "", err
			}
		}
	}
	s := f.s
	if cmd.Flags().Changed("schemas") {
		s.Schemas = splitList(f.schemas)
	}
	if s.Schema == "" && s.DSN == "" {
		s.DSN = os.Getenv(DSNEnv)
	}
	return &s, path, nil
}

func configPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	for _, name := range defaultConfigFiles {
		switch _, err := os.Stat(name); {
		case err == nil:
			return name, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", err
		}
	}
	return "", nil
}

// readSettings decodes the configuration file at path into s. Unknown keys
// are rejected.
func readSettings(path string, s *settings) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, s)
		if err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return fmt.Errorf("read config %s: unknown key %q", path, keys[0].String())
		}
		return nil
	case ".yaml", ".yml", ".json":
		buf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("read config %s: unsupported format", path)
}

func splitList(s string) []string {
	var list []string
	for v := range strings.SplitSeq(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}

// genConfig returns the code generation configuration of s.
func (s *settings) genConfig() (*gen.Config, error) {
	opts := []gen.Option{
		gen.WithTarget(s.Target),
		gen.WithModule(s.Module),
		gen.WithPackage(s.Package),
		gen.WithGenerateID(s.GenerateID),
	}
	if s.ChildPackage != "" {
		opts = append(opts, gen.WithChildPackage(s.ChildPackage))
	}
	if s.Extension != "" {
		opts = append(opts, gen.WithExtension(s.Extension))
	}
	if s.Header != "" {
		opts = append(opts, gen.WithHeader(s.Header))
	}
	c := &gen.Config{Extension: "go"}
	if err := c.ApplyAll(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// model loads the schema model from the schema document or the database.
func (s *settings) model(ctx context.Context) (*schema.Database, error) {
	switch {
	case s.Schema != "" && s.DSN != "":
		return nil, errors.New("both a schema document and a database url are set")
	case s.Schema != "":
		return load.LoadFile(s.Schema)
	case s.DSN != "":
		return load.Inspect(ctx, s.DSN, s.Schemas...)
	}
	return nil, fmt.Errorf("no schema source: use --schema, --dsn or %s", DSNEnv)
}
