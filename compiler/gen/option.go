package gen

import (
	"errors"
	"go/token"
	"strconv"
	"strings"
)

// DefaultHeader is the header of regenerated files.
const DefaultHeader = "Code generated by daogen. DO NOT EDIT."

// Config holds the code generation configuration.
type Config struct {
	// Target is the directory generated files are written to.
	Target string
	// Module is the import path of Target.
	Module string
	// Package is the dot-separated root package of regenerated artifacts,
	// relative to Target. For example "db.gen".
	Package string
	// ChildPackage is the root package of generate-once artifacts. Required
	// only when generating child entities.
	ChildPackage string
	// GenerateID enables identity generation on insert in the generated
	// DAOs.
	GenerateID bool
	// Extension is the file extension of generated files, without the dot.
	Extension string
	// Header is the header comment of regenerated files.
	Header string
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithModule sets the import path of the output directory.
// For example: "github.com/org/project/internal/db".
func WithModule(module string) Option {
	return func(c *Config) error {
		if module == "" {
			return NewConfigError("Module", nil, "module cannot be empty")
		}
		c.Module = strings.TrimSuffix(module, "/")
		return nil
	}
}

// WithPackage sets the root package of regenerated artifacts.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if err := checkPackage("Package", pkg); err != nil {
			return err
		}
		c.Package = pkg
		return nil
	}
}

// WithChildPackage sets the root package of generate-once artifacts.
func WithChildPackage(pkg string) Option {
	return func(c *Config) error {
		if err := checkPackage("ChildPackage", pkg); err != nil {
			return err
		}
		c.ChildPackage = pkg
		return nil
	}
}

// WithGenerateID enables or disables identity generation on insert.
func WithGenerateID(enabled bool) Option {
	return func(c *Config) error {
		c.GenerateID = enabled
		return nil
	}
}

// WithExtension sets the extension of generated files.
func WithExtension(ext string) Option {
	return func(c *Config) error {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" || strings.ContainsAny(ext, `/\`) {
			return NewConfigError("Extension", ext, "invalid file extension")
		}
		c.Extension = ext
		return nil
	}
}

// WithHeader sets the file header comment of regenerated files.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks that the options needed by every run are set.
func (c *Config) Validate() error {
	switch {
	case c.Target == "":
		return NewConfigError("Target", nil, "target directory is required")
	case c.Module == "":
		return NewConfigError("Module", nil, "module is required")
	case c.Package == "":
		return NewConfigError("Package", nil, "package is required")
	}
	return checkPackage("Package", c.Package)
}

func (c *Config) header() string {
	if c.Header == "" {
		return DefaultHeader
	}
	return c.Header
}

func (c *Config) extension() string {
	if c.Extension == "" {
		return "go"
	}
	return c.Extension
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Extension: "go"}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// checkPackage checks that every segment of a dotted package is a Go
// identifier.
func checkPackage(option, pkg string) error {
	if pkg == "" {
		return NewConfigError(option, nil, "package cannot be empty")
	}
	for seg := range strings.SplitSeq(pkg, ".") {
		if !token.IsIdentifier(seg) {
			return NewConfigError(option, pkg, "invalid package segment "+strconv.Quote(seg))
		}
	}
	return nil
}
