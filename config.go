package daogen

import (
	"context"
	"database/sql"
	"log/slog"
)

// ExecQuerier wraps the standard Exec and Query methods.
// *sql.DB, *sql.Tx and *sql.Conn implement it.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Configuration is handed to the constructors of generated DAOs.
type Configuration struct {
	// Driver executes the statements.
	Driver ExecQuerier
	// Dialect is one of the dialect package names.
	Dialect string
	// IDGenerator provides identities for new objects. Only used by DAOs
	// generated with identity generation enabled.
	IDGenerator IDGenerator
	// Logger receives the executed statements at debug level.
	Logger *slog.Logger
}

// ConfigOption configures a Configuration.
type ConfigOption func(*Configuration)

// WithIDGenerator sets the identifier generator.
func WithIDGenerator(g IDGenerator) ConfigOption {
	return func(c *Configuration) {
		c.IDGenerator = g
	}
}

// WithLogger sets the statement logger.
func WithLogger(l *slog.Logger) ConfigOption {
	return func(c *Configuration) {
		c.Logger = l
	}
}

// NewConfiguration returns a configuration executing statements of the given
// dialect on drv.
func NewConfiguration(drv ExecQuerier, dialect string, opts ...ConfigOption) *Configuration {
	c := &Configuration{Driver: drv, Dialect: dialect}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Configuration) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
