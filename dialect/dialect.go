package dialect

import (
	"strconv"
	"strings"
)

// Dialect names.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

// Supported reports whether d is one of the known dialects.
func Supported(d string) bool {
	switch d {
	case Postgres, MySQL, SQLite:
		return true
	}
	return false
}

// Placeholder returns the n-th (1-based) bind parameter marker of d.
func Placeholder(d string, n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Quote quotes the identifier for d.
func Quote(d, ident string) string {
	if d == MySQL {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// QualifiedTable returns the quoted, schema-qualified table name.
func QualifiedTable(d, schema, table string) string {
	if schema == "" || d == SQLite {
		return Quote(d, table)
	}
	return Quote(d, schema) + "." + Quote(d, table)
}
