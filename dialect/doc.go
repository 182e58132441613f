// Package dialect names the SQL dialects supported by the daogen runtime and
// holds the few dialect-specific rules the runtime needs to build statements.
//
// # Supported Dialects
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Statement Rules
//
// Placeholders are numbered for PostgreSQL ($1, $2, ...) and positional (?)
// for MySQL and SQLite. Identifiers are quoted with double quotes, except for
// MySQL which uses backticks:
//
//	dialect.Placeholder(dialect.Postgres, 2)           // $2
//	dialect.Quote(dialect.MySQL, "order")              // `order`
//	dialect.QualifiedTable(dialect.Postgres, "shop", "orders") // "shop"."orders"
//
// SQLite has no schemas, so QualifiedTable drops the schema qualifier.
package dialect
