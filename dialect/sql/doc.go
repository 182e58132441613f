// Package sql opens databases from URLs and wraps them for the generated
// DAOs and the schema inspector.
//
//	db, err := sql.Open("postgres://localhost:5432/shop?sslmode=disable")
//	drv := sql.NewStatsDriver(db, sql.WithSlowQueryLog(logger))
//	conf := daogen.NewConfiguration(drv, db.Dialect())
package sql
