// Package gen generates data-access code from a schema model.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	schema.Database (compiler/load)
//	        ↓
//	   Planner: per table, the artifacts to emit and their policy
//	        ↓           ↘
//	   Strategy          Synthesizer (DAO methods from the table keys)
//	        ↓           ↙
//	   Renderer (jennifer, compiler/gen/sql)
//	        ↓
//	   SourceWriter (files on disk, or memory)
//
// # Artifacts
//
// Every table yields, in this order, a table descriptor, a value type, a
// record, an abstract DAO and an interface. These are regenerated on every
// run ([PolicyAlways]). Tables without a single-column primary key get no
// DAO; the skip is listed in [Report.Skips].
//
// [Generator.GenerateWithChildren] additionally emits, for every non-empty
// schema, a bean for each table and then a concrete DAO for each table
// having an abstract one. These are generated once ([PolicyOnceIfAbsent]):
// an existing file is never overwritten.
//
// # Naming
//
// [DefaultStrategy] derives names from the output names of the schema
// definitions. The package of an artifact is its root package, followed by
// the schema name when the database has several schemas, followed by
// "beans" or "daos" for the modes that need it.
//
// # Error Handling
//
//   - ConfigError: configuration errors, abort the run
//   - SchemaError: invalid tables, reported as failed artifacts
//   - GenerationError: render and write failures, reported as failed
//     artifacts
//
// Example error handling:
//
//	report, err := g.Generate(db)
//	if err != nil {
//	    return err // configuration error
//	}
//	if !report.Clean() {
//	    return report.Err()
//	}
package gen
