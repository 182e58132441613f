// Package sql renders the Go sources of the artifacts planned by package gen.
//
// The renderer emits, for every table of the database:
//
//	OrdersTable        table descriptor with one accessor per column
//	Orders             value type with Get and Set accessors
//	IOrders            interface of the value accessors
//	OrdersRecord       record wrapping the value, used for scanning rows
//	AbstractOrdersDao  generic DAO base, regenerated on every run
//
// and, in the child package, the Orders bean and the OrdersDao child,
// generated once and left to the user afterwards.
//
// Files are built with jennifer. The generated code depends only on the
// daogen runtime package and the standard library, plus the packages of the
// column types.
package sql
