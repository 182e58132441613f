// Package daogen is the runtime imported by the code that daogen generates.
//
// For every table with a single-column primary key the generator emits an
// abstract DAO embedding [DAO], bound to the table descriptor and record type
// of that table. The DAO executes plain SQL through the [ExecQuerier] held by
// a [Configuration]:
//
//	db, err := sql.Open("sqlite", "file:shop.db")
//	if err != nil {
//	    return err
//	}
//	conf := daogen.NewConfiguration(db, dialect.SQLite,
//	    daogen.WithIDGenerator(daogen.NewSequenceGenerator(1)),
//	)
//	orders := daos.NewOrdersDao(conf)
//	o := &beans.Orders{}
//	o.SetCustomerId(ptr(int64(7)))
//	if err := orders.Save(ctx, o); err != nil {
//	    return err
//	}
//	found, err := orders.FetchOneByCustomerId(ctx, 7)
//
// Save inserts objects whose identity is nil and updates the others, see
// [Save]. When the generated code was produced with identity generation
// enabled, new objects first receive an identity from the configured
// [IDGenerator].
package daogen
