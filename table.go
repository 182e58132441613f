package daogen

// Column is the name of a table column.
type Column string

// String returns the column name.
func (c Column) String() string { return string(c) }

// Table describes a database table. Generated table descriptors implement
// it, next to one accessor per column.
type Table interface {
	// TableSchema returns the schema name of the table.
	TableSchema() string
	// TableName returns the table name.
	TableName() string
	// TableColumns returns the table columns in declaration order.
	TableColumns() []Column
	// TableIdentity returns the single primary-key column, or an empty
	// Column when the table has none.
	TableIdentity() Column
}

// Record is the constraint satisfied by pointers to generated records.
// Values and Pointers follow the order of the table columns.
type Record[R any] interface {
	*R
	// Table returns the table descriptor of the record.
	Table() Table
	// Values returns the column values, for statement arguments.
	Values() []any
	// Pointers returns pointers to the column values, for scanning rows.
	Pointers() []any
}
