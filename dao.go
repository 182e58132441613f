package daogen

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/amanteaux/daogen/dialect"
)

// DAO executes the statements of a generated DAO. R is the record type of
// the table and P the type of the objects the DAO reads and writes; records
// are copied from and into objects with the functions given to NewDAO.
type DAO[R any, RP Record[R], P any, PT interface{ *P }] struct {
	table Table
	conf  *Configuration
	into  func(RP, PT)
	from  func(PT, RP)
}

// NewDAO returns a DAO for the given table. into copies a scanned record into
// an object, from copies an object into a record before it is written.
func NewDAO[R any, RP Record[R], P any, PT interface{ *P }](table Table, conf *Configuration, into func(RP, PT), from func(PT, RP)) *DAO[R, RP, P, PT] {
	return &DAO[R, RP, P, PT]{
		table: table,
		conf:  conf,
		into:  into,
		from:  from,
	}
}

// Table returns the table descriptor of the DAO.
func (d *DAO[R, RP, P, PT]) Table() Table {
	return d.table
}

// Configuration returns the configuration the DAO was created with.
func (d *DAO[R, RP, P, PT]) Configuration() *Configuration {
	return d.conf
}

// IDGenerator returns the configured identifier generator. Without one, the
// returned generator fails with ErrNoIDGenerator: a new object is never
// inserted with an unset identity.
func (d *DAO[R, RP, P, PT]) IDGenerator() IDGenerator {
	if d.conf.IDGenerator == nil {
		return noIDGenerator{}
	}
	return d.conf.IDGenerator
}

// SelectFrom returns the statement selecting all columns of the table, to be
// completed by ad-hoc queries.
func (d *DAO[R, RP, P, PT]) SelectFrom() string {
	return "SELECT " + d.columnList(d.table.TableColumns()) + " FROM " + d.tableName()
}

// Insert inserts the given objects. Columns holding nil values are omitted
// from the statement so that their database defaults apply.
func (d *DAO[R, RP, P, PT]) Insert(ctx context.Context, objects ...PT) error {
	for _, o := range objects {
		var (
			cols []Column
			args []any
		)
		for i, v := range d.record(o).Values() {
			if !isNil(v) {
				cols = append(cols, d.table.TableColumns()[i])
				args = append(args, arg(v))
			}
		}
		var b strings.Builder
		b.WriteString("INSERT INTO ")
		b.WriteString(d.tableName())
		switch {
		case len(cols) > 0:
			fmt.Fprintf(&b, " (%s) VALUES (%s)", d.columnList(cols), d.placeholders(1, len(cols)))
		case d.conf.Dialect == dialect.MySQL:
			b.WriteString(" () VALUES ()")
		default:
			b.WriteString(" DEFAULT VALUES")
		}
		if err := d.exec(ctx, b.String(), args); err != nil {
			return &MutationError{Table: d.table.TableName(), Op: "insert", Err: err}
		}
	}
	return nil
}

// Update writes all the columns of the given objects, matching rows by
// identity.
func (d *DAO[R, RP, P, PT]) Update(ctx context.Context, objects ...PT) error {
	pos, err := d.identity()
	if err != nil {
		return &MutationError{Table: d.table.TableName(), Op: "update", Err: err}
	}
	columns := d.table.TableColumns()
	if len(columns) == 1 {
		return nil
	}
	for _, o := range objects {
		values := d.record(o).Values()
		if isNil(values[pos]) {
			return &MutationError{Table: d.table.TableName(), Op: "update", Err: ErrNoIdentity}
		}
		var (
			b    strings.Builder
			args = make([]any, 0, len(values))
		)
		b.WriteString("UPDATE ")
		b.WriteString(d.tableName())
		b.WriteString(" SET ")
		for i, c := range columns {
			if i == pos {
				continue
			}
			if len(args) > 0 {
				b.WriteString(", ")
			}
			args = append(args, arg(values[i]))
			b.WriteString(d.quote(c) + " = " + dialect.Placeholder(d.conf.Dialect, len(args)))
		}
		args = append(args, arg(values[pos]))
		b.WriteString(" WHERE " + d.quote(columns[pos]) + " = " + dialect.Placeholder(d.conf.Dialect, len(args)))
		if err := d.exec(ctx, b.String(), args); err != nil {
			return &MutationError{Table: d.table.TableName(), Op: "update", Err: err}
		}
	}
	return nil
}

// Delete deletes the rows of the given objects, matching them by identity.
func (d *DAO[R, RP, P, PT]) Delete(ctx context.Context, objects ...PT) error {
	pos, err := d.identity()
	if err != nil {
		return &MutationError{Table: d.table.TableName(), Op: "delete", Err: err}
	}
	if len(objects) == 0 {
		return nil
	}
	ids := make([]any, 0, len(objects))
	for _, o := range objects {
		id := d.record(o).Values()[pos]
		if isNil(id) {
			return &MutationError{Table: d.table.TableName(), Op: "delete", Err: ErrNoIdentity}
		}
		ids = append(ids, arg(id))
	}
	q := fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)", d.tableName(), d.quote(d.table.TableIdentity()), d.placeholders(1, len(ids)))
	if err := d.exec(ctx, q, ids); err != nil {
		return &MutationError{Table: d.table.TableName(), Op: "delete", Err: err}
	}
	return nil
}

// Fetch returns the objects whose column matches any of the given values.
func (d *DAO[R, RP, P, PT]) Fetch(ctx context.Context, column Column, values ...any) ([]PT, error) {
	if len(values) == 0 {
		return nil, nil
	}
	q := fmt.Sprintf("%s WHERE %s IN (%s)", d.SelectFrom(), d.quote(column), d.placeholders(1, len(values)))
	return d.query(ctx, "fetch", q, values)
}

// FetchOne returns the object whose column equals value. It returns a
// *NotFoundError when no row matches and a *NotSingularError when several do.
func (d *DAO[R, RP, P, PT]) FetchOne(ctx context.Context, column Column, value any) (PT, error) {
	objects, err := d.Fetch(ctx, column, value)
	switch {
	case err != nil:
		return nil, err
	case len(objects) == 0:
		return nil, NewNotFoundError(d.table.TableName(), value)
	case len(objects) > 1:
		return nil, NewNotSingularError(d.table.TableName(), len(objects))
	default:
		return objects[0], nil
	}
}

// FindByID returns the object with the given identity.
func (d *DAO[R, RP, P, PT]) FindByID(ctx context.Context, id any) (PT, error) {
	if _, err := d.identity(); err != nil {
		return nil, &QueryError{Table: d.table.TableName(), Op: "find", Err: err}
	}
	return d.FetchOne(ctx, d.table.TableIdentity(), id)
}

// FindAll returns all the objects of the table.
func (d *DAO[R, RP, P, PT]) FindAll(ctx context.Context) ([]PT, error) {
	return d.query(ctx, "find all", d.SelectFrom(), nil)
}

// Query returns the objects matching the given SQL condition. An empty
// condition matches all rows.
func (d *DAO[R, RP, P, PT]) Query(ctx context.Context, where string, args ...any) ([]PT, error) {
	q := d.SelectFrom()
	if where != "" {
		q += " WHERE " + where
	}
	return d.query(ctx, "query", q, args)
}

// Count returns the number of rows of the table.
func (d *DAO[R, RP, P, PT]) Count(ctx context.Context) (int, error) {
	q := "SELECT COUNT(*) FROM " + d.tableName()
	d.log(ctx, q, nil)
	rows, err := d.conf.Driver.QueryContext(ctx, q)
	if err != nil {
		return 0, &QueryError{Table: d.table.TableName(), Op: "count", Err: err}
	}
	defer rows.Close()
	var n int
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, &QueryError{Table: d.table.TableName(), Op: "count", Err: err}
		}
		return 0, &QueryError{Table: d.table.TableName(), Op: "count", Err: sql.ErrNoRows}
	}
	if err := rows.Scan(&n); err != nil {
		return 0, &QueryError{Table: d.table.TableName(), Op: "count", Err: err}
	}
	return n, nil
}

func (d *DAO[R, RP, P, PT]) query(ctx context.Context, op, q string, args []any) ([]PT, error) {
	d.log(ctx, q, args)
	rows, err := d.conf.Driver.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &QueryError{Table: d.table.TableName(), Op: op, Err: err}
	}
	defer rows.Close()
	var objects []PT
	for rows.Next() {
		r := RP(new(R))
		if err := rows.Scan(r.Pointers()...); err != nil {
			return nil, &QueryError{Table: d.table.TableName(), Op: op, Err: err}
		}
		o := PT(new(P))
		d.into(r, o)
		objects = append(objects, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Table: d.table.TableName(), Op: op, Err: err}
	}
	return objects, nil
}

func (d *DAO[R, RP, P, PT]) exec(ctx context.Context, q string, args []any) error {
	d.log(ctx, q, args)
	_, err := d.conf.Driver.ExecContext(ctx, q, args...)
	return err
}

func (d *DAO[R, RP, P, PT]) log(ctx context.Context, q string, args []any) {
	d.conf.logger().DebugContext(ctx, "daogen: statement", "table", d.table.TableName(), "sql", q, "args", len(args))
}

func (d *DAO[R, RP, P, PT]) record(o PT) RP {
	r := RP(new(R))
	d.from(o, r)
	return r
}

// identity returns the position of the identity column.
func (d *DAO[R, RP, P, PT]) identity() (int, error) {
	id := d.table.TableIdentity()
	if id == "" {
		return 0, ErrNoIdentity
	}
	pos := slices.Index(d.table.TableColumns(), id)
	if pos < 0 {
		return 0, fmt.Errorf("daogen: identity column %q not in table %s", id, d.table.TableName())
	}
	return pos, nil
}

func (d *DAO[R, RP, P, PT]) tableName() string {
	return dialect.QualifiedTable(d.conf.Dialect, d.table.TableSchema(), d.table.TableName())
}

func (d *DAO[R, RP, P, PT]) quote(c Column) string {
	return dialect.Quote(d.conf.Dialect, string(c))
}

func (d *DAO[R, RP, P, PT]) columnList(cols []Column) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.quote(c)
	}
	return strings.Join(quoted, ", ")
}

func (d *DAO[R, RP, P, PT]) placeholders(start, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = dialect.Placeholder(d.conf.Dialect, start+i)
	}
	return strings.Join(ph, ", ")
}

// Args converts typed values to the variadic arguments of Fetch.
func Args[T any](values []T) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// arg dereferences the pointer fields of records.
func arg(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}
