package schema

import (
	"errors"
	"fmt"
	"slices"

	"github.com/amanteaux/daogen/schema/field"
)

// Definition is implemented by every node of the model that code is
// generated from.
type Definition interface {
	// DefinitionName returns the name of the definition in the database.
	DefinitionName() string
	// OutputName returns the name used to derive generated identifiers.
	OutputName() string
	// Comment returns the database comment of the definition, if any.
	Comment() string
	// Schema returns the owning schema.
	Schema() *Schema
	// Database returns the owning database.
	Database() *Database
}

var (
	_ Definition = (*Schema)(nil)
	_ Definition = (*Table)(nil)
	_ Definition = (*Column)(nil)
	_ Definition = (*Key)(nil)
)

type (
	// Database is the root of the model.
	Database struct {
		Schemas []*Schema `json:"schemas,omitempty"`
	}

	// Schema is a named group of tables.
	Schema struct {
		Name   string   `json:"name"`
		Output string   `json:"output,omitempty"`
		Doc    string   `json:"comment,omitempty"`
		Tables []*Table `json:"tables,omitempty"`

		db *Database
	}

	// Table is a relational table.
	Table struct {
		Name       string    `json:"name"`
		Output     string    `json:"output,omitempty"`
		Doc        string    `json:"comment,omitempty"`
		Columns    []*Column `json:"columns,omitempty"`
		PrimaryKey *Key      `json:"primary_key,omitempty"`
		UniqueKeys []*Key    `json:"unique_keys,omitempty"`

		schema *Schema
	}

	// Column is a table column. Type is nil for columns whose database type
	// could not be mapped to a Go type.
	Column struct {
		Name     string          `json:"name"`
		Output   string          `json:"output,omitempty"`
		Doc      string          `json:"comment,omitempty"`
		Type     *field.TypeInfo `json:"type,omitempty"`
		DataType string          `json:"data_type,omitempty"`
		Nullable bool            `json:"nullable,omitempty"`

		table *Table
	}

	// Key is a primary or unique key. ColumnNames lists the key columns in
	// order; Columns holds them once resolved by Database.Link.
	Key struct {
		Name        string    `json:"name,omitempty"`
		ColumnNames []string  `json:"columns"`
		Columns     []*Column `json:"-"`

		table   *Table
		missing []string
	}
)

// Link wires the back-references of the tree and resolves key columns by
// name. Keys referencing unknown columns are not rejected here; they are
// reported by Table.Validate.
func (d *Database) Link() {
	for _, s := range d.Schemas {
		s.db = d
		for _, t := range s.Tables {
			t.schema = s
			for _, c := range t.Columns {
				c.table = t
			}
			for _, k := range t.Keys() {
				k.link(t)
			}
		}
	}
}

// MultiSchema reports if the database exposes more than one schema.
func (d *Database) MultiSchema() bool {
	return len(d.Schemas) > 1
}

// Lookup returns the schema with the given name, or nil.
func (d *Database) Lookup(name string) *Schema {
	for _, s := range d.Schemas {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Tables returns the number of tables in all schemas.
func (d *Database) Tables() int {
	var n int
	for _, s := range d.Schemas {
		n += len(s.Tables)
	}
	return n
}

// DefinitionName returns the schema name.
func (s *Schema) DefinitionName() string { return s.Name }

// OutputName returns the output name of the schema.
func (s *Schema) OutputName() string { return outputName(s.Name, s.Output) }

// Comment returns the schema comment.
func (s *Schema) Comment() string { return s.Doc }

// Schema returns s.
func (s *Schema) Schema() *Schema { return s }

// Database returns the owning database.
func (s *Schema) Database() *Database { return s.db }

// Table returns the table with the given name, or nil.
func (s *Schema) Table(name string) *Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// DefinitionName returns the table name.
func (t *Table) DefinitionName() string { return t.Name }

// OutputName returns the output name of the table.
func (t *Table) OutputName() string { return outputName(t.Name, t.Output) }

// Comment returns the table comment.
func (t *Table) Comment() string { return t.Doc }

// Schema returns the owning schema.
func (t *Table) Schema() *Schema { return t.schema }

// Database returns the owning database.
func (t *Table) Database() *Database {
	if t.schema == nil {
		return nil
	}
	return t.schema.db
}

// QualifiedName returns the table name prefixed by its schema name.
func (t *Table) QualifiedName() string {
	if t.schema == nil || t.schema.Name == "" {
		return t.Name
	}
	return t.schema.Name + "." + t.Name
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Keys returns the primary key (if any) followed by the unique keys.
func (t *Table) Keys() []*Key {
	keys := make([]*Key, 0, len(t.UniqueKeys)+1)
	if t.PrimaryKey != nil {
		keys = append(keys, t.PrimaryKey)
	}
	return append(keys, t.UniqueKeys...)
}

// Validate checks that every column has a mapped type and that the keys of
// the table only reference its own columns.
func (t *Table) Validate() error {
	var errs []error
	for _, c := range t.Columns {
		if !c.Type.Valid() {
			errs = append(errs, fmt.Errorf("column %q: unmapped type %q", c.Name, c.DataType))
		}
	}
	for _, k := range t.Keys() {
		if len(k.ColumnNames) == 0 && len(k.Columns) == 0 {
			errs = append(errs, fmt.Errorf("key %q: no columns", k.DefinitionName()))
		}
		for _, name := range k.missing {
			errs = append(errs, fmt.Errorf("key %q: unknown column %q", k.DefinitionName(), name))
		}
		for _, c := range k.Columns {
			if c != nil && !slices.Contains(t.Columns, c) {
				errs = append(errs, fmt.Errorf("key %q: column %q belongs to another table", k.DefinitionName(), c.Name))
			}
		}
	}
	return errors.Join(errs...)
}

// DefinitionName returns the column name.
func (c *Column) DefinitionName() string { return c.Name }

// OutputName returns the output name of the column.
func (c *Column) OutputName() string { return outputName(c.Name, c.Output) }

// Comment returns the column comment.
func (c *Column) Comment() string { return c.Doc }

// Table returns the owning table.
func (c *Column) Table() *Table { return c.table }

// Schema returns the owning schema.
func (c *Column) Schema() *Schema {
	if c.table == nil {
		return nil
	}
	return c.table.Schema()
}

// Database returns the owning database.
func (c *Column) Database() *Database {
	if c.table == nil {
		return nil
	}
	return c.table.Database()
}

// DefinitionName returns the key name, or a name derived from its columns
// when the key is anonymous.
func (k *Key) DefinitionName() string {
	if k.Name != "" {
		return k.Name
	}
	name := "key"
	for _, c := range k.ColumnNames {
		name += "_" + c
	}
	return name
}

// OutputName returns the key name.
func (k *Key) OutputName() string { return k.DefinitionName() }

// Comment returns an empty string. Keys carry no comment.
func (k *Key) Comment() string { return "" }

// Table returns the owning table.
func (k *Key) Table() *Table { return k.table }

// Schema returns the owning schema.
func (k *Key) Schema() *Schema {
	if k.table == nil {
		return nil
	}
	return k.table.Schema()
}

// Database returns the owning database.
func (k *Key) Database() *Database {
	if k.table == nil {
		return nil
	}
	return k.table.Database()
}

// Single reports if the key has exactly one resolved column.
func (k *Key) Single() bool {
	return len(k.Columns) == 1 && k.Columns[0] != nil && len(k.missing) == 0
}

// Has reports if c is one of the key columns.
func (k *Key) Has(c *Column) bool {
	return slices.Contains(k.Columns, c)
}

func (k *Key) link(t *Table) {
	k.table = t
	k.missing = nil
	if len(k.ColumnNames) == 0 {
		// Keys assembled by hand may list columns only.
		for _, c := range k.Columns {
			if c != nil {
				k.ColumnNames = append(k.ColumnNames, c.Name)
			}
		}
		return
	}
	k.Columns = make([]*Column, 0, len(k.ColumnNames))
	for _, name := range k.ColumnNames {
		c := t.Column(name)
		if c == nil {
			k.missing = append(k.missing, name)
			continue
		}
		k.Columns = append(k.Columns, c)
	}
}

func outputName(name, output string) string {
	if output != "" {
		return output
	}
	return name
}
