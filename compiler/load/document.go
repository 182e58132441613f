package load

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amanteaux/daogen/schema"
	"github.com/amanteaux/daogen/schema/field"
)

type (
	// Document is the serialized form of a schema model.
	Document struct {
		Schemas []*Schema `yaml:"schemas" json:"schemas"`
	}

	// Schema represents a schema of a document.
	Schema struct {
		Name    string   `yaml:"name" json:"name"`
		Output  string   `yaml:"output,omitempty" json:"output,omitempty"`
		Comment string   `yaml:"comment,omitempty" json:"comment,omitempty"`
		Tables  []*Table `yaml:"tables,omitempty" json:"tables,omitempty"`
	}

	// Table represents a table of a document.
	Table struct {
		Name       string    `yaml:"name" json:"name"`
		Output     string    `yaml:"output,omitempty" json:"output,omitempty"`
		Comment    string    `yaml:"comment,omitempty" json:"comment,omitempty"`
		Columns    []*Column `yaml:"columns" json:"columns"`
		PrimaryKey []string  `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
		UniqueKeys []*Key    `yaml:"unique_keys,omitempty" json:"unique_keys,omitempty"`
	}

	// Column represents a column of a document. Type is a type keyword
	// (int64, string, time, ...). Columns of type "other" name their Go
	// type with GoType and PkgPath.
	Column struct {
		Name     string `yaml:"name" json:"name"`
		Output   string `yaml:"output,omitempty" json:"output,omitempty"`
		Comment  string `yaml:"comment,omitempty" json:"comment,omitempty"`
		Type     string `yaml:"type,omitempty" json:"type,omitempty"`
		GoType   string `yaml:"go_type,omitempty" json:"go_type,omitempty"`
		PkgPath  string `yaml:"pkg_path,omitempty" json:"pkg_path,omitempty"`
		DataType string `yaml:"data_type,omitempty" json:"data_type,omitempty"`
		Nullable bool   `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	}

	// Key represents a unique key of a document.
	Key struct {
		Name    string   `yaml:"name,omitempty" json:"name,omitempty"`
		Columns []string `yaml:"columns" json:"columns"`
	}
)

// LoadFile reads the schema document at path.
func LoadFile(path string) (*schema.Database, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read schema document: %w", err)
	}
	db, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return db, nil
}

// Parse decodes a YAML or JSON schema document into a linked model.
// Unknown fields are rejected. A column with an unknown type keyword is kept
// unmapped and reported when its table is generated.
func Parse(buf []byte) (*schema.Database, error) {
	doc := &Document{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode schema document: %w", err)
	}
	return doc.Database()
}

// Marshal encodes db as a YAML schema document.
func Marshal(db *schema.Database) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(db)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Database returns the linked model described by the document.
func (d *Document) Database() (*schema.Database, error) {
	db := &schema.Database{}
	seen := make(map[string]bool, len(d.Schemas))
	for _, s := range d.Schemas {
		if s.Name == "" {
			return nil, errors.New("schema without name")
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate schema %q", s.Name)
		}
		seen[s.Name] = true
		ns := &schema.Schema{Name: s.Name, Output: s.Output, Doc: s.Comment}
		for _, t := range s.Tables {
			nt, err := t.table()
			if err != nil {
				return nil, fmt.Errorf("schema %q: %w", s.Name, err)
			}
			ns.Tables = append(ns.Tables, nt)
		}
		db.Schemas = append(db.Schemas, ns)
	}
	db.Link()
	return db, nil
}

func (t *Table) table() (*schema.Table, error) {
	if t.Name == "" {
		return nil, errors.New("table without name")
	}
	nt := &schema.Table{Name: t.Name, Output: t.Output, Doc: t.Comment}
	for _, c := range t.Columns {
		if c.Name == "" {
			return nil, fmt.Errorf("table %q: column without name", t.Name)
		}
		nt.Columns = append(nt.Columns, &schema.Column{
			Name:     c.Name,
			Output:   c.Output,
			Doc:      c.Comment,
			Type:     c.typeInfo(),
			DataType: c.dataType(),
			Nullable: c.Nullable,
		})
	}
	if len(t.PrimaryKey) > 0 {
		nt.PrimaryKey = &schema.Key{ColumnNames: t.PrimaryKey}
	}
	for _, k := range t.UniqueKeys {
		nt.UniqueKeys = append(nt.UniqueKeys, &schema.Key{Name: k.Name, ColumnNames: k.Columns})
	}
	return nt, nil
}

func (c *Column) typeInfo() *field.TypeInfo {
	if c.GoType != "" && c.Type == "" {
		return &field.TypeInfo{Type: field.TypeOther, Ident: c.GoType, PkgPath: c.PkgPath}
	}
	t, err := field.ParseType(c.Type)
	if err != nil {
		return nil
	}
	return &field.TypeInfo{Type: t, Ident: c.GoType, PkgPath: c.PkgPath}
}

func (c *Column) dataType() string {
	if c.DataType != "" {
		return c.DataType
	}
	return c.Type
}

// NewDocument returns the document describing db.
func NewDocument(db *schema.Database) *Document {
	doc := &Document{Schemas: make([]*Schema, 0, len(db.Schemas))}
	for _, s := range db.Schemas {
		ds := &Schema{Name: s.Name, Output: s.Output, Comment: s.Doc}
		for _, t := range s.Tables {
			ds.Tables = append(ds.Tables, newTable(t))
		}
		doc.Schemas = append(doc.Schemas, ds)
	}
	return doc
}

func newTable(t *schema.Table) *Table {
	dt := &Table{Name: t.Name, Output: t.Output, Comment: t.Doc}
	for _, c := range t.Columns {
		dc := &Column{Name: c.Name, Output: c.Output, Comment: c.Doc, DataType: c.DataType, Nullable: c.Nullable}
		if c.Type != nil {
			dc.Type = c.Type.Type.Keyword()
			dc.GoType, dc.PkgPath = c.Type.Ident, c.Type.PkgPath
		}
		if dc.DataType == dc.Type {
			dc.DataType = ""
		}
		dt.Columns = append(dt.Columns, dc)
	}
	if pk := t.PrimaryKey; pk != nil {
		dt.PrimaryKey = pk.ColumnNames
	}
	for _, k := range t.UniqueKeys {
		dt.UniqueKeys = append(dt.UniqueKeys, &Key{Name: k.Name, Columns: k.ColumnNames})
	}
	return dt
}
