package load

import (
	"slices"
	"strings"

	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"

	"github.com/amanteaux/daogen/dialect"
	"github.com/amanteaux/daogen/schema"
	"github.com/amanteaux/daogen/schema/field"
)

// FromRealm converts an inspected atlas realm of the given dialect into a
// linked model. Columns of types with no Go mapping keep a nil Type.
func FromRealm(d string, r *atlas.Realm) *schema.Database {
	db := &schema.Database{}
	if r == nil {
		return db
	}
	for _, s := range r.Schemas {
		db.Schemas = append(db.Schemas, fromSchema(d, s))
	}
	db.Link()
	return db
}

func fromSchema(d string, s *atlas.Schema) *schema.Schema {
	ns := &schema.Schema{Name: s.Name, Doc: comment(s.Attrs)}
	for _, t := range s.Tables {
		ns.Tables = append(ns.Tables, fromTable(d, t))
	}
	return ns
}

func fromTable(d string, t *atlas.Table) *schema.Table {
	nt := &schema.Table{Name: t.Name, Doc: comment(t.Attrs)}
	for _, c := range t.Columns {
		nc := &schema.Column{Name: c.Name, Doc: comment(c.Attrs)}
		if ct := c.Type; ct != nil {
			nc.Type = typeInfo(d, ct.Type)
			nc.DataType = ct.Raw
			nc.Nullable = ct.Null
		}
		nt.Columns = append(nt.Columns, nc)
	}
	var pk []string
	if t.PrimaryKey != nil {
		if pk = keyColumns(t.PrimaryKey); len(pk) > 0 {
			nt.PrimaryKey = &schema.Key{Name: t.PrimaryKey.Name, ColumnNames: pk}
		}
	}
	for _, idx := range t.Indexes {
		if !idx.Unique || partial(idx) {
			continue
		}
		cols := keyColumns(idx)
		if len(cols) == 0 || slices.Equal(cols, pk) {
			continue
		}
		nt.UniqueKeys = append(nt.UniqueKeys, &schema.Key{Name: idx.Name, ColumnNames: cols})
	}
	return nt
}

// keyColumns returns the column names of idx, or nil if one of its parts is
// an expression.
func keyColumns(idx *atlas.Index) []string {
	cols := make([]string, 0, len(idx.Parts))
	for _, p := range idx.Parts {
		if p.C == nil {
			return nil
		}
		cols = append(cols, p.C.Name)
	}
	return cols
}

func partial(idx *atlas.Index) bool {
	for _, a := range idx.Attrs {
		if _, ok := a.(*postgres.IndexPredicate); ok {
			return true
		}
	}
	return false
}

func comment(attrs []atlas.Attr) string {
	for _, a := range attrs {
		if c, ok := a.(*atlas.Comment); ok {
			return c.Text
		}
	}
	return ""
}

// typeInfo maps an inspected column type to its Go type.
func typeInfo(d string, t atlas.Type) *field.TypeInfo {
	var ft field.Type
	switch t := t.(type) {
	case *atlas.IntegerType:
		ft = integerType(d, strings.ToLower(t.T), t.Unsigned)
	case *postgres.SerialType:
		switch strings.ToLower(t.T) {
		case postgres.TypeSmallSerial:
			ft = field.TypeInt16
		case postgres.TypeSerial:
			ft = field.TypeInt32
		default:
			ft = field.TypeInt64
		}
	case *atlas.FloatType:
		ft = floatType(d, strings.ToLower(t.T))
	case *atlas.DecimalType:
		ft = field.TypeFloat64
	case *atlas.BoolType:
		ft = field.TypeBool
	case *atlas.StringType:
		ft = field.TypeString
	case *atlas.EnumType:
		ft = field.TypeEnum
	case *atlas.TimeType:
		ft = field.TypeTime
	case *atlas.BinaryType:
		ft = field.TypeBytes
	case *atlas.JSONType:
		ft = field.TypeJSON
	case *atlas.UUIDType:
		ft = field.TypeUUID
	default:
		return nil
	}
	return &field.TypeInfo{Type: ft}
}

func integerType(d, t string, unsigned bool) field.Type {
	var ft field.Type
	switch t {
	case "tinyint", "int1":
		ft = field.TypeInt8
	case "smallint", "int2", "year":
		ft = field.TypeInt16
	case "mediumint", "int", "int4":
		ft = field.TypeInt32
	case "integer":
		ft = field.TypeInt32
		if d == dialect.SQLite {
			ft = field.TypeInt64
		}
	default:
		ft = field.TypeInt64
	}
	if unsigned {
		// The unsigned types follow their signed counterparts.
		ft += field.TypeUint8 - field.TypeInt8
	}
	return ft
}

func floatType(d, t string) field.Type {
	switch {
	case t == "float4", t == "real" && d != dialect.SQLite, t == "float" && d == dialect.MySQL:
		return field.TypeFloat32
	}
	return field.TypeFloat64
}
