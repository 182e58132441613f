package sql

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/amanteaux/daogen/compiler/gen"
	"github.com/amanteaux/daogen/schema"
	"github.com/amanteaux/daogen/schema/field"
)

// Method names of the table descriptor. Column accessors must not take them.
var reservedTableMethods = map[string]bool{
	"TableSchema":   true,
	"TableName":     true,
	"TableColumns":  true,
	"TableIdentity": true,
}

// runtime returns a qualified reference to a name of the runtime package.
func runtime(name string) *jen.Statement {
	return jen.Qual(gen.RuntimePkg, name)
}

// baseType returns the Go type of a column type.
func baseType(t *field.TypeInfo) jen.Code {
	if t == nil {
		return jen.Any()
	}
	if t.Ident != "" {
		return identType(t.Ident, t.PkgPath)
	}
	switch t.Type {
	case field.TypeTime:
		return jen.Qual("time", "Time")
	case field.TypeUUID:
		return jen.Qual("github.com/google/uuid", "UUID")
	case field.TypeJSON:
		return jen.Qual("encoding/json", "RawMessage")
	case field.TypeBytes:
		return jen.Index().Byte()
	default:
		return jen.Id(t.Type.String())
	}
}

// identType resolves an identifier like "decimal.Decimal" or "[]net.IP"
// declared in pkgPath.
func identType(ident, pkgPath string) *jen.Statement {
	s := jen.Null()
	for {
		switch {
		case strings.HasPrefix(ident, "[]"):
			s.Index()
			ident = ident[2:]
			continue
		case strings.HasPrefix(ident, "*"):
			s.Op("*")
			ident = ident[1:]
			continue
		}
		break
	}
	if pkgPath == "" {
		return s.Id(ident)
	}
	if i := strings.LastIndexByte(ident, '.'); i >= 0 {
		ident = ident[i+1:]
	}
	return s.Qual(pkgPath, ident)
}

// nullableType returns the type of the value field of a column. Every field
// is a pointer, nil standing for SQL NULL or an unset value.
func nullableType(t *field.TypeInfo) *jen.Statement {
	return jen.Op("*").Add(baseType(t))
}

// column is a column with the Go name of its field.
type column struct {
	*schema.Column
	Field string
}

// names holds the resolved identities of the artifacts of a table.
type names struct {
	rc      *gen.RenderContext
	table   gen.Identity
	value   gen.Identity
	iface   gen.Identity
	record  gen.Identity
	daoBase gen.Identity
	columns []column
}

func resolveNames(rc *gen.RenderContext) (*names, error) {
	n := &names{rc: rc}
	for _, r := range []struct {
		mode gen.Mode
		id   *gen.Identity
	}{
		{gen.ModeTable, &n.table},
		{gen.ModeValue, &n.value},
		{gen.ModeInterface, &n.iface},
		{gen.ModeRecord, &n.record},
		{gen.ModeDAOBase, &n.daoBase},
	} {
		id, err := rc.Identity(r.mode)
		if err != nil {
			return nil, err
		}
		*r.id = id
	}
	seen := make(map[string]string, len(rc.Table().Columns))
	for _, c := range rc.Table().Columns {
		name, err := rc.FieldName(c)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[name]; ok {
			return nil, gen.NewSchemaError(rc.Table().QualifiedName(), c.Name, fmt.Sprintf("field %s collides with column %q", name, prev), nil)
		}
		if reservedTableMethods[name] {
			return nil, gen.NewSchemaError(rc.Table().QualifiedName(), c.Name, fmt.Sprintf("field %s is reserved by the table descriptor", name), nil)
		}
		seen[name] = c.Name
		n.columns = append(n.columns, column{Column: c, Field: name})
	}
	return n, nil
}

// qual returns a reference to the type of id, qualified when it lives in
// another package than the file being rendered.
func (n *names) qual(id gen.Identity) *jen.Statement {
	return jen.Qual(n.rc.ImportPath(id), id.ClassName)
}

// field returns the column whose field holds c.
func (n *names) field(c *schema.Column) column {
	for _, col := range n.columns {
		if col.Column == c {
			return col
		}
	}
	return column{Column: c, Field: gen.Identifier(c.OutputName())}
}

// describe returns the first line of the doc comment of a table artifact.
func describe(name, what string, t *schema.Table) string {
	return fmt.Sprintf("%s %s %s.", name, what, t.QualifiedName())
}

// comment appends the database comment of def, if any, on a single line.
func comment(f *jen.File, def schema.Definition) {
	if doc := oneLine(def.Comment()); doc != "" {
		f.Comment(doc)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
