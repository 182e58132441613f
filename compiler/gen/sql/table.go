package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/amanteaux/daogen/compiler/gen"
)

// genTable renders the table descriptor.
//
//	type OrdersTable struct{}
//
//	func (OrdersTable) TableName() string { return "orders" }
//	func (OrdersTable) CustomerId() daogen.Column { return "customer_id" }
func genTable(rc *gen.RenderContext, n *names) *jen.File {
	f := rc.NewFile()
	t := rc.Table()
	name := n.table.ClassName
	f.Comment(describe(name, "describes the table", t))
	comment(f, t)
	f.Type().Id(name).Struct()

	recv := jen.Params(jen.Id(name))
	schemaName := ""
	if sc := t.Schema(); sc != nil {
		schemaName = sc.Name
	}
	f.Comment("TableSchema returns the schema of the table.")
	f.Func().Add(recv.Clone()).Id("TableSchema").Params().String().Block(
		jen.Return(jen.Lit(schemaName)),
	)
	f.Comment("TableName returns the name of the table.")
	f.Func().Add(recv.Clone()).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(t.Name)),
	)
	f.Comment("TableColumns returns the columns of the table in declaration order.")
	f.Func().Add(recv.Clone()).Id("TableColumns").Params().Index().Add(runtime("Column")).Block(
		jen.Return(jen.Index().Add(runtime("Column")).ValuesFunc(func(g *jen.Group) {
			for _, c := range n.columns {
				g.Lit(c.Name)
			}
		})),
	)
	identity := ""
	if pk := t.PrimaryKey; pk != nil && pk.Single() {
		identity = pk.Columns[0].Name
	}
	f.Comment("TableIdentity returns the single primary-key column, if any.")
	f.Func().Add(recv.Clone()).Id("TableIdentity").Params().Add(runtime("Column")).Block(
		jen.Return(jen.Lit(identity)),
	)
	for _, c := range n.columns {
		f.Commentf("%s returns the column %s.", c.Field, c.Name)
		f.Func().Add(recv.Clone()).Id(c.Field).Params().Add(runtime("Column")).Block(
			jen.Return(jen.Lit(c.Name)),
		)
	}
	f.Var().Id("_").Add(runtime("Table")).Op("=").Id(name).Values()
	return f
}
