package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/amanteaux/daogen/compiler/gen"
)

// genRecord renders the record of a table. The record embeds the value type
// and exposes its fields in column order to the runtime DAO.
func genRecord(rc *gen.RenderContext, n *names) *jen.File {
	f := rc.NewFile()
	t := rc.Table()
	name, value := n.record.ClassName, n.value.ClassName
	recv := jen.Id("_r").Op("*").Id(name)
	// Fields are reached through the embedded value so that a column named
	// like a record method stays accessible.
	fieldOf := func(c column) *jen.Statement {
		return jen.Id("_r").Dot(value).Dot(c.Field)
	}

	f.Comment(describe(name, "is the record of the table", t))
	f.Type().Id(name).Struct(n.qual(n.value))

	f.Comment("Table returns the descriptor of the table of the record.")
	f.Func().Params(jen.Op("*").Id(name)).Id("Table").Params().Add(runtime("Table")).Block(
		jen.Return(n.qual(n.table).Values()),
	)
	f.Comment("Values returns the field values in column order.")
	f.Func().Params(recv.Clone()).Id("Values").Params().Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
			for _, c := range n.columns {
				g.Add(fieldOf(c))
			}
		})),
	)
	f.Comment("Pointers returns the addresses of the fields in column order, for scanning.")
	f.Func().Params(recv.Clone()).Id("Pointers").Params().Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
			for _, c := range n.columns {
				g.Op("&").Add(fieldOf(c))
			}
		})),
	)
	f.Comment("From copies the values of from into the record.")
	f.Func().Params(recv.Clone()).Id("From").Params(jen.Id("from").Add(n.qual(n.iface))).BlockFunc(func(g *jen.Group) {
		for _, c := range n.columns {
			g.Add(fieldOf(c)).Op("=").Id("from").Dot("Get" + c.Field).Call()
		}
	})
	f.Comment("Into copies the values of the record into into.")
	f.Func().Params(recv.Clone()).Id("Into").Params(jen.Id("into").Add(n.qual(n.iface))).BlockFunc(func(g *jen.Group) {
		for _, c := range n.columns {
			g.Id("into").Dot("Set" + c.Field).Call(fieldOf(c))
		}
	})
	return f
}
