package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/amanteaux/daogen/compiler/gen"
)

// genValue renders the value type: one pointer field per column, with its
// accessors.
func genValue(rc *gen.RenderContext, n *names) *jen.File {
	f := rc.NewFile()
	t := rc.Table()
	name := n.value.ClassName
	f.Comment(describe(name, "holds a row of the table", t))
	comment(f, t)
	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		for _, c := range n.columns {
			field := g.Id(c.Field).Add(nullableType(c.Type)).Tag(map[string]string{"json": c.Name + ",omitempty"})
			if doc := oneLine(c.Comment()); doc != "" {
				field.Comment(doc)
			}
		}
	})
	for _, c := range n.columns {
		f.Commentf("Get%s returns the value of the column %s.", c.Field, c.Name)
		f.Func().Params(jen.Id("_v").Op("*").Id(name)).Id("Get" + c.Field).Params().Add(nullableType(c.Type)).Block(
			jen.Return(jen.Id("_v").Dot(c.Field)),
		)
		f.Commentf("Set%s sets the value of the column %s.", c.Field, c.Name)
		f.Func().Params(jen.Id("_v").Op("*").Id(name)).Id("Set" + c.Field).Params(jen.Id("value").Add(nullableType(c.Type))).Block(
			jen.Id("_v").Dot(c.Field).Op("=").Id("value"),
		)
	}
	f.Var().Id("_").Add(n.qual(n.iface)).Op("=").Parens(jen.Op("*").Id(name)).Parens(jen.Nil())
	return f
}

// genInterface renders the interface of the value accessors, implemented by
// the value type and by every type embedding it.
func genInterface(rc *gen.RenderContext, n *names) *jen.File {
	f := rc.NewFile()
	name := n.iface.ClassName
	f.Comment(describe(name, "is implemented by the values of the table", rc.Table()))
	f.Type().Id(name).InterfaceFunc(func(g *jen.Group) {
		for _, c := range n.columns {
			g.Id("Get" + c.Field).Params().Add(nullableType(c.Type))
			g.Id("Set" + c.Field).Params(nullableType(c.Type))
		}
	})
	return f
}
