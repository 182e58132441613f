package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/amanteaux/daogen/compiler/gen"
)

// genBean renders the bean of a table: a user-owned type embedding the
// value, generated once.
func genBean(rc *gen.RenderContext, n *names) (*jen.File, error) {
	bean, err := rc.Identity(gen.ModeBean)
	if err != nil {
		return nil, err
	}
	f := rc.NewFile()
	f.Comment(describe(bean.ClassName, "holds a row of the table", rc.Table()))
	f.Comment("Fields and methods can be added freely.")
	f.Type().Id(bean.ClassName).Struct(n.qual(n.value))
	return f, nil
}

// genDAOChild renders the DAO child of a table: the DAO base instantiated
// with the bean, generated once.
func genDAOChild(rc *gen.RenderContext, n *names) (*jen.File, error) {
	bean, err := rc.Identity(gen.ModeBean)
	if err != nil {
		return nil, err
	}
	child, err := rc.Identity(gen.ModeDAOChild)
	if err != nil {
		return nil, err
	}
	f := rc.NewFile()
	name := child.ClassName
	base := func() *jen.Statement {
		return n.qual(n.daoBase).Types(n.qual(bean), jen.Op("*").Add(n.qual(bean)))
	}
	f.Comment(describe(name, "is the data-access object of the table", rc.Table()))
	f.Comment("Methods can be added freely.")
	f.Type().Id(name).Struct(jen.Op("*").Add(base()))

	f.Commentf("New%s returns the DAO of the table %s.", name, rc.Table().QualifiedName())
	f.Func().Id("New" + name).Params(jen.Id("conf").Op("*").Add(runtime("Configuration"))).Op("*").Id(name).Block(
		jen.Return(jen.Op("&").Id(name).Values(jen.Dict{
			jen.Id(n.daoBase.ClassName): jen.Qual(rc.ImportPath(n.daoBase), "New"+n.daoBase.ClassName).
				Types(n.qual(bean), jen.Op("*").Add(n.qual(bean))).
				Call(n.qual(n.table).Values(), jen.Id("conf")),
		})),
	)
	return f, nil
}
