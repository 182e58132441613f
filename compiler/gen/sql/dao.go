package sql

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/amanteaux/daogen/compiler/gen"
)

// typeParams returns the type parameters of the DAO base:
//
//	[P any, PT interface{ *P; gen.IOrders }]
func (n *names) typeParams() []jen.Code {
	return []jen.Code{
		jen.Id("P").Any(),
		jen.Id("PT").Interface(jen.Op("*").Id("P"), n.qual(n.iface)),
	}
}

// runtimeDAO returns the instantiated runtime DAO type, without the pointer.
func (n *names) runtimeDAO() *jen.Statement {
	return runtime("DAO").Types(n.qual(n.record), jen.Op("*").Add(n.qual(n.record)), jen.Id("P"), jen.Id("PT"))
}

// genDAOBase renders the generic DAO base from the synthesized methods.
//
//	type AbstractOrdersDao[P any, PT interface{ *P; gen.IOrders }] struct {
//		*daogen.DAO[gen.OrdersRecord, *gen.OrdersRecord, P, PT]
//	}
func genDAOBase(rc *gen.RenderContext, n *names) (*jen.File, error) {
	dao := rc.Plan.DAO
	if dao == nil {
		return nil, fmt.Errorf("sql: no DAO synthesized for table %s", rc.Table().QualifiedName())
	}
	f := rc.NewFile()
	t := rc.Table()
	name := n.daoBase.ClassName
	f.Comment(describe(name, "is the data-access object of the table", t))
	f.Comment("Objects of type P are read and written through the record of the table.")
	f.Type().Id(name).Types(n.typeParams()...).Struct(
		jen.Op("*").Add(n.runtimeDAO()),
	)

	f.Commentf("New%s returns a DAO of the table %s.", name, t.QualifiedName())
	f.Func().Id("New"+name).Types(n.typeParams()...).Params(
		jen.Id("table").Add(n.qual(n.table)),
		jen.Id("conf").Op("*").Add(runtime("Configuration")),
	).Op("*").Id(name).Types(jen.Id("P"), jen.Id("PT")).Block(
		jen.Return(jen.Op("&").Id(name).Types(jen.Id("P"), jen.Id("PT")).Values(jen.Dict{
			jen.Id("DAO"): runtime("NewDAO").Types(n.qual(n.record), jen.Op("*").Add(n.qual(n.record)), jen.Id("P"), jen.Id("PT")).Call(
				jen.Id("table"),
				jen.Id("conf"),
				jen.Func().Params(jen.Id("r").Op("*").Add(n.qual(n.record)), jen.Id("object").Id("PT")).Block(
					jen.Id("r").Dot("Into").Call(jen.Id("object")),
				),
				jen.Func().Params(jen.Id("object").Id("PT"), jen.Id("r").Op("*").Add(n.qual(n.record))).Block(
					jen.Id("r").Dot("From").Call(jen.Id("object")),
				),
			),
		})),
	)

	recv := func() *jen.Statement {
		return jen.Params(jen.Id("_d").Op("*").Id(name).Types(jen.Id("P"), jen.Id("PT")))
	}
	for _, m := range dao.Methods {
		switch m.Kind {
		case gen.KindIdentityGet:
			id := n.field(m.Column)
			f.Commentf("%s returns the identity of object.", m.Name)
			f.Func().Add(recv()).Id(m.Name).Params(jen.Id("object").Id("PT")).Add(nullableType(dao.IdentityType)).Block(
				jen.Return(jen.Id("object").Dot("Get" + id.Field).Call()),
			)
		case gen.KindIdentitySet:
			id := n.field(m.Column)
			f.Commentf("%s sets the identity of object.", m.Name)
			f.Func().Add(recv()).Id(m.Name).Params(jen.Id("object").Id("PT"), jen.Id("id").Add(nullableType(dao.IdentityType))).Block(
				jen.Id("object").Dot("Set" + id.Field).Call(jen.Id("id")),
			)
		case gen.KindIsNew:
			f.Commentf("%s reports if object has no identity yet.", m.Name)
			f.Func().Add(recv()).Id(m.Name).Params(jen.Id("object").Id("PT")).Bool().Block(
				jen.Return(jen.Id("_d").Dot("GetId").Call(jen.Id("object")).Op("==").Nil()),
			)
		case gen.KindSaveDispatch:
			idgen := jen.Nil()
			if dao.GenerateID {
				f.Commentf("%s inserts object when it is new, with an identity from the configured generator, and updates it otherwise.", m.Name)
				idgen = jen.Id("_d").Dot("IDGenerator").Call()
			} else {
				f.Commentf("%s inserts object when it is new and updates it otherwise.", m.Name)
			}
			f.Func().Add(recv()).Id(m.Name).Params(
				jen.Id("ctx").Qual("context", "Context"),
				jen.Id("object").Id("PT"),
			).Error().Block(
				jen.Return(runtime("Save").Types(jen.Id("PT"), baseType(dao.IdentityType)).Call(
					jen.Id("ctx"), jen.Id("_d"), idgen, jen.Id("object"),
				)),
			)
		case gen.KindBulkFetch:
			c := n.field(m.Column)
			f.Commentf("%s returns the objects whose %s is one of values.", m.Name, c.Name)
			f.Func().Add(recv()).Id(m.Name).Params(
				jen.Id("ctx").Qual("context", "Context"),
				jen.Id("values").Op("...").Add(baseType(c.Type)),
			).Params(jen.Index().Id("PT"), jen.Error()).Block(
				jen.Return(jen.Id("_d").Dot("Fetch").Call(
					jen.Id("ctx"),
					n.qual(n.table).Values().Dot(c.Field).Call(),
					runtime("Args").Call(jen.Id("values")).Op("..."),
				)),
			)
		case gen.KindUniqueFetch:
			c := n.field(m.Column)
			f.Commentf("%s returns the object whose %s is value.", m.Name, c.Name)
			f.Func().Add(recv()).Id(m.Name).Params(
				jen.Id("ctx").Qual("context", "Context"),
				jen.Id("value").Add(baseType(c.Type)),
			).Params(jen.Id("PT"), jen.Error()).Block(
				jen.Return(jen.Id("_d").Dot("FetchOne").Call(
					jen.Id("ctx"),
					n.qual(n.table).Values().Dot(c.Field).Call(),
					jen.Id("value"),
				)),
			)
		default:
			return nil, fmt.Errorf("sql: unexpected method kind %s", m.Kind)
		}
	}
	return f, nil
}
