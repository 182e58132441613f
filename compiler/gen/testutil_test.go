package gen

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/amanteaux/daogen/schema"
	"github.com/amanteaux/daogen/schema/field"
)

func int64Type() *field.TypeInfo  { return &field.TypeInfo{Type: field.TypeInt64} }
func stringType() *field.TypeInfo { return &field.TypeInfo{Type: field.TypeString} }

// ordersTable returns shop.orders: a single-column primary key and two
// unique keys on customer_id.
func ordersTable() *schema.Table {
	return &schema.Table{
		Name: "orders",
		Columns: []*schema.Column{
			{Name: "id", Type: int64Type()},
			{Name: "customer_id", Type: int64Type()},
			{Name: "note", Type: stringType(), Nullable: true},
		},
		PrimaryKey: &schema.Key{Name: "orders_pk", ColumnNames: []string{"id"}},
		UniqueKeys: []*schema.Key{
			{Name: "orders_customer_uq", ColumnNames: []string{"customer_id"}},
			{Name: "orders_customer_uq2", ColumnNames: []string{"customer_id"}},
			{Name: "orders_customer_note_uq", ColumnNames: []string{"customer_id", "note"}},
		},
	}
}

// linesTable returns shop.order_lines, keyed by a composite primary key.
func linesTable() *schema.Table {
	return &schema.Table{
		Name: "order_lines",
		Columns: []*schema.Column{
			{Name: "order_id", Type: int64Type()},
			{Name: "line", Type: int64Type()},
			{Name: "sku", Type: stringType()},
		},
		PrimaryKey: &schema.Key{ColumnNames: []string{"order_id", "line"}},
	}
}

func shopDB(tables ...*schema.Table) *schema.Database {
	if len(tables) == 0 {
		tables = []*schema.Table{ordersTable(), linesTable()}
	}
	db := &schema.Database{Schemas: []*schema.Schema{{Name: "shop", Tables: tables}}}
	db.Link()
	return db
}

func multiDB() *schema.Database {
	db := &schema.Database{Schemas: []*schema.Schema{
		{Name: "shop", Tables: []*schema.Table{ordersTable(), linesTable()}},
		{Name: "Billing", Tables: []*schema.Table{ordersTable()}},
		{Name: "empty"},
	}}
	db.Link()
	return db
}

func testConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	c, err := NewConfig(append([]Option{
		WithTarget(t.TempDir()),
		WithModule("example.com/shop/db"),
		WithPackage("gen"),
		WithChildPackage("app"),
	}, opts...)...)
	require.NoError(t, err)
	return c
}

// stubRenderer renders an empty type named after the artifact.
func stubRenderer() Renderer {
	return RendererFunc(func(rc *RenderContext) (*jen.File, error) {
		f := rc.NewFile()
		f.Type().Id(rc.Plan.Identity.ClassName).Struct()
		return f, nil
	})
}
