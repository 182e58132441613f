package load

import (
	"testing"

	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanteaux/daogen/dialect"
	"github.com/amanteaux/daogen/schema/field"
)

func column(name string, t atlas.Type, raw string, null bool) *atlas.Column {
	return &atlas.Column{Name: name, Type: &atlas.ColumnType{Type: t, Raw: raw, Null: null}}
}

func parts(cols ...*atlas.Column) []*atlas.IndexPart {
	ps := make([]*atlas.IndexPart, len(cols))
	for i, c := range cols {
		ps[i] = &atlas.IndexPart{SeqNo: i, C: c}
	}
	return ps
}

func TestFromRealm(t *testing.T) {
	id := column("id", &postgres.SerialType{T: postgres.TypeBigSerial}, "bigserial", false)
	customer := column("customer_id", &atlas.IntegerType{T: "integer"}, "integer", false)
	note := column("note", &atlas.StringType{T: "text"}, "text", true)
	note.Attrs = []atlas.Attr{&atlas.Comment{Text: "Free text."}}
	ref := column("ref", &atlas.UUIDType{T: "uuid"}, "uuid", false)
	total := column("total", &atlas.DecimalType{T: "numeric", Precision: 10, Scale: 2}, "numeric(10,2)", true)
	geo := column("geo", &atlas.UnsupportedType{T: "geometry"}, "geometry", true)
	orders := &atlas.Table{
		Name: "orders",
		Columns: []*atlas.Column{
			id, customer, note, ref, total, geo,
			column("status", &atlas.EnumType{T: "order_status", Values: []string{"new", "paid"}}, "order_status", false),
			column("payload", &atlas.JSONType{T: "jsonb"}, "jsonb", true),
			column("created_at", &atlas.TimeType{T: "timestamp with time zone"}, "timestamptz", false),
			column("paid", &atlas.BoolType{T: "boolean"}, "boolean", false),
			column("weight", &atlas.FloatType{T: "real"}, "real", true),
			column("blob", &atlas.BinaryType{T: "bytea"}, "bytea", true),
		},
		PrimaryKey: &atlas.Index{Name: "orders_pkey", Parts: parts(id)},
		Indexes: []*atlas.Index{
			{Name: "orders_pkey_uq", Unique: true, Parts: parts(id)},
			{Name: "orders_ref_uq", Unique: true, Parts: parts(ref)},
			{Name: "orders_customer_idx", Parts: parts(customer)},
			{Name: "orders_note_uq", Unique: true, Parts: []*atlas.IndexPart{{X: &atlas.RawExpr{X: "lower(note)"}}}},
			{Name: "orders_open_uq", Unique: true, Parts: parts(customer), Attrs: []atlas.Attr{&postgres.IndexPredicate{P: "paid = false"}}},
			{Name: "orders_customer_note_uq", Unique: true, Parts: parts(customer, note)},
		},
		Attrs: []atlas.Attr{&atlas.Comment{Text: "Customer orders."}},
	}
	r := &atlas.Realm{Schemas: []*atlas.Schema{{Name: "shop", Tables: []*atlas.Table{orders}}}}

	db := FromRealm(dialect.Postgres, r)
	require.Len(t, db.Schemas, 1)
	s := db.Schemas[0]
	assert.Same(t, db, s.Database())
	tbl := s.Table("orders")
	require.NotNil(t, tbl)
	assert.Equal(t, "Customer orders.", tbl.Comment())

	types := map[string]field.Type{
		"id":          field.TypeInt64,
		"customer_id": field.TypeInt32,
		"note":        field.TypeString,
		"ref":         field.TypeUUID,
		"total":       field.TypeFloat64,
		"status":      field.TypeEnum,
		"payload":     field.TypeJSON,
		"created_at":  field.TypeTime,
		"paid":        field.TypeBool,
		"weight":      field.TypeFloat32,
		"blob":        field.TypeBytes,
	}
	for name, want := range types {
		c := tbl.Column(name)
		require.NotNil(t, c, name)
		require.NotNil(t, c.Type, name)
		assert.Equal(t, want, c.Type.Type, name)
	}
	assert.Nil(t, tbl.Column("geo").Type)
	assert.Equal(t, "geometry", tbl.Column("geo").DataType)
	assert.Equal(t, "numeric(10,2)", tbl.Column("total").DataType)
	assert.True(t, tbl.Column("note").Nullable)
	assert.False(t, tbl.Column("id").Nullable)
	assert.Equal(t, "Free text.", tbl.Column("note").Comment())

	require.NotNil(t, tbl.PrimaryKey)
	assert.Equal(t, "orders_pkey", tbl.PrimaryKey.Name)
	assert.Equal(t, []string{"id"}, tbl.PrimaryKey.ColumnNames)
	var keys []string
	for _, k := range tbl.UniqueKeys {
		keys = append(keys, k.Name)
	}
	assert.Equal(t, []string{"orders_ref_uq", "orders_customer_note_uq"}, keys)
	assert.Same(t, tbl.Column("ref"), tbl.UniqueKeys[0].Columns[0])
}

func TestFromRealmNil(t *testing.T) {
	assert.Empty(t, FromRealm(dialect.Postgres, nil).Schemas)
}

func TestIntegerType(t *testing.T) {
	tests := []struct {
		dialect  string
		t        string
		unsigned bool
		want     field.Type
	}{
		{dialect.MySQL, "tinyint", false, field.TypeInt8},
		{dialect.MySQL, "tinyint", true, field.TypeUint8},
		{dialect.Postgres, "smallint", false, field.TypeInt16},
		{dialect.MySQL, "mediumint", true, field.TypeUint32},
		{dialect.MySQL, "int", false, field.TypeInt32},
		{dialect.Postgres, "integer", false, field.TypeInt32},
		{dialect.SQLite, "integer", false, field.TypeInt64},
		{dialect.MySQL, "bigint", true, field.TypeUint64},
		{dialect.Postgres, "int8", false, field.TypeInt64},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.t, func(t *testing.T) {
			assert.Equal(t, tt.want, integerType(tt.dialect, tt.t, tt.unsigned))
		})
	}
}

func TestFloatType(t *testing.T) {
	assert.Equal(t, field.TypeFloat32, floatType(dialect.Postgres, "real"))
	assert.Equal(t, field.TypeFloat32, floatType(dialect.Postgres, "float4"))
	assert.Equal(t, field.TypeFloat64, floatType(dialect.Postgres, "double precision"))
	assert.Equal(t, field.TypeFloat32, floatType(dialect.MySQL, "float"))
	assert.Equal(t, field.TypeFloat64, floatType(dialect.MySQL, "double"))
	assert.Equal(t, field.TypeFloat64, floatType(dialect.SQLite, "real"))
}
