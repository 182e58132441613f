package load

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanteaux/daogen/schema/field"
)

func TestLoadFile(t *testing.T) {
	db, err := LoadFile(filepath.Join("testdata", "shop.yml"))
	require.NoError(t, err)
	require.Len(t, db.Schemas, 1)
	s := db.Schemas[0]
	assert.Equal(t, "shop", s.Name)
	assert.Equal(t, "Web shop.", s.Comment())
	require.Len(t, s.Tables, 2)

	orders := s.Table("orders")
	require.NotNil(t, orders)
	assert.Same(t, s, orders.Schema())
	assert.Equal(t, "Customer orders.", orders.Comment())
	assert.Equal(t, &field.TypeInfo{Type: field.TypeInt64}, orders.Column("id").Type)
	assert.Equal(t, "int64", orders.Column("id").DataType)
	assert.True(t, orders.Column("note").Nullable)
	assert.Equal(t, "Free text.", orders.Column("note").Comment())
	assert.Equal(t, "timestamptz", orders.Column("created_at").DataType)
	assert.Equal(t, &field.TypeInfo{Type: field.TypeOther, Ident: "decimal.Decimal", PkgPath: "github.com/shopspring/decimal"}, orders.Column("total").Type)

	require.NotNil(t, orders.PrimaryKey)
	assert.Equal(t, []string{"id"}, orders.PrimaryKey.ColumnNames)
	require.Len(t, orders.UniqueKeys, 1)
	assert.Equal(t, "orders_customer_uq", orders.UniqueKeys[0].Name)
	assert.Same(t, orders.Column("customer_id"), orders.UniqueKeys[0].Columns[0])
	assert.NoError(t, orders.Validate())

	lines := s.Table("order_lines")
	require.NotNil(t, lines)
	assert.Equal(t, []string{"order_id", "line"}, lines.PrimaryKey.ColumnNames)
	assert.Empty(t, lines.UniqueKeys)

	_, err = LoadFile(filepath.Join("testdata", "missing.yml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	db, err := LoadFile(filepath.Join("testdata", "shop.yml"))
	require.NoError(t, err)
	buf, err := Marshal(db)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "primary_key:\n")
	assert.Contains(t, string(buf), "go_type: decimal.Decimal")
	assert.NotContains(t, string(buf), "data_type: int64")

	again, err := Parse(buf)
	require.NoError(t, err)
	if diff := cmp.Diff(NewDocument(db), NewDocument(again)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		db, err := Parse([]byte(`{"schemas": [{"name": "shop", "tables": [{"name": "orders", "columns": [{"name": "id", "type": "uuid"}], "primary_key": ["id"]}]}]}`))
		require.NoError(t, err)
		assert.Equal(t, field.TypeUUID, db.Schemas[0].Tables[0].Columns[0].Type.Type)
	})
	t.Run("unknown type", func(t *testing.T) {
		db, err := Parse([]byte("schemas:\n  - name: shop\n    tables:\n      - name: orders\n        columns:\n          - {name: geo, type: geometry}\n"))
		require.NoError(t, err)
		c := db.Schemas[0].Tables[0].Columns[0]
		assert.Nil(t, c.Type)
		assert.Equal(t, "geometry", c.DataType)
	})

	errs := []struct {
		name string
		doc  string
	}{
		{"unknown field", "schemas:\n  - name: shop\n    owner: me\n"},
		{"schema without name", "schemas:\n  - tables: []\n"},
		{"duplicate schema", "schemas:\n  - name: shop\n  - name: shop\n"},
		{"table without name", "schemas:\n  - name: shop\n    tables:\n      - columns: []\n"},
		{"column without name", "schemas:\n  - name: shop\n    tables:\n      - name: orders\n        columns:\n          - {type: int64}\n"},
		{"invalid yaml", "schemas: [\n"},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
