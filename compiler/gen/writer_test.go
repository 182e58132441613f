package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFile(name string) *jen.File {
	f := jen.NewFile("gen")
	f.HeaderComment(DefaultHeader)
	f.Type().Id(name).Struct(jen.Id("ID").Int64())
	return f
}

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter(dir)

	exists, err := w.Exists("gen/Orders.go")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, w.Write("gen/Orders.go", testFile("Orders")))
	b, err := os.ReadFile(filepath.Join(dir, "gen", "Orders.go"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "// Code generated by daogen. DO NOT EDIT.")
	assert.Contains(t, string(b), "type Orders struct {\n\tID int64\n}")

	exists, err = w.Exists("gen/Orders.go")
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, w.Write("gen/Orders.go", testFile("Purchases")))
		b, err := os.ReadFile(filepath.Join(dir, "gen", "Orders.go"))
		require.NoError(t, err)
		assert.Contains(t, string(b), "type Purchases struct")
		assert.NotContains(t, string(b), "type Orders struct")
	})

	t.Run("write new", func(t *testing.T) {
		created, err := w.WriteNew("app/beans/Orders.go", testFile("Orders"))
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "app", "beans", "Orders.go"), []byte("package beans\n// edited\n"), 0o644))
		created, err = w.WriteNew("app/beans/Orders.go", testFile("Orders"))
		require.NoError(t, err)
		assert.False(t, created)
		b, err := os.ReadFile(filepath.Join(dir, "app", "beans", "Orders.go"))
		require.NoError(t, err)
		assert.Equal(t, "package beans\n// edited\n", string(b))
	})

	t.Run("other extension", func(t *testing.T) {
		require.NoError(t, w.Write("gen/Orders.txt", testFile("Orders")))
		_, err := os.Stat(filepath.Join(dir, "gen", "Orders.txt"))
		assert.NoError(t, err)
	})

	t.Run("invalid source", func(t *testing.T) {
		f := jen.NewFile("gen")
		f.Func().Id("broken").Params().Block(jen.Op("}{"))
		err := w.Write("gen/Broken.go", f)
		require.Error(t, err)
		exists, err := w.Exists("gen/Broken.go")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestMemWriter(t *testing.T) {
	w := NewMemWriter()
	require.NoError(t, w.Write("gen/Orders.go", testFile("Orders")))
	created, err := w.WriteNew("app/beans/Orders.go", testFile("Orders"))
	require.NoError(t, err)
	assert.True(t, created)
	created, err = w.WriteNew("./app/beans/Orders.go", testFile("Other"))
	require.NoError(t, err)
	assert.False(t, created)

	exists, err := w.Exists("gen/Orders.go")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{"app/beans/Orders.go", "gen/Orders.go"}, w.Paths())

	b, ok := w.File("app/beans/Orders.go")
	require.True(t, ok)
	assert.Contains(t, string(b), "type Orders struct")
	_, ok = w.File("gen/Missing.go")
	assert.False(t, ok)
}

func TestDryRunWriter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileWriter(dir).Write("app/beans/Orders.go", testFile("Orders")))

	w := NewDryRunWriter(dir)
	exists, err := w.Exists("app/beans/Orders.go")
	require.NoError(t, err)
	assert.True(t, exists)
	created, err := w.WriteNew("app/beans/Orders.go", testFile("Orders"))
	require.NoError(t, err)
	assert.False(t, created)

	created, err = w.WriteNew("app/daos/OrdersDao.go", testFile("OrdersDao"))
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, w.Write("gen/Orders.go", testFile("Orders")))
	assert.Equal(t, []string{"app/daos/OrdersDao.go", "gen/Orders.go"}, w.Paths())

	// Nothing reaches the disk.
	assert.NoFileExists(t, filepath.Join(dir, "gen", "Orders.go"))
	assert.NoFileExists(t, filepath.Join(dir, "app", "daos", "OrdersDao.go"))
}
