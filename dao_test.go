package daogen_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/amanteaux/daogen"
	"github.com/amanteaux/daogen/dialect"
	dsql "github.com/amanteaux/daogen/dialect/sql"
)

type ordersTable struct{}

func (ordersTable) TableSchema() string { return "shop" }
func (ordersTable) TableName() string   { return "orders" }
func (ordersTable) TableColumns() []daogen.Column {
	return []daogen.Column{"id", "customer_id", "note"}
}
func (ordersTable) TableIdentity() daogen.Column { return "id" }

type order struct {
	ID         *int64
	CustomerID *int64
	Note       *string
}

type orderRecord struct{ order }

func (*orderRecord) Table() daogen.Table { return ordersTable{} }
func (r *orderRecord) Values() []any     { return []any{r.ID, r.CustomerID, r.Note} }
func (r *orderRecord) Pointers() []any   { return []any{&r.ID, &r.CustomerID, &r.Note} }

type ordersDAO struct {
	*daogen.DAO[orderRecord, *orderRecord, order, *order]
}

func newOrdersDAO(conf *daogen.Configuration) *ordersDAO {
	return &ordersDAO{
		DAO: daogen.NewDAO[orderRecord, *orderRecord, order, *order](ordersTable{}, conf,
			func(r *orderRecord, o *order) { *o = r.order },
			func(o *order, r *orderRecord) { r.order = *o },
		),
	}
}

func (d *ordersDAO) IsNew(o *order) bool       { return o.ID == nil }
func (d *ordersDAO) SetId(o *order, id *int64) { o.ID = id }
func (d *ordersDAO) Save(ctx context.Context, o *order) error {
	return daogen.Save[*order, int64](ctx, d, d.IDGenerator(), o)
}

func ptr[T any](v T) *T { return &v }

func mockDAO(t *testing.T, d string) (*ordersDAO, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newOrdersDAO(daogen.NewConfiguration(db, d)), mock
}

func TestDAOInsert(t *testing.T) {
	ctx := context.Background()
	t.Run("omits nil columns", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		mock.ExpectExec(`INSERT INTO "shop"."orders" ("customer_id", "note") VALUES ($1, $2)`).
			WithArgs(int64(7), "rush").
			WillReturnResult(sqlmock.NewResult(1, 1))
		require.NoError(t, dao.Insert(ctx, &order{CustomerID: ptr(int64(7)), Note: ptr("rush")}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all columns mysql", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.MySQL)
		mock.ExpectExec("INSERT INTO `shop`.`orders` (`id`, `customer_id`) VALUES (?, ?)").
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		require.NoError(t, dao.Insert(ctx, &order{ID: ptr(int64(1)), CustomerID: ptr(int64(7))}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("default values", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		mock.ExpectExec(`INSERT INTO "shop"."orders" DEFAULT VALUES`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		require.NoError(t, dao.Insert(ctx, &order{}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		cause := errors.New("duplicate key")
		mock.ExpectExec(`INSERT INTO "shop"."orders" ("customer_id") VALUES ($1)`).
			WithArgs(int64(7)).
			WillReturnError(cause)
		err := dao.Insert(ctx, &order{CustomerID: ptr(int64(7))})
		require.Error(t, err)
		assert.True(t, daogen.IsMutationError(err))
		assert.ErrorIs(t, err, cause)
	})
}

func TestDAOUpdate(t *testing.T) {
	ctx := context.Background()
	dao, mock := mockDAO(t, dialect.Postgres)
	mock.ExpectExec(`UPDATE "shop"."orders" SET "customer_id" = $1, "note" = $2 WHERE "id" = $3`).
		WithArgs(int64(7), nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, dao.Update(ctx, &order{ID: ptr(int64(1)), CustomerID: ptr(int64(7))}))
	require.NoError(t, mock.ExpectationsWereMet())

	err := dao.Update(ctx, &order{CustomerID: ptr(int64(7))})
	require.Error(t, err)
	assert.ErrorIs(t, err, daogen.ErrNoIdentity)
}

func TestDAODelete(t *testing.T) {
	ctx := context.Background()
	dao, mock := mockDAO(t, dialect.Postgres)
	mock.ExpectExec(`DELETE FROM "shop"."orders" WHERE "id" IN ($1, $2)`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, dao.Delete(ctx, &order{ID: ptr(int64(1))}, &order{ID: ptr(int64(2))}))
	require.NoError(t, dao.Delete(ctx))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.ErrorIs(t, dao.Delete(ctx, &order{}), daogen.ErrNoIdentity)
}

func TestDAOFetch(t *testing.T) {
	ctx := context.Background()
	const selectOrders = `SELECT "id", "customer_id", "note" FROM "shop"."orders"`
	columns := []string{"id", "customer_id", "note"}

	t.Run("bulk", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		mock.ExpectQuery(selectOrders+` WHERE "customer_id" IN ($1, $2)`).
			WithArgs(int64(7), int64(8)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(1), int64(7), nil).
				AddRow(int64(2), int64(8), "gift"))
		orders, err := dao.Fetch(ctx, "customer_id", daogen.Args([]int64{7, 8})...)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, int64(1), *orders[0].ID)
		assert.Nil(t, orders[0].Note)
		assert.Equal(t, "gift", *orders[1].Note)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no values", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		orders, err := dao.Fetch(ctx, "customer_id")
		require.NoError(t, err)
		assert.Empty(t, orders)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("one", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		mock.ExpectQuery(selectOrders + ` WHERE "id" IN ($1)`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(1), int64(7), nil))
		o, err := dao.FindByID(ctx, int64(1))
		require.NoError(t, err)
		assert.Equal(t, int64(7), *o.CustomerID)
	})

	t.Run("not found", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		mock.ExpectQuery(selectOrders + ` WHERE "customer_id" IN ($1)`).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(columns))
		o, err := dao.FetchOne(ctx, "customer_id", int64(9))
		assert.Nil(t, o)
		assert.True(t, daogen.IsNotFound(err))
	})

	t.Run("not singular", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		mock.ExpectQuery(selectOrders + ` WHERE "note" IN ($1)`).
			WithArgs("gift").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(1), int64(7), "gift").
				AddRow(int64(2), int64(8), "gift"))
		_, err := dao.FetchOne(ctx, "note", "gift")
		assert.True(t, daogen.IsNotSingular(err))
	})

	t.Run("query error", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		mock.ExpectQuery(selectOrders).WillReturnError(sql.ErrConnDone)
		_, err := dao.FindAll(ctx)
		assert.True(t, daogen.IsQueryError(err))
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})

	t.Run("ad-hoc", func(t *testing.T) {
		dao, mock := mockDAO(t, dialect.Postgres)
		mock.ExpectQuery(selectOrders + ` WHERE "note" IS NULL`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(3), int64(9), nil))
		orders, err := dao.Query(ctx, `"note" IS NULL`)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, selectOrders, dao.SelectFrom())
	})
}

func TestDAOCount(t *testing.T) {
	dao, mock := mockDAO(t, dialect.Postgres)
	mock.ExpectQuery(`SELECT COUNT(*) FROM "shop"."orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	n, err := dao.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDAOAccessors(t *testing.T) {
	gen := daogen.NewSequenceGenerator(1)
	conf := daogen.NewConfiguration(nil, dialect.SQLite, daogen.WithIDGenerator(gen))
	dao := newOrdersDAO(conf)
	assert.Same(t, conf, dao.Configuration())
	assert.Equal(t, "orders", dao.Table().TableName())
	assert.Same(t, gen, dao.IDGenerator())
}

func TestDAOSaveWithoutIDGenerator(t *testing.T) {
	ctx := context.Background()
	dao, mock := mockDAO(t, dialect.Postgres)
	err := dao.Save(ctx, &order{CustomerID: ptr(int64(7))})
	assert.ErrorIs(t, err, daogen.ErrNoIDGenerator)

	// Objects having an identity are still updated.
	mock.ExpectExec(`UPDATE "shop"."orders" SET "customer_id" = $1, "note" = $2 WHERE "id" = $3`).
		WithArgs(int64(7), nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, dao.Save(ctx, &order{ID: ptr(int64(1)), CustomerID: ptr(int64(7))}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDAOSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	_, err = db.ExecContext(ctx, `CREATE TABLE orders (id INTEGER PRIMARY KEY, customer_id INTEGER UNIQUE, note TEXT)`)
	require.NoError(t, err)

	drv := dsql.NewStatsDriver(db)
	dao := newOrdersDAO(daogen.NewConfiguration(drv, dialect.SQLite,
		daogen.WithIDGenerator(daogen.NewSequenceGenerator(100)),
	))

	first := &order{CustomerID: ptr(int64(7))}
	require.NoError(t, dao.Save(ctx, first))
	require.NotNil(t, first.ID)
	assert.Equal(t, int64(100), *first.ID)
	require.NoError(t, dao.Save(ctx, &order{CustomerID: ptr(int64(8)), Note: ptr("gift")}))

	found, err := dao.FetchOne(ctx, "customer_id", int64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(100), *found.ID)
	assert.Nil(t, found.Note)

	found.Note = ptr("rush")
	require.NoError(t, dao.Save(ctx, found))
	again, err := dao.FindByID(ctx, int64(100))
	require.NoError(t, err)
	assert.Equal(t, "rush", *again.Note)

	n, err := dao.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, dao.Delete(ctx, again))
	all, err := dao.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(101), *all[0].ID)

	_, err = dao.FindByID(ctx, int64(100))
	assert.True(t, daogen.IsNotFound(err))

	stats := drv.QueryStats().Stats()
	assert.EqualValues(t, 4, stats.TotalExecs)
	assert.Zero(t, stats.Errors)
}
