package load

import (
	"context"
	"fmt"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
	"golang.org/x/sync/errgroup"

	"github.com/amanteaux/daogen/dialect"
	"github.com/amanteaux/daogen/dialect/sql"
	"github.com/amanteaux/daogen/schema"
)

// Inspect reads the model of the database at dsn. With no schema names, all
// schemas visible to the connection are inspected.
func Inspect(ctx context.Context, dsn string, schemas ...string) (*schema.Database, error) {
	db, err := sql.Open(dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	insp, err := Inspector(db)
	if err != nil {
		return nil, err
	}
	return InspectWith(ctx, insp, db.Dialect(), schemas...)
}

// Inspector returns the atlas inspector of db.
func Inspector(db *sql.DB) (atlas.Inspector, error) {
	var (
		insp atlas.Inspector
		err  error
	)
	switch db.Dialect() {
	case dialect.Postgres:
		insp, err = postgres.Open(db)
	case dialect.MySQL:
		insp, err = mysql.Open(db)
	case dialect.SQLite:
		insp, err = sqlite.Open(db)
	default:
		return nil, fmt.Errorf("load: unsupported dialect %q", db.Dialect())
	}
	if err != nil {
		return nil, fmt.Errorf("load: open %s inspector: %w", db.Dialect(), err)
	}
	return insp, nil
}

// InspectWith reads the model through insp. Named schemas are inspected
// concurrently and kept in the given order.
func InspectWith(ctx context.Context, insp atlas.Inspector, d string, schemas ...string) (*schema.Database, error) {
	if len(schemas) == 0 {
		r, err := insp.InspectRealm(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("load: inspect realm: %w", err)
		}
		return FromRealm(d, r), nil
	}
	r := &atlas.Realm{Schemas: make([]*atlas.Schema, len(schemas))}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, name := range schemas {
		g.Go(func() error {
			s, err := insp.InspectSchema(ctx, name, nil)
			if err != nil {
				return fmt.Errorf("load: inspect schema %q: %w", name, err)
			}
			r.Schemas[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return FromRealm(d, r), nil
}
